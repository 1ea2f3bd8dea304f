// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
)

const (
	// коды и имена ограничений из migrations/postgres
	pgUniqueViolation    = "23505"
	usersEmailConstraint = "users_email_key"
	usersNameConstraint  = "users_username_key"

	userColumns = `id, email, username, email_verified, salt, password, is_active, is_superuser, created_at, updated_at`
)

// UsersRepository хранит пользователей в таблице users.
//
// Уникальность email и username обеспечивается ограничениями БД,
// а не только предварительными проверками в сервисе.
type UsersRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// WithQueryTimeout ограничивает время каждого запроса. 0 — без ограничения.
func (r *UsersRepository) WithQueryTimeout(d time.Duration) *UsersRepository {
	r.queryTimeout = d
	return r
}

// Create вставляет пользователя и возвращает запись с полями, проставленными БД
// (id, created_at, updated_at, флаги по умолчанию).
//
// Ошибки:
//   - ErrEmailTaken / ErrUsernameTaken при нарушении уникальности;
//   - ErrInternal при прочих ошибках БД.
func (r *UsersRepository) Create(ctx context.Context, u models.UserInDB) (models.UserInDB, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO users (email, username, salt, password)
		 VALUES ($1,$2,$3,$4)
		 RETURNING `+userColumns,
		u.Email, u.Username, u.Salt, u.Password,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			switch pgErr.ConstraintName {
			case usersEmailConstraint:
				return models.UserInDB{}, serr.ErrEmailTaken
			case usersNameConstraint:
				return models.UserInDB{}, serr.ErrUsernameTaken
			}
			return models.UserInDB{}, serr.ErrAlreadyExists
		}
		return models.UserInDB{}, serr.Internal(err)
	}

	return created, nil
}

// GetByEmail ищет пользователя по точному совпадению email.
// Если пользователя нет — возвращает nil без ошибки.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.UserInDB, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

// GetByUsername ищет пользователя по точному совпадению username.
// Если пользователя нет — возвращает nil без ошибки.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (*models.UserInDB, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *UsersRepository) getOne(ctx context.Context, query string, arg string) (*models.UserInDB, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, serr.Internal(err)
	}
	return &u, nil
}

func (r *UsersRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func scanUser(row *sql.Row) (models.UserInDB, error) {
	var u models.UserInDB
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.EmailVerified,
		&u.Salt,
		&u.Password,
		&u.IsActive,
		&u.IsSuperuser,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
