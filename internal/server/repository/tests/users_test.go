package tests

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
)

var userCols = []string{
	"id", "email", "username", "email_verified", "salt", "password",
	"is_active", "is_superuser", "created_at", "updated_at",
}

func userRow(id uuid.UUID, email, username string, now time.Time) []driver.Value {
	return []driver.Value{id.String(), email, username, false, "salt", "hash", true, false, now, now}
}

func newUser() models.UserInDB {
	return models.UserInDB{
		Email:    "test@mail.com",
		Username: "test_user",
		Salt:     "salt",
		Password: "hash",
	}
}

// Успех
func TestUsersRepository_Create_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewUsersRepository(db).WithQueryTimeout(time.Second)

	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("test@mail.com", "test_user", "salt", "hash").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userRow(id, "test@mail.com", "test_user", now)...))

	got, err := repo.Create(context.Background(), newUser())
	require.NoError(t, err)

	require.Equal(t, id, got.ID)
	require.Equal(t, "test@mail.com", got.Email)
	require.Equal(t, "test_user", got.Username)
	require.True(t, got.IsActive)
	require.False(t, got.IsSuperuser)
	require.False(t, got.EmailVerified)
	require.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Конфликт по email
func TestUsersRepository_Create_EmailConflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrEmailTaken)
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// Конфликт по username
func TestUsersRepository_Create_UsernameConflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrUsernameTaken)
}

// Конфликт по неизвестному ограничению
func TestUsersRepository_Create_OtherUniqueConflict(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
	require.NotErrorIs(t, err, serr.ErrEmailTaken)
}

// Прочие ошибки БД
func TestUsersRepository_Create_InternalError(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), newUser())
	require.ErrorIs(t, err, serr.ErrInternal)
}

// Найден по email
func TestUsersRepository_GetByEmail_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email=\$1`).
		WithArgs("test@mail.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userRow(id, "test@mail.com", "test_user", time.Now())...))

	u, err := repo.GetByEmail(context.Background(), "test@mail.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, id, u.ID)
	require.Equal(t, "hash", u.Password)
	require.Equal(t, "salt", u.Salt)
}

// Нет пользователя — nil без ошибки
func TestUsersRepository_GetByEmail_Absent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email=\$1`).
		WithArgs("nobody@mail.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	u, err := repo.GetByEmail(context.Background(), "nobody@mail.com")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestUsersRepository_GetByEmail_Error(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email=\$1`).
		WillReturnError(errors.New("boom"))

	u, err := repo.GetByEmail(context.Background(), "test@mail.com")
	require.ErrorIs(t, err, serr.ErrInternal)
	require.Nil(t, u)
}

func TestUsersRepository_GetByUsername_OK(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username=\$1`).
		WithArgs("test_user").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(userRow(id, "test@mail.com", "test_user", time.Now())...))

	u, err := repo.GetByUsername(context.Background(), "test_user")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "test_user", u.Username)
}

func TestUsersRepository_GetByUsername_Absent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := repository.NewUsersRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username=\$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userCols))

	u, err := repo.GetByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	require.Nil(t, u)
}

// Health: ping
func TestHealthRepository_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewHealthRepository(db)

	mock.ExpectPing()
	require.NoError(t, repo.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	require.ErrorIs(t, repo.Ping(context.Background()), serr.ErrInternal)
}
