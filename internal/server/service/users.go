package service

import (
	"context"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/validate"
	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
)

// UsersService реализует регистрацию и поиск пользователей.
//
// Ответственность:
//   - проверка, что email и username свободны
//   - генерация соли и хэширование пароля
//   - сохранение пользователя
type UsersService struct {
	users  UsersRepo
	hasher PasswordHasher
}

var _ UserRegistry = (*UsersService)(nil)

// NewUsersService создаёт UsersService.
func NewUsersService(users UsersRepo, hasher PasswordHasher) *UsersService {
	return &UsersService{users: users, hasher: hasher}
}

// GetUserByEmail возвращает пользователя или nil, если его нет.
func (s *UsersService) GetUserByEmail(ctx context.Context, email string) (*models.UserInDB, error) {
	return s.users.GetByEmail(ctx, validate.NormalizeEmail(email))
}

// GetUserByUsername возвращает пользователя или nil, если его нет.
func (s *UsersService) GetUserByUsername(ctx context.Context, username string) (*models.UserInDB, error) {
	return s.users.GetByUsername(ctx, username)
}

// RegisterNewUser регистрирует нового пользователя.
//
// newUser должен быть уже провалидирован (validate.Validator.UserCreate).
//
// Предварительные проверки дают понятную ошибку в обычном случае.
// Гонку двух одновременных регистраций закрывает уникальный индекс в БД:
// репозиторий вернёт ту же ErrEmailTaken/ErrUsernameTaken.
//
// Ошибки:
//   - ErrEmailTaken, ErrUsernameTaken
//   - ErrInternal
func (s *UsersService) RegisterNewUser(ctx context.Context, newUser models.UserCreate) (models.UserInDB, error) {
	email := validate.NormalizeEmail(newUser.Email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.UserInDB{}, err
	}
	if existing != nil {
		return models.UserInDB{}, serr.ErrEmailTaken
	}

	existing, err = s.users.GetByUsername(ctx, newUser.Username)
	if err != nil {
		return models.UserInDB{}, err
	}
	if existing != nil {
		return models.UserInDB{}, serr.ErrUsernameTaken
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return models.UserInDB{}, serr.Internal(err)
	}
	hash, err := s.hasher.Hash(newUser.Password, salt)
	if err != nil {
		return models.UserInDB{}, serr.Internal(err)
	}

	return s.users.Create(ctx, models.UserInDB{
		Email:    email,
		Username: newUser.Username,
		Salt:     salt,
		Password: hash,
	})
}
