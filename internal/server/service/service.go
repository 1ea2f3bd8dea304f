// Package service содержит бизнес-логику приложения.
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Health HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users  UserRegistry
	Health *HealthService
}

// NewServices собирает все сервисы приложения.
// hasher создаётся заранее из конфига (неизвестная схема валит старт).
func NewServices(repos Repositories, hasher PasswordHasher) *Services {
	return &Services{
		Users:  NewUsersService(repos.Users, hasher),
		Health: NewHealthService(repos.Health),
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — хранилище пользователей.
//
// GetByEmail/GetByUsername возвращают nil без ошибки, если пользователя нет.
// Create возвращает ErrEmailTaken/ErrUsernameTaken при нарушении уникальности.
type UsersRepo interface {
	Create(ctx context.Context, u models.UserInDB) (models.UserInDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserInDB, error)
	GetByUsername(ctx context.Context, username string) (*models.UserInDB, error)
}

// PasswordHasher — соль и хэширование паролей (crypto.PasswordHasher).
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(password, salt string) (string, error)
	Verify(password, salt, hash string) (bool, error)
}

// UserRegistry — то, что HTTP-слой знает о пользователях:
// поиск по email, поиск по username и регистрация.
type UserRegistry interface {
	GetUserByEmail(ctx context.Context, email string) (*models.UserInDB, error)
	GetUserByUsername(ctx context.Context, username string) (*models.UserInDB, error)
	RegisterNewUser(ctx context.Context, newUser models.UserCreate) (models.UserInDB, error)
}
