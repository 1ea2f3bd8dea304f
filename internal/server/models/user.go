// Серверные модели пользователя
package models

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate — входные данные регистрации. Живёт только в рамках запроса.
type UserCreate struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserInDB — пользователь в том виде, в каком он хранится в БД.
//
// Password содержит хэш пароля, а не сам пароль.
type UserInDB struct {
	ID            uuid.UUID
	Email         string
	Username      string
	EmailVerified bool
	Salt          string
	Password      string
	IsActive      bool
	IsSuperuser   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// UserPublic — публичное представление пользователя, без соли и хэша.
type UserPublic struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	IsSuperuser   bool      `json:"is_superuser"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Public отбрасывает чувствительные поля.
func (u UserInDB) Public() UserPublic {
	return UserPublic{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		IsSuperuser:   u.IsSuperuser,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
