// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// только для пользователей
var (
	ErrEmailTaken    = fmt.Errorf("email %w", ErrAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("username %w", ErrAlreadyExists)
	// тело запроса больше server.max_body_bytes
	ErrPayloadTooLarge = errors.New("payload too large")
	// неизвестная схема хэширования паролей, проверяется при старте
	ErrUnknownHasher = errors.New("unknown password hasher")
)

// FieldError описывает ошибку валидации одного поля.
//
// Loc — путь до поля, например ["body", "new_user", "email"].
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError — ошибка схемы запроса с детализацией по полям.
//
// errors.Is(err, ErrInvalidInput) для неё возвращает true.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Internal оборачивает ошибку хранилища в ErrInternal, сохраняя причину для логов.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
