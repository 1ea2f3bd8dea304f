// Package crypto содержит криптографические примитивы сервера:
// генерацию пользовательской соли, хэширование и проверку паролей.
//
// Поддерживаются две схемы:
//   - bcrypt (по умолчанию);
//   - argon2id.
//
// Хэшер — неизменяемое значение, создаётся один раз при старте из конфига.
// Неизвестная схема — ошибка конструктора, сервер в этом случае не стартует.
package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
)

const (
	SchemeBcrypt   = "bcrypt"
	SchemeArgon2ID = "argon2id"

	argon2Prefix = "argon2id$"
)

// Argon2Params — параметры argon2id.
type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
}

// Params — настройки хэшера.
type Params struct {
	Scheme     string // bcrypt|argon2id
	SaltLen    uint32 // длина соли в байтах
	BcryptCost int
	Argon2     Argon2Params
}

// PasswordHasher хэширует пароли с пользовательской солью.
type PasswordHasher struct {
	p Params
}

// NewPasswordHasher проверяет параметры и создаёт хэшер.
func NewPasswordHasher(p Params) (*PasswordHasher, error) {
	p.Scheme = strings.ToLower(strings.TrimSpace(p.Scheme))

	switch p.Scheme {
	case SchemeBcrypt:
		if p.BcryptCost < bcrypt.MinCost || p.BcryptCost > bcrypt.MaxCost {
			return nil, fmt.Errorf("%w: bcrypt cost %d out of range", serr.ErrUnknownHasher, p.BcryptCost)
		}
	case SchemeArgon2ID:
		a := p.Argon2
		if a.Time == 0 || a.MemoryKiB == 0 || a.Threads == 0 || a.KeyLen == 0 {
			return nil, fmt.Errorf("%w: argon2id params are not set", serr.ErrUnknownHasher)
		}
	default:
		return nil, fmt.Errorf("%w: %q", serr.ErrUnknownHasher, p.Scheme)
	}

	if p.SaltLen == 0 {
		return nil, errors.New("salt length must be > 0")
	}
	return &PasswordHasher{p: p}, nil
}

// Scheme возвращает имя используемой схемы.
func (h *PasswordHasher) Scheme() string {
	return h.p.Scheme
}

// GenerateSalt возвращает новую случайную соль в base64.
func (h *PasswordHasher) GenerateSalt() (string, error) {
	b := make([]byte, h.p.SaltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// Hash возвращает хэш пароля с солью.
//
// Форматы:
//
//	bcrypt:   $2a$<cost>$...
//	argon2id: argon2id$v=19$m=65536,t=3,p=2$<hash_b64>
//
// Для argon2id результат детерминирован для пары (password, salt).
// bcrypt добавляет собственную внутреннюю соль, поэтому сравнение делается через Verify.
func (h *PasswordHasher) Hash(password, salt string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	if salt == "" {
		return "", errors.New("empty salt")
	}

	switch h.p.Scheme {
	case SchemeBcrypt:
		out, err := bcrypt.GenerateFromPassword(bcryptInput(password, salt), h.p.BcryptCost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(out), nil
	case SchemeArgon2ID:
		a := h.p.Argon2
		key := argon2.IDKey([]byte(password), []byte(salt), a.Time, a.MemoryKiB, a.Threads, a.KeyLen)
		return fmt.Sprintf(
			"argon2id$v=%d$m=%d,t=%d,p=%d$%s",
			argon2.Version, a.MemoryKiB, a.Time, a.Threads,
			base64.RawStdEncoding.EncodeToString(key),
		), nil
	}
	return "", serr.ErrUnknownHasher
}

// Verify пересчитывает хэш и сравнивает с сохранённым.
//
// Схема определяется по формату сохранённого хэша, а не по настройкам хэшера,
// так что старые хэши продолжают проверяться после смены схемы.
func (h *PasswordHasher) Verify(password, salt, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, "$2"):
		err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password, salt))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("bcrypt: %w", err)
	case strings.HasPrefix(hash, argon2Prefix):
		return verifyArgon2(password, salt, hash)
	}
	return false, errors.New("invalid hash format")
}

func verifyArgon2(password, salt, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 {
		return false, errors.New("invalid hash format")
	}

	// parts[0] = argon2id
	// parts[1] = v=19
	// parts[2] = m=...,t=...,p=...
	// parts[3] = hash

	var version int
	if _, err := fmt.Sscanf(parts[1], "v=%d", &version); err != nil || version != argon2.Version {
		return false, errors.New("unsupported argon2 version")
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errors.New("invalid params format")
	}
	// argon2.IDKey паникует на нулевых параметрах
	if memory == 0 || time == 0 || threads == 0 {
		return false, errors.New("invalid params format")
	}

	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return false, errors.New("invalid hash")
	}

	got := argon2.IDKey([]byte(password), []byte(salt), time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// bcryptInput смешивает пароль с солью через HMAC-SHA256.
// Длина результата фиксирована (44 байта), лимит bcrypt в 72 байта не достигается.
func bcryptInput(password, salt string) []byte {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(mac.Sum(nil)))
}
