// Package validate — проверка схемы входящих данных до бизнес-логики.
//
// Правила для каждого поля вынесены в именованные предикаты (IsEmail, IsUsername,
// IsPassword), которые можно проверять отдельно. Validator собирает из них
// ошибку с детализацией по полям (serr.ValidationError).
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
)

// Правила полей в синтаксисе go-playground/validator.
const (
	EmailRules    = "required,max=254,email"
	UsernameRules = "required,min=3,max=32,username"
	PasswordRules = "required,min=7,max=100"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validator потокобезопасен, создаётся один раз при старте.
type Validator struct {
	v *validator.Validate
}

// New создаёт Validator и регистрирует кастомное правило username.
func New() *Validator {
	v := validator.New()
	// RegisterValidation падает только на пустом/зарезервированном теге
	if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return &Validator{v: v}
}

// IsEmail — email обязателен, не длиннее 254 символов и корректного формата.
func (val *Validator) IsEmail(s string) bool {
	return val.v.Var(s, EmailRules) == nil
}

// IsUsername — 3..32 символа из [a-zA-Z0-9_-].
func (val *Validator) IsUsername(s string) bool {
	return val.v.Var(s, UsernameRules) == nil
}

// IsPassword — 7..100 символов.
func (val *Validator) IsPassword(s string) bool {
	return val.v.Var(s, PasswordRules) == nil
}

// UserCreate проверяет данные регистрации и возвращает нормализованную копию
// (email без пробелов и в нижнем регистре).
//
// loc — префикс пути до объекта в теле запроса, например "body", "new_user".
func (val *Validator) UserCreate(u models.UserCreate, loc ...string) (models.UserCreate, error) {
	u.Email = NormalizeEmail(u.Email)

	var fields []serr.FieldError
	fields = append(fields, val.field(u.Email, EmailRules, loc, "email")...)
	fields = append(fields, val.field(u.Username, UsernameRules, loc, "username")...)
	fields = append(fields, val.field(u.Password, PasswordRules, loc, "password")...)

	if len(fields) > 0 {
		return models.UserCreate{}, &serr.ValidationError{Fields: fields}
	}
	return u, nil
}

// NormalizeEmail приводит email к виду, в котором он хранится.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (val *Validator) field(value, rules string, loc []string, name string) []serr.FieldError {
	err := val.v.Var(value, rules)
	if err == nil {
		return nil
	}

	path := append(append([]string{}, loc...), name)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []serr.FieldError{{Loc: path, Msg: err.Error(), Type: "value_error"}}
	}

	// validator останавливается на первом нарушенном правиле поля
	out := make([]serr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, typ := describe(fe.Tag(), fe.Param())
		out = append(out, serr.FieldError{Loc: path, Msg: msg, Type: typ})
	}
	return out
}

func describe(tag, param string) (msg, typ string) {
	switch tag {
	case "required":
		return "field required", "value_error.missing"
	case "email":
		return "value is not a valid email address", "value_error.email"
	case "min":
		return fmt.Sprintf("ensure this value has at least %s characters", param), "value_error.any_str.min_length"
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", param), "value_error.any_str.max_length"
	case "username":
		return fmt.Sprintf("string does not match regex %q", usernameRe.String()), "value_error.str.regex"
	}
	return "invalid value", "value_error"
}
