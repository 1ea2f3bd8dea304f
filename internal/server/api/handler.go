// Package api реализует HTTP-слой сервера.
//
// Пакет отвечает за:
//   - разбор и валидацию тела запроса;
//   - формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/service"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/validate"
	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// ErrorResponse стандартный формат ошибки API.
//
// Details заполняется только для ошибок валидации (422).
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details []serr.FieldError `json:"details,omitempty"`
}

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Validator: проверка схемы входящих данных.
type Handler struct {
	Svc       *service.Services
	Log       *logger.HTTPLogger
	Validator *validate.Validator
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, v *validate.Validator) *Handler {
	return &Handler{
		Svc:       svc,
		Log:       log,
		Validator: v,
	}
}

// WriteJSON пишет v в ответ с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var verr *serr.ValidationError
	if errors.As(err, &verr) {
		resp.Error = serr.ErrInvalidInput.Error()
		resp.Details = verr.Fields
	}
	WriteJSON(w, status, resp)
}
