// HTTP-хендлеры регистрации и получения пользователей
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
//
//	{"new_user": {"email": "...", "username": "...", "password": "..."}}
type RegisterRequest struct {
	NewUser *models.UserCreate `json:"new_user"`
}

// RegisterNewUser обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 201 Created: пользователь создан, в теле UserPublic;
//   - 400 Bad Request: email или username уже заняты;
//   - 413 Request Entity Too Large: тело больше лимита;
//   - 422 Unprocessable Entity: неверный JSON или невалидные поля;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register new user
// @Description  Creates a user. Password is stored as a salted hash and never returned.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Register request"
// @Success      201 {object} models.UserPublic
// @Failure      400 {object} ErrorResponse "Email or username already taken"
// @Failure      413 {object} ErrorResponse "Payload too large"
// @Failure      422 {object} ErrorResponse "Validation error"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /users/ [post]
func (h *Handler) RegisterNewUser(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, serr.ErrPayloadTooLarge)
			return
		}
		WriteError(w, http.StatusUnprocessableEntity, &serr.ValidationError{Fields: []serr.FieldError{{
			Loc:  []string{"body"},
			Msg:  serr.ErrBadJSON.Error(),
			Type: "value_error.jsondecode",
		}}})
		return
	}

	if req.NewUser == nil {
		WriteError(w, http.StatusUnprocessableEntity, &serr.ValidationError{Fields: []serr.FieldError{{
			Loc:  []string{"body", "new_user"},
			Msg:  "field required",
			Type: "value_error.missing",
		}}})
		return
	}

	newUser, err := h.Validator.UserCreate(*req.NewUser, "body", "new_user")
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err)
		return
	}

	created, err := h.Svc.Users.RegisterNewUser(r.Context(), newUser)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteError(w, http.StatusBadRequest, err)
		default:
			h.Log.Error("register failed", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, created.Public())
}

// GetUserByUsername возвращает публичные данные пользователя.
//
// @Summary      Get user by username
// @Tags         users
// @Produce      json
// @Param        username path string true "Username"
// @Success      200 {object} models.UserPublic
// @Failure      404 {object} ErrorResponse "User not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /users/{username} [get]
func (h *Handler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.Svc.Users.GetUserByUsername(r.Context(), username)
	if err != nil {
		h.Log.Error("get user failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}
	if user == nil {
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
		return
	}

	WriteJSON(w, http.StatusOK, user.Public())
}
