package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-yandex-users/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/validate"
	serr "github.com/IvanChernomyrdin/go-yandex-users/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/shared/logger"
)

// NewTestHandler создаёт Handler с моками через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, *svcmocks.MockUserRegistry, *svcmocks.MockHealthRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := svcmocks.NewMockUserRegistry(ctrl)
	health := svcmocks.NewMockHealthRepo(ctrl)

	svc := &service.Services{
		Users:  users,
		Health: service.NewHealthService(health),
	}
	log := logger.New(logger.Options{File: filepath.Join(t.TempDir(), "http.log")})

	return api.NewHandler(svc, log, validate.New()), users, health
}

func registerBody(email, username, password string) *bytes.Buffer {
	b, _ := json.Marshal(map[string]any{
		"new_user": map[string]string{
			"email":    email,
			"username": username,
			"password": password,
		},
	})
	return bytes.NewBuffer(b)
}

func doRegister(h *api.Handler, body *bytes.Buffer) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users/", body)
	req.Header.Set(api.ContentType, api.JsonContentType)
	rec := httptest.NewRecorder()
	h.RegisterNewUser(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func storedUser(email, username string) models.UserInDB {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.UserInDB{
		ID:        uuid.New(),
		Email:     email,
		Username:  username,
		Salt:      "salt",
		Password:  "$2a$04$hash",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Успешная регистрация: 201 и публичные поля без пароля и соли
func TestHandler_Register_Created(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	created := storedUser("test@mail.com", "test_user")
	users.EXPECT().
		RegisterNewUser(gomock.Any(), models.UserCreate{Email: "test@mail.com", Username: "test_user", Password: "testpassword"}).
		Return(created, nil)

	rec := doRegister(h, registerBody(" Test@Mail.com", "test_user", "testpassword"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, api.JsonContentType, rec.Header().Get(api.ContentType))

	raw := rec.Body.String()
	require.NotContains(t, raw, "password")
	require.NotContains(t, raw, "salt")

	var got models.UserPublic
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "test@mail.com", got.Email)
	require.Equal(t, "test_user", got.Username)
	require.True(t, got.IsActive)
	require.False(t, got.IsSuperuser)
	require.False(t, got.EmailVerified)
}

// Занятые email или username: 400
func TestHandler_Register_Conflicts(t *testing.T) {
	t.Parallel()

	cases := map[string]error{
		"email":    serr.ErrEmailTaken,
		"username": serr.ErrUsernameTaken,
	}
	for name, svcErr := range cases {
		t.Run(name, func(t *testing.T) {
			h, users, _ := NewTestHandler(t)

			users.EXPECT().RegisterNewUser(gomock.Any(), gomock.Any()).Return(models.UserInDB{}, svcErr)

			rec := doRegister(h, registerBody("test@mail.com", "test_user", "testpassword"))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, svcErr.Error(), decodeError(t, rec).Error)
		})
	}
}

// Невалидные поля: 422 без обращения к сервису
func TestHandler_Register_Unprocessable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                      string
		email, username, password string
		field                     string
	}{
		{"bad email", "invalid_email@one@two.com", "really_unique_username", "testpassword", "email"},
		{"short password", "really_unique_email@test.io", "really_unique_username", "short", "password"},
		{"bad username chars", "really_unique_email@test.io", "test@#$%^&*(<>", "testpassword", "username"},
		{"short username", "really_unique_email@test.io", "ab", "testpassword", "username"},
		{"empty email", "", "really_unique_username", "testpassword", "email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _, _ := NewTestHandler(t)

			rec := doRegister(h, registerBody(tc.email, tc.username, tc.password))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			resp := decodeError(t, rec)
			require.Equal(t, serr.ErrInvalidInput.Error(), resp.Error)
			require.Len(t, resp.Details, 1)
			require.Equal(t, []string{"body", "new_user", tc.field}, resp.Details[0].Loc)
		})
	}
}

// Несколько невалидных полей — ошибки по каждому
func TestHandler_Register_AllFieldsInvalid(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	rec := doRegister(h, registerBody("nope", "a", "b"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Len(t, decodeError(t, rec).Details, 3)
}

// Нет объекта new_user
func TestHandler_Register_MissingEnvelope(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	rec := doRegister(h, bytes.NewBufferString(`{}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	require.Equal(t, []string{"body", "new_user"}, resp.Details[0].Loc)
	require.Equal(t, "value_error.missing", resp.Details[0].Type)
}

// Битый JSON
func TestHandler_Register_BadJSON(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	rec := doRegister(h, bytes.NewBufferString("{bad json"))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	require.Equal(t, []string{"body"}, resp.Details[0].Loc)
	require.Equal(t, serr.ErrBadJSON.Error(), resp.Details[0].Msg)
}

// Слишком большое тело
func TestHandler_Register_TooLarge(t *testing.T) {
	t.Parallel()

	h, _, _ := NewTestHandler(t)

	body := registerBody("test@mail.com", "test_user", strings.Repeat("x", 2048))
	req := httptest.NewRequest(http.MethodPost, "/users/", body)
	rec := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rec, req.Body, 256)

	h.RegisterNewUser(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Equal(t, serr.ErrPayloadTooLarge.Error(), decodeError(t, rec).Error)
}

// Ошибка хранилища: 500 без подробностей
func TestHandler_Register_InternalError(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	users.EXPECT().
		RegisterNewUser(gomock.Any(), gomock.Any()).
		Return(models.UserInDB{}, serr.Internal(errors.New("pq: connection refused")))

	rec := doRegister(h, registerBody("test@mail.com", "test_user", "testpassword"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, serr.ErrInternal.Error(), decodeError(t, rec).Error)
}

func getUser(h *api.Handler, username string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/users/{username}", h.GetUserByUsername)

	req := httptest.NewRequest(http.MethodGet, "/users/"+username, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetUser_OK(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	u := storedUser("test@mail.com", "test_user")
	users.EXPECT().GetUserByUsername(gomock.Any(), "test_user").Return(&u, nil)

	rec := getUser(h, "test_user")

	require.Equal(t, http.StatusOK, rec.Code)
	var got models.UserPublic
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Equal(t, u.ID, got.ID)
}

func TestHandler_GetUser_NotFound(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	users.EXPECT().GetUserByUsername(gomock.Any(), "ghost").Return(nil, nil)

	rec := getUser(h, "ghost")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, serr.ErrNotFound.Error(), decodeError(t, rec).Error)
}

func TestHandler_GetUser_InternalError(t *testing.T) {
	t.Parallel()

	h, users, _ := NewTestHandler(t)

	users.EXPECT().GetUserByUsername(gomock.Any(), "test_user").Return(nil, serr.Internal(errors.New("boom")))

	rec := getUser(h, "test_user")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	h, _, health := NewTestHandler(t)

	health.EXPECT().Ping(gomock.Any()).Return(nil)
	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	health.EXPECT().Ping(gomock.Any()).DoAndReturn(func(context.Context) error { return errors.New("down") })
	rec = httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp api.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "unavailable", resp.Status)
}
