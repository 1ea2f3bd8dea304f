// Package http реализует маршрутизацию HTTP-слоя сервера.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - ограничение размера тела запроса.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-users/internal/server/middleware"
)

// RouterOptions — параметры роутера из конфига сервера.
type RouterOptions struct {
	MaxBodyBytes int64 // 0 — без ограничения
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - request id, recoverer и логирование для всех запросов;
//   - swagger UI под /swagger/*;
//   - /health;
//   - эндпоинты пользователей под префиксом /users.
func NewRouter(h *api.Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)
	if opts.MaxBodyBytes > 0 {
		r.Use(chimw.RequestSize(opts.MaxBodyBytes))
	}

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", h.Health)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.RegisterNewUser)
		r.Get("/{username}", h.GetUserByUsername)
	})

	return r
}
