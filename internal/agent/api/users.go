// Методы клиента для эндпоинтов пользователей и health-check.
package api

import (
	"context"
	"net/url"
	"time"
)

// NewUser — данные регистрации.
type NewUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest — тело POST /users/.
type RegisterRequest struct {
	NewUser NewUser `json:"new_user"`
}

// User — публичные данные пользователя, которые отдаёт сервер.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	IsSuperuser   bool      `json:"is_superuser"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HealthResponse — ответ GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Register регистрирует пользователя и возвращает созданную запись.
func (c *Client) Register(ctx context.Context, u NewUser) (User, error) {
	var resp User
	err := c.PostJSON(ctx, "/users/", RegisterRequest{NewUser: u}, &resp)
	return resp, err
}

// GetUser возвращает пользователя по username.
func (c *Client) GetUser(ctx context.Context, username string) (User, error) {
	var resp User
	err := c.GetJSON(ctx, "/users/"+url.PathEscape(username), &resp)
	return resp, err
}

// Health проверяет доступность сервера и его БД.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var resp HealthResponse
	err := c.GetJSON(ctx, "/health", &resp)
	return resp, err
}
