// Package api содержит HTTP-клиент для взаимодействия с сервером пользователей.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (POST/GET).
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *APIError со статусом и текстом ошибки.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client реализует HTTP-клиент для общения с сервером.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// insecureTLS=true отключает проверку сертификата (только для локальной разработки
// с самоподписанным сертификатом).
func NewClient(baseURL string, insecureTLS bool) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if insecureTLS {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // только для dev
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: tr,
		},
	}
}

// APIError — ошибочный ответ сервера.
type APIError struct {
	StatusCode int
	Message    string
	Details    []FieldError
}

// FieldError — ошибка валидации поля, как её возвращает сервер.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s", e.StatusCode, e.Message)
	for _, d := range e.Details {
		fmt.Fprintf(&b, "\n  %s: %s", strings.Join(d.Loc, "."), d.Msg)
	}
	return b.String()
}

// readAPIError читает тело ответа сервера и собирает *APIError.
//
// Если тело — JSON вида {"error": ..., "details": [...]}, берём поля из него,
// иначе сообщением становится текст тела (или res.Status, если тело пустое).
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	apiErr := &APIError{StatusCode: res.StatusCode}

	var body struct {
		Error   string       `json:"error"`
		Details []FieldError `json:"details"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = res.Status
	}
	return apiErr
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil — ничего не делает. Пустое тело (io.EOF) ошибкой не считается.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// PostJSON выполняет POST-запрос к серверу, сериализуя req в JSON,
// и декодирует ответ в resp (если resp != nil).
func (c *Client) PostJSON(ctx context.Context, path string, req any, resp any) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	return c.do(r, resp)
}

// GetJSON выполняет GET-запрос к серверу и декодирует ответ в resp (если resp != nil).
func (c *Client) GetJSON(ctx context.Context, path string, resp any) error {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(r, resp)
}

func (c *Client) do(r *http.Request, resp any) error {
	r.Header.Set("Accept", "application/json")

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}
	if res.StatusCode == http.StatusNoContent {
		return nil
	}
	return decodeJSONOrOK(res.Body, resp)
}
