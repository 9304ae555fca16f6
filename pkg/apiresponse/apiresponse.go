// Package apiresponse определяет единый конверт успешного ответа API.
package apiresponse

import (
	"net/http"
	"time"
)

// Pagination описывает блок пагинации в метаданных ответа.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Meta содержит метаданные ответа.
type Meta struct {
	Timestamp  string         `json:"timestamp"`
	Path       string         `json:"path"`
	Pagination *Pagination    `json:"pagination,omitempty"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// Response представляет единый конверт успешного ответа.
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Meta       Meta   `json:"meta"`
}

// Option настраивает создаваемый ответ.
type Option func(*Response)

// WithStatusCode устанавливает статус-код ответа.
func WithStatusCode(code int) Option {
	return func(r *Response) { r.StatusCode = code }
}

// WithMessage устанавливает сообщение ответа.
func WithMessage(message string) Option {
	return func(r *Response) { r.Message = message }
}

// WithPath устанавливает путь запроса в метаданных.
func WithPath(path string) Option {
	return func(r *Response) { r.Meta.Path = path }
}

// WithMeta добавляет произвольные метаданные.
func WithMeta(extra map[string]any) Option {
	return func(r *Response) { r.Meta.Extra = extra }
}

// WithPagination добавляет блок пагинации в метаданные.
func WithPagination(page, limit, total int) Option {
	return func(r *Response) {
		pages := 0
		if limit > 0 {
			pages = (total + limit - 1) / limit
		}
		r.Meta.Pagination = &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
	}
}

// Success создает ответ с данными. Статус-код ограничивается диапазоном
// [100, 599], признак success выводится как statusCode < 400.
func Success(data any, opts ...Option) *Response {
	resp := &Response{
		StatusCode: http.StatusOK,
		Data:       data,
		Meta: Meta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	for _, opt := range opts {
		opt(resp)
	}

	if resp.StatusCode < http.StatusContinue {
		resp.StatusCode = http.StatusContinue
	}
	if resp.StatusCode > 599 {
		resp.StatusCode = 599
	}
	resp.Success = resp.StatusCode < http.StatusBadRequest

	return resp
}
