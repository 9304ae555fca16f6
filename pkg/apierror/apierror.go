// Package apierror определяет структурированную ошибку API с HTTP статусом,
// машиночитаемым кодом и списком ошибок валидации.
package apierror

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"
)

// Категории ошибок, выводимые из диапазона статус-кода.
const (
	StatusClientFailure = "Client Side failure"
	StatusServerError   = "Server side error"
)

// Машиночитаемые коды ошибок.
const (
	CodeValidation         = "validation_error"
	CodeConflictingUser    = "conflicting_user"
	CodeDuplicatePost      = "duplicate_post_title_or_slug"
	CodeNotAuthenticated   = "not_authenticated"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidToken       = "invalid_token"
	CodeTokenMismatch      = "token_mismatch"
	CodeUserNotFound       = "user_not_found"
	CodeNotFound           = "not_found"
	CodeNoAvatar           = "no_avatar"
	CodeUpload             = "upload_error"
	CodeEmailDelivery      = "failed_to_send_verification_email"
	CodePersistence        = "persistence_error"
	CodeUnhandled          = "unhandled_error"
)

// DefaultMessage используется, когда исходная ошибка не содержит сообщения.
const DefaultMessage = "Something went wrong"

// FieldError описывает ошибку валидации одного поля запроса.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error представляет структурированную ошибку приложения.
type Error struct {
	Message          string       `json:"message"`
	StatusCode       int          `json:"statusCode"`
	Status           string       `json:"status"`
	ErrorCode        string       `json:"errorCode"`
	Path             string       `json:"path"`
	Timestamp        string       `json:"timestamp"`
	ValidationErrors []FieldError `json:"validationErrors"`
	Cause            string       `json:"-"`
	Stack            string       `json:"-"`

	cause error
}

// New создает ошибку API с указанным сообщением, статусом и кодом.
func New(message string, statusCode int, errorCode string) *Error {
	if message == "" {
		message = DefaultMessage
	}
	if statusCode < http.StatusContinue || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}

	status := StatusServerError
	if statusCode >= 400 && statusCode < 500 {
		status = StatusClientFailure
	}

	return &Error{
		Message:          message,
		StatusCode:       statusCode,
		Status:           status,
		ErrorCode:        errorCode,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		ValidationErrors: []FieldError{},
	}
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap возвращает исходную причину ошибки.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithPath устанавливает путь запроса, породившего ошибку.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// WithValidationErrors прикрепляет список ошибок валидации полей.
func (e *Error) WithValidationErrors(fieldErrors ...FieldError) *Error {
	e.ValidationErrors = append(e.ValidationErrors, fieldErrors...)
	return e
}

// WithCause прикрепляет исходную ошибку.
func (e *Error) WithCause(cause error) *Error {
	if cause != nil {
		e.cause = cause
		e.Cause = cause.Error()
	}
	return e
}

// WithStack прикрепляет трассировку стека текущей горутины.
func (e *Error) WithStack() *Error {
	e.Stack = string(debug.Stack())
	return e
}

// From нормализует произвольную ошибку в *Error. Уже структурированные ошибки
// проходят без изменений (путь дополняется, если не был установлен), остальные
// превращаются в 500 unhandled_error с сохранением исходного сообщения.
func From(err error, path string) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Path == "" {
			apiErr.Path = path
		}
		return apiErr
	}

	message := DefaultMessage
	if err != nil {
		message = err.Error()
	}

	return New(message, http.StatusInternalServerError, CodeUnhandled).
		WithPath(path).
		WithCause(err)
}

// payload описывает сериализуемую форму ошибки.
type payload struct {
	Success          bool         `json:"success"`
	Status           string       `json:"status"`
	StatusCode       int          `json:"statusCode"`
	ErrorCode        string       `json:"errorCode"`
	Message          string       `json:"message"`
	Path             string       `json:"path"`
	Timestamp        string       `json:"timestamp"`
	ValidationErrors []FieldError `json:"validationErrors"`
	Cause            string       `json:"cause,omitempty"`
	Stack            string       `json:"stack,omitempty"`
}

// Payload возвращает сериализуемую форму ошибки. Трассировка стека
// включается только при includeStack (вне production-режима).
func (e *Error) Payload(includeStack bool) any {
	p := payload{
		Success:          false,
		Status:           e.Status,
		StatusCode:       e.StatusCode,
		ErrorCode:        e.ErrorCode,
		Message:          e.Message,
		Path:             e.Path,
		Timestamp:        e.Timestamp,
		ValidationErrors: e.ValidationErrors,
		Cause:            e.Cause,
	}
	if includeStack {
		p.Stack = e.Stack
	}
	return p
}
