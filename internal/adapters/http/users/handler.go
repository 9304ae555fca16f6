// Package users содержит HTTP обработчики учетных записей: регистрацию,
// вход, ротацию токенов, профиль и подтверждение email.
package users

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"inkpost/internal/domain/entities"
	"inkpost/internal/domain/services"
	"inkpost/internal/ports/api"
	"inkpost/pkg/apierror"
	"inkpost/pkg/apiresponse"
)

// Handler содержит HTTP обработчики учетных записей.
type Handler struct {
	auth         api.AuthUseCase
	users        api.UserUseCase
	verification api.VerificationUseCase
	production   bool
}

// NewHandler создает новый экземпляр обработчика учетных записей.
func NewHandler(auth api.AuthUseCase, users api.UserUseCase, verification api.VerificationUseCase, production bool) *Handler {
	return &Handler{
		auth:         auth,
		users:        users,
		verification: verification,
		production:   production,
	}
}

// sendJSON отправляет успешный ответ в едином конверте.
func sendJSON(ctx fiber.Ctx, status int, data any, message string) error {
	resp := apiresponse.Success(data,
		apiresponse.WithStatusCode(status),
		apiresponse.WithMessage(message),
		apiresponse.WithPath(ctx.Path()))

	if err := ctx.Status(status).JSON(resp); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// missingFields возвращает список ошибок для незаполненных полей.
func missingFields(values map[string]string) []apierror.FieldError {
	var fields []apierror.FieldError
	for name, value := range values {
		if value == "" {
			fields = append(fields, apierror.FieldError{Field: name, Message: name + " is required"})
		}
	}
	return fields
}

// validationError создает ошибку 400 со списком незаполненных полей.
func validationError(ctx fiber.Ctx, fields []apierror.FieldError) error {
	return apierror.New("required fields are missing", fiber.StatusBadRequest, apierror.CodeValidation).
		WithPath(ctx.Path()).
		WithValidationErrors(fields...)
}

// mapDomainError переводит доменные ошибки в структурированные ошибки API.
// Неизвестные ошибки возвращаются как есть и обрабатываются как 500.
func mapDomainError(ctx fiber.Ctx, err error) error {
	path := ctx.Path()

	switch {
	case errors.Is(err, entities.ErrInvalidEmail):
		return apierror.New(entities.ErrInvalidEmail.Error(), fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(path).WithCause(err).
			WithValidationErrors(apierror.FieldError{Field: "email", Message: entities.ErrInvalidEmail.Error()})
	case errors.Is(err, entities.ErrEmptyUsername):
		return apierror.New(entities.ErrEmptyUsername.Error(), fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(path).WithCause(err).
			WithValidationErrors(apierror.FieldError{Field: "username", Message: entities.ErrEmptyUsername.Error()})
	case errors.Is(err, entities.ErrPasswordTooShort):
		return apierror.New(entities.ErrPasswordTooShort.Error(), fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(path).WithCause(err).
			WithValidationErrors(apierror.FieldError{Field: "password", Message: entities.ErrPasswordTooShort.Error()})
	case errors.Is(err, entities.ErrUserAlreadyExist):
		return apierror.New(entities.ErrUserAlreadyExist.Error(), fiber.StatusConflict, apierror.CodeConflictingUser).
			WithPath(path).WithCause(err)
	case errors.Is(err, entities.ErrUserNotFound):
		return apierror.New(entities.ErrUserNotFound.Error(), fiber.StatusNotFound, apierror.CodeUserNotFound).
			WithPath(path).WithCause(err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return apierror.New(services.ErrInvalidCredentials.Error(), fiber.StatusUnauthorized, apierror.CodeInvalidCredentials).
			WithPath(path).WithCause(err)
	case errors.Is(err, services.ErrTokenMismatch):
		return apierror.New(services.ErrTokenMismatch.Error(), fiber.StatusUnauthorized, apierror.CodeTokenMismatch).
			WithPath(path).WithCause(err)
	case errors.Is(err, services.ErrExpiredToken), errors.Is(err, services.ErrInvalidToken):
		return apierror.New(services.ErrInvalidToken.Error(), fiber.StatusUnauthorized, apierror.CodeInvalidToken).
			WithPath(path).WithCause(err)
	case errors.Is(err, services.ErrPersistingToken):
		return apierror.New(apierror.DefaultMessage, fiber.StatusInternalServerError, apierror.CodePersistence).
			WithPath(path).WithCause(err)
	default:
		return err
	}
}
