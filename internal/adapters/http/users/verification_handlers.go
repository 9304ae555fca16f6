package users

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkpost/internal/adapters/http/middleware"
	"inkpost/internal/domain/entities"
	"inkpost/pkg/apierror"
	"inkpost/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSendVerification = "users handler: send verification email"
	LogHandlerVerifyEmail      = "users handler: verify email"

	ErrorNoVerificationToken = "token query parameter is required" // #nosec G101 - not a credential
	ErrorEmailDelivery       = "failed to send verification email"

	MsgVerificationSent = "verification email sent"
	MsgEmailVerified    = "email verified successfully"
)

// SendVerificationEmail выпускает токен подтверждения и отправляет письмо
// со ссылкой подтверждения.
func (h *Handler) SendVerificationEmail(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSendVerification)

	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		return apierror.New(ErrorNotAuthenticated, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
			WithPath(ctx.Path())
	}

	if err := h.verification.SendVerificationEmail(requestCtx, current.ID); err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return mapDomainError(ctx, err)
		}
		log.Error(requestCtx, ErrorEmailDelivery, zap.Error(err))
		return apierror.New(ErrorEmailDelivery, fiber.StatusInternalServerError, apierror.CodeEmailDelivery).
			WithPath(ctx.Path()).WithCause(err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{}, MsgVerificationSent)
}

// VerifyEmail проверяет токен из query-параметра и выставляет флаг
// подтверждения. Повторное подтверждение идемпотентно.
func (h *Handler) VerifyEmail(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerVerifyEmail)

	token := ctx.Query("token")
	if token == "" {
		log.Debug(requestCtx, ErrorNoVerificationToken)
		return apierror.New(ErrorNoVerificationToken, fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).
			WithValidationErrors(apierror.FieldError{Field: "token", Message: ErrorNoVerificationToken})
	}

	user, err := h.verification.VerifyEmail(requestCtx, token)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"user": user.Public()}, MsgEmailVerified)
}
