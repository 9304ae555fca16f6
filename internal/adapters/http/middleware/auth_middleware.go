package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkpost/internal/adapters/http/httputil"
	"inkpost/internal/domain/entities"
	"inkpost/internal/ports/repositories"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/apierror"
	"inkpost/pkg/logger"
)

// CurrentUserKey - ключ Locals с аутентифицированным пользователем.
const CurrentUserKey = "currentUser"

const bearerPrefix = "Bearer "

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoCredentials     = "no access token provided"
	ErrorInvalidToken      = "invalid or expired access token"
	ErrorTokenOwnerMissing = "token owner no longer exists"
)

// NewAuthMiddleware создает промежуточное ПО проверки аутентификации.
// Cookie accessToken имеет приоритет над заголовком Authorization. Владелец
// токена перечитывается из хранилища и кладется в Locals для обработчиков.
func NewAuthMiddleware(tokens svc.TokenService, users repositories.UserRepository) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		token := ctx.Cookies(httputil.AccessTokenCookie)
		if token == "" {
			if header := ctx.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, bearerPrefix) {
				token = strings.TrimPrefix(header, bearerPrefix)
			}
		}
		if token == "" {
			log.Debug(requestCtx, ErrorNoCredentials)
			return apierror.New(ErrorNoCredentials, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
				WithPath(ctx.Path())
		}

		claims, err := tokens.VerifyAccess(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return apierror.New(ErrorInvalidToken, fiber.StatusForbidden, apierror.CodeInvalidToken).
				WithPath(ctx.Path()).
				WithCause(err)
		}

		user, err := users.FindByID(requestCtx, claims.UserID)
		if err != nil {
			if errors.Is(err, entities.ErrUserNotFound) {
				log.Debug(requestCtx, ErrorTokenOwnerMissing, zap.String("userID", claims.UserID))
				return apierror.New(ErrorTokenOwnerMissing, fiber.StatusNotFound, apierror.CodeUserNotFound).
					WithPath(ctx.Path()).
					WithCause(err)
			}
			return err
		}

		ctx.Locals(CurrentUserKey, user)

		return ctx.Next()
	}
}

// CurrentUser извлекает аутентифицированного пользователя из Locals.
func CurrentUser(ctx fiber.Ctx) (*entities.User, bool) {
	user, ok := ctx.Locals(CurrentUserKey).(*entities.User)
	return user, ok
}
