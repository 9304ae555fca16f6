package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkpost/pkg/apierror"
	"inkpost/pkg/logger"
)

// NewRecoveryMiddleware создает промежуточное ПО для восстановления после
// паники. Паника превращается в структурированную ошибку 500 и передается
// дальше в обработчик ошибок приложения.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := ctx.Context()

		defer func() {
			if r := recover(); r != nil {
				logger.Log(requestCtx).Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				err = apierror.New(apierror.DefaultMessage, fiber.StatusInternalServerError, apierror.CodeUnhandled).
					WithPath(ctx.Path()).
					WithCause(fmt.Errorf("panic: %v", r)).
					WithStack()
			}
		}()

		return ctx.Next()
	}
}
