// Package http содержит компоненты для HTTP сервера.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkpost/pkg/apierror"
	"inkpost/pkg/logger"
)

const errMsgFailedToRenderError = "failed to render error response"

// NewErrorHandler создает обработчик ошибок уровня приложения - единственную
// точку отправки ответов об ошибках. Структурированные ошибки рендерятся как
// есть, остальные приводятся к 500 unhandled_error. Трассировка стека
// включается в ответ только вне production-режима.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(ctx fiber.Ctx, err error) error {
		requestCtx := ctx.Context()

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			err = apierror.New(fiberErr.Message, fiberErr.Code, apierror.CodeUnhandled)
		}

		apiErr := apierror.From(err, ctx.Path())
		if apiErr.StatusCode >= fiber.StatusInternalServerError && apiErr.Stack == "" {
			apiErr = apiErr.WithStack()
		}

		if sendErr := ctx.Status(apiErr.StatusCode).JSON(apiErr.Payload(!production)); sendErr != nil {
			logger.Log(requestCtx).Error(requestCtx, errMsgFailedToRenderError, zap.Error(sendErr))
			return sendErr
		}
		return nil
	}
}
