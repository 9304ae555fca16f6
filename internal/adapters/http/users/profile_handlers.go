package users

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkpost/internal/adapters/http/dto"
	"inkpost/internal/adapters/http/httputil"
	"inkpost/internal/adapters/http/middleware"
	"inkpost/pkg/apierror"
	"inkpost/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerGetProfile       = "users handler: get profile"
	LogHandlerUpdateProfile    = "users handler: update profile"
	LogHandlerUpdateAvatar     = "users handler: update avatar"
	LogHandlerUpdateCoverImage = "users handler: update cover image"

	ErrorNoCoverImageFile = "coverImage file is required"

	MsgProfileUpdated    = "profile updated successfully"
	MsgAvatarUpdated     = "avatar updated successfully"
	MsgCoverImageUpdated = "cover image updated successfully"
)

// GetProfile возвращает профиль аутентифицированного пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		return apierror.New(ErrorNotAuthenticated, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
			WithPath(ctx.Path())
	}

	user, err := h.users.Profile(requestCtx, current.ID)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"user": user.Public()}, "")
}

// UpdateProfile обновляет профильные поля. Список социальных ссылок
// заменяется целиком.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		return apierror.New(ErrorNotAuthenticated, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
			WithPath(ctx.Path())
	}

	var req dto.UpdateProfileRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequestBody, zap.Error(err))
		return apierror.New(ErrorInvalidRequestBody, fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).WithCause(err)
	}

	user, err := h.users.UpdateProfile(requestCtx, current.ID, req.FullName, req.Bio, req.Handles())
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"user": user.Public()}, MsgProfileUpdated)
}

// UpdateAvatar загружает новый файл аватара и сохраняет его URL.
func (h *Handler) UpdateAvatar(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateAvatar)

	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		return apierror.New(ErrorNotAuthenticated, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
			WithPath(ctx.Path())
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		log.Debug(requestCtx, ErrorNoAvatarFile, zap.Error(err))
		return apierror.New(ErrorNoAvatarFile, fiber.StatusBadRequest, apierror.CodeNoAvatar).
			WithPath(ctx.Path()).WithCause(err)
	}

	path, err := httputil.SaveTempUpload(ctx, file)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToSaveUpload, zap.Error(err))
		return apierror.New(ErrorFailedToSaveUpload, fiber.StatusInternalServerError, apierror.CodeUpload).
			WithPath(ctx.Path()).WithCause(err)
	}

	user, err := h.users.UpdateAvatar(requestCtx, current.ID, path)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"user": user.Public()}, MsgAvatarUpdated)
}

// UpdateCoverImage загружает новый файл обложки и сохраняет его URL в поле
// обложки профиля.
func (h *Handler) UpdateCoverImage(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateCoverImage)

	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		return apierror.New(ErrorNotAuthenticated, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
			WithPath(ctx.Path())
	}

	file, err := ctx.FormFile("coverImage")
	if err != nil {
		log.Debug(requestCtx, ErrorNoCoverImageFile, zap.Error(err))
		return apierror.New(ErrorNoCoverImageFile, fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).WithCause(err).
			WithValidationErrors(apierror.FieldError{Field: "coverImage", Message: ErrorNoCoverImageFile})
	}

	path, err := httputil.SaveTempUpload(ctx, file)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToSaveUpload, zap.Error(err))
		return apierror.New(ErrorFailedToSaveUpload, fiber.StatusInternalServerError, apierror.CodeUpload).
			WithPath(ctx.Path()).WithCause(err)
	}

	user, err := h.users.UpdateCoverImage(requestCtx, current.ID, path)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"user": user.Public()}, MsgCoverImageUpdated)
}
