package users

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkpost/internal/adapters/http/dto"
	"inkpost/internal/adapters/http/httputil"
	"inkpost/internal/adapters/http/middleware"
	"inkpost/internal/domain/entities"
	"inkpost/internal/ports/api"
	"inkpost/pkg/apierror"
	"inkpost/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister      = "users handler: register"
	LogHandlerLogin         = "users handler: login"
	LogHandlerRefreshTokens = "users handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout        = "users handler: logout"

	ErrorInvalidRequestBody = "invalid request body"
	ErrorInvalidForm        = "invalid multipart form"
	ErrorNoAvatarFile       = "avatar file is required"
	ErrorNoRefreshToken     = "no refresh token provided" // #nosec G101 - not a credential
	ErrorNotAuthenticated   = "not authenticated"
	ErrorFailedToSaveUpload = "failed to store uploaded file"

	MsgUserRegistered  = "user registered successfully"
	MsgUserLoggedIn    = "logged in successfully"
	MsgTokensRefreshed = "tokens refreshed successfully"
	MsgUserLoggedOut   = "logged out successfully"
)

// Register обрабатывает регистрацию нового пользователя. Запрос приходит
// multipart формой: текстовые поля учетной записи, обязательный файл avatar
// и опциональный файл coverImage.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	input := api.RegisterInput{
		Username: ctx.FormValue("username"),
		Email:    ctx.FormValue("email"),
		FullName: ctx.FormValue("fullName"),
		Password: ctx.FormValue("password"),
	}

	if fields := missingFields(map[string]string{
		"username": input.Username,
		"email":    input.Email,
		"password": input.Password,
	}); len(fields) > 0 {
		return validationError(ctx, fields)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidForm, zap.Error(err))
		return apierror.New(ErrorInvalidForm, fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).WithCause(err)
	}

	avatars := form.File["avatar"]
	if len(avatars) == 0 {
		log.Debug(requestCtx, ErrorNoAvatarFile)
		return apierror.New(ErrorNoAvatarFile, fiber.StatusBadRequest, apierror.CodeNoAvatar).
			WithPath(ctx.Path())
	}

	avatarPath, err := httputil.SaveTempUpload(ctx, avatars[0])
	if err != nil {
		log.Error(requestCtx, ErrorFailedToSaveUpload, zap.Error(err))
		return apierror.New(ErrorFailedToSaveUpload, fiber.StatusInternalServerError, apierror.CodeUpload).
			WithPath(ctx.Path()).WithCause(err)
	}
	input.AvatarPath = avatarPath

	if covers := form.File["coverImage"]; len(covers) > 0 {
		coverPath, err := httputil.SaveTempUpload(ctx, covers[0])
		if err != nil {
			log.Error(requestCtx, ErrorFailedToSaveUpload, zap.Error(err))
			return apierror.New(ErrorFailedToSaveUpload, fiber.StatusInternalServerError, apierror.CodeUpload).
				WithPath(ctx.Path()).WithCause(err)
		}
		input.CoverImagePath = coverPath
	}

	user, pair, err := h.auth.Register(requestCtx, input)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	httputil.SetAuthCookies(ctx, pair, h.production)

	return sendJSON(ctx, fiber.StatusCreated, fiber.Map{"user": user.Public()}, MsgUserRegistered)
}

// Login обрабатывает вход по имени пользователя или email.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequestBody, zap.Error(err))
		return apierror.New(ErrorInvalidRequestBody, fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).WithCause(err)
	}

	req.Login = strings.TrimSpace(req.Login)

	// Пароль обрезается только для проверки наличия: пробелы в нем значимы.
	if fields := missingFields(map[string]string{
		"login":    req.Login,
		"password": strings.TrimSpace(req.Password),
	}); len(fields) > 0 {
		return validationError(ctx, fields)
	}

	user, pair, err := h.auth.Login(requestCtx, req.Login, req.Password)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	httputil.SetAuthCookies(ctx, pair, h.production)

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"user": user.Public()}, MsgUserLoggedIn)
}

// RefreshTokens обрабатывает ротацию пары токенов. Refresh токен читается
// только из cookie; несовпадение со слотом терминально - клиент должен
// войти заново.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefreshTokens)

	token := ctx.Cookies(httputil.RefreshTokenCookie)
	if token == "" {
		log.Debug(requestCtx, ErrorNoRefreshToken)
		return apierror.New(ErrorNoRefreshToken, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
			WithPath(ctx.Path())
	}

	user, pair, err := h.auth.Refresh(requestCtx, token)
	if err != nil {
		return mapDomainError(ctx, err)
	}

	httputil.SetAuthCookies(ctx, pair, h.production)

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"user": user.Public()}, MsgTokensRefreshed)
}

// Logout очищает слот refresh токена и обе cookie. Операция идемпотентна.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return apierror.New(ErrorNotAuthenticated, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
			WithPath(ctx.Path())
	}

	if err := h.auth.Logout(requestCtx, user.ID); err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		return mapDomainError(ctx, err)
	}

	httputil.ClearAuthCookies(ctx, h.production)

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{}, MsgUserLoggedOut)
}
