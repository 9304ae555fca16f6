// Package app содержит реализации прикладных сценариев.
package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"inkpost/internal/domain/entities"
	"inkpost/internal/domain/services"
	"inkpost/internal/ports/api"
	"inkpost/internal/ports/repositories"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"
	methodRefresh  = "Refresh"
	methodLogout   = "Logout"

	msgStartRegistration  = "starting user registration"
	msgInvalidEmailFormat = "invalid email format"
	msgEmptyUsername      = "empty username provided"
	msgInvalidPassword    = "invalid password"
	msgUserConflict       = "user with this username or email already exists"
	msgUserRegistered     = "user registered successfully"
	msgTokensGenerated    = "authentication tokens generated"
	msgLoginAttempt       = "login attempt"
	msgLoginNonExistent   = "login attempt with non-existent account"
	msgInvalidPasswordLog = "invalid password provided"
	msgUserLoggedIn       = "user logged in successfully"
	msgRefreshingTokens   = "refreshing tokens"
	msgTokensRefreshed    = "tokens refreshed successfully"
	msgProcessingLogout   = "processing logout request"
	msgUserLoggedOut      = "user logged out successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrUploadAvatar      = "failed to upload avatar"
	msgErrUploadCover       = "failed to upload cover image"
	msgErrCreateUser        = "failed to create user"
	msgErrGenerateTokens    = "failed to generate tokens"
	msgErrFindingUser       = "error finding user"
	msgErrVerifyingPassword = "error verifying password"
	msgErrRotatingTokens    = "failed to rotate tokens"
	msgErrClearingSlot      = "failed to clear refresh token slot"

	errCtxValidatingEmail    = "validating email"
	errCtxValidatingUsername = "validating username"
	errCtxValidatingPassword = "validating password"
	errCtxCheckingUser       = "checking existing user"
	errCtxUserConflict       = "username or email already registered"
	errCtxHashingPassword    = "hashing password"
	errCtxUploadingAvatar    = "uploading avatar"
	errCtxUploadingCover     = "uploading cover image"
	errCtxCreatingUser       = "creating user"
	errCtxGeneratingTokens   = "generating tokens"
	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxVerifyingRefresh   = "verifying refresh token"
	errCtxRotatingTokens     = "rotating tokens"
	errCtxClearingSlot       = "clearing refresh token slot"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	storage     svc.FileStorage
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	storage svc.FileStorage,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		storage:     storage,
	}
}

// Register создает нового пользователя и выпускает первую пару токенов.
func (a *AuthUseCaseImpl) Register(ctx context.Context, input api.RegisterInput) (*entities.User, *services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", input.Username))
	log.Debug(ctx, msgStartRegistration)

	if err := validateEmail(input.Email); err != nil {
		log.Debug(ctx, msgInvalidEmailFormat, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, err)
	}
	if input.Username == "" {
		log.Debug(ctx, msgEmptyUsername)
		return nil, nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}
	if len(input.Password) < services.MinPasswordLength {
		log.Debug(ctx, msgInvalidPassword)
		return nil, nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
	}

	username := entities.NormalizeLogin(input.Username)
	email := entities.NormalizeLogin(input.Email)

	existing, err := a.userRepo.FindConflict(ctx, username, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil {
		log.Debug(ctx, msgUserConflict)
		return nil, nil, fmt.Errorf("%s: %w", errCtxUserConflict, entities.ErrUserAlreadyExist)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, input.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	avatarURL := entities.DefaultAvatarURL
	if input.AvatarPath != "" {
		avatarURL, err = a.storage.Upload(ctx, input.AvatarPath)
		if err != nil {
			log.Error(ctx, msgErrUploadAvatar, zap.Error(err))
			return nil, nil, fmt.Errorf("%s: %w", errCtxUploadingAvatar, err)
		}
	}

	var coverURL *string
	if input.CoverImagePath != "" {
		uploaded, err := a.storage.Upload(ctx, input.CoverImagePath)
		if err != nil {
			log.Error(ctx, msgErrUploadCover, zap.Error(err))
			return nil, nil, fmt.Errorf("%s: %w", errCtxUploadingCover, err)
		}
		coverURL = &uploaded
	}

	newUser := &entities.User{
		Username:           username,
		Email:              email,
		FullName:           input.FullName,
		PasswordHash:       hashedPassword,
		Role:               entities.RoleUser,
		Avatar:             avatarURL,
		CoverImage:         coverURL,
		SocialMediaHandles: []entities.SocialMediaHandle{},
	}

	createdUser, err := a.userRepo.Create(ctx, newUser)
	if err != nil {
		log.Error(ctx, msgErrCreateUser, zap.Error(err))
		if errors.Is(err, entities.ErrUserAlreadyExist) {
			return nil, nil, fmt.Errorf("%s: %w", errCtxUserConflict, err)
		}
		return nil, nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	tokenPair, err := a.tokenSvc.Rotate(ctx, createdUser)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", createdUser.ID))
		return nil, nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgTokensGenerated, zap.String("userID", createdUser.ID))
	return createdUser, tokenPair, nil
}

// Login аутентифицирует пользователя по имени пользователя или email.
func (a *AuthUseCaseImpl) Login(ctx context.Context, login, password string) (*entities.User, *services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordLog, zap.String("userID", user.ID))
		return nil, nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	tokenPair, err := a.tokenSvc.Rotate(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrGenerateTokens, zap.Error(err), zap.String("userID", user.ID))
		return nil, nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return user, tokenPair, nil
}

// Refresh проверяет предъявленный refresh токен и ротирует пару. Вход со
// старого токена после ротации отклоняется: слот хранит единственное
// действующее значение.
func (a *AuthUseCaseImpl) Refresh(ctx context.Context, refreshToken string) (*entities.User, *services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))
	log.Debug(ctx, msgRefreshingTokens)

	claims, err := a.tokenSvc.DecodeRefresh(ctx, refreshToken)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtxVerifyingRefresh, err)
	}

	log = log.With(zap.String("userID", claims.UserID))

	user, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if _, err := a.tokenSvc.VerifyRefresh(ctx, refreshToken, user); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", errCtxVerifyingRefresh, err)
	}

	tokenPair, err := a.tokenSvc.RotateFrom(ctx, user, refreshToken)
	if err != nil {
		if errors.Is(err, services.ErrTokenMismatch) {
			log.Debug(ctx, msgErrRotatingTokens, zap.Error(err))
			return nil, nil, fmt.Errorf("%s: %w", errCtxRotatingTokens, err)
		}
		log.Error(ctx, msgErrRotatingTokens, zap.Error(err))
		return nil, nil, fmt.Errorf("%s: %w", errCtxRotatingTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed)
	return user, tokenPair, nil
}

// Logout очищает слот refresh токена пользователя.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout), zap.String("userID", userID))
	log.Debug(ctx, msgProcessingLogout)

	if err := a.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		log.Error(ctx, msgErrClearingSlot, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxClearingSlot, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Валидация email.
func validateEmail(email string) error {
	if email == "" || !emailRegex.MatchString(entities.NormalizeLogin(email)) {
		return entities.ErrInvalidEmail
	}
	return nil
}
