package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inkpost/internal/domain/entities"
	"inkpost/internal/ports/api"
	"inkpost/internal/ports/repositories"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/logger"
)

const (
	methodProfile          = "Profile"
	methodUpdateProfile    = "UpdateProfile"
	methodUpdateAvatar     = "UpdateAvatar"
	methodUpdateCoverImage = "UpdateCoverImage"

	msgFetchingProfile  = "fetching user profile"
	msgProfileUpdated   = "profile updated successfully"
	msgAvatarUpdated    = "avatar updated successfully"
	msgCoverUpdated     = "cover image updated successfully"
	msgErrUploadFile    = "failed to upload file"
	msgErrUpdateProfile = "failed to update profile"
	msgErrUpdateAvatar  = "failed to update avatar"
	msgErrUpdateCover   = "failed to update cover image"

	errCtxUploadingFile   = "uploading file"
	errCtxUpdatingProfile = "updating profile"
	errCtxUpdatingAvatar  = "updating avatar"
	errCtxUpdatingCover   = "updating cover image"
)

// UserUseCaseImpl реализует интерфейс UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
	storage  svc.FileStorage
}

// NewUserUseCase создает новый экземпляр сервиса профилей.
func NewUserUseCase(userRepo repositories.UserRepository, storage svc.FileStorage) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		storage:  storage,
	}
}

// Profile возвращает пользователя по идентификатору.
func (u *UserUseCaseImpl) Profile(ctx context.Context, userID string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProfile), zap.String("userID", userID))
	log.Debug(ctx, msgFetchingProfile)

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return user, nil
}

// UpdateProfile обновляет профильные поля. Список социальных ссылок заменяется
// целиком: прислать пустой список значит удалить все ссылки.
func (u *UserUseCaseImpl) UpdateProfile(ctx context.Context, userID, fullName, bio string, handles []entities.SocialMediaHandle) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateProfile), zap.String("userID", userID))

	user, err := u.userRepo.UpdateProfile(ctx, userID, fullName, bio, handles)
	if err != nil {
		log.Error(ctx, msgErrUpdateProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingProfile, err)
	}

	log.Info(ctx, msgProfileUpdated)
	return user, nil
}

// UpdateAvatar загружает файл аватара в хранилище и сохраняет его URL.
func (u *UserUseCaseImpl) UpdateAvatar(ctx context.Context, userID, localPath string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateAvatar), zap.String("userID", userID))

	url, err := u.storage.Upload(ctx, localPath)
	if err != nil {
		log.Error(ctx, msgErrUploadFile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUploadingFile, err)
	}

	user, err := u.userRepo.UpdateAvatar(ctx, userID, url)
	if err != nil {
		log.Error(ctx, msgErrUpdateAvatar, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAvatar, err)
	}

	log.Info(ctx, msgAvatarUpdated)
	return user, nil
}

// UpdateCoverImage загружает файл обложки в хранилище и сохраняет его URL в
// поле обложки профиля.
func (u *UserUseCaseImpl) UpdateCoverImage(ctx context.Context, userID, localPath string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateCoverImage), zap.String("userID", userID))

	url, err := u.storage.Upload(ctx, localPath)
	if err != nil {
		log.Error(ctx, msgErrUploadFile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUploadingFile, err)
	}

	user, err := u.userRepo.UpdateCoverImage(ctx, userID, url)
	if err != nil {
		log.Error(ctx, msgErrUpdateCover, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingCover, err)
	}

	log.Info(ctx, msgCoverUpdated)
	return user, nil
}
