package api

import (
	"context"

	"inkpost/internal/domain/entities"
)

// UserUseCase определяет порт для операций над профилем пользователя.
type UserUseCase interface {
	// Profile возвращает пользователя по идентификатору.
	Profile(ctx context.Context, userID string) (*entities.User, error)

	// UpdateProfile обновляет профильные поля. Список социальных ссылок
	// заменяется целиком.
	UpdateProfile(ctx context.Context, userID, fullName, bio string, handles []entities.SocialMediaHandle) (*entities.User, error)

	// UpdateAvatar загружает файл аватара в хранилище и сохраняет его URL.
	UpdateAvatar(ctx context.Context, userID, localPath string) (*entities.User, error)

	// UpdateCoverImage загружает файл обложки в хранилище и сохраняет его URL.
	UpdateCoverImage(ctx context.Context, userID, localPath string) (*entities.User, error)
}

// VerificationUseCase определяет порт подтверждения email.
type VerificationUseCase interface {
	// SendVerificationEmail выпускает токен подтверждения и отправляет письмо
	// со ссылкой подтверждения.
	SendVerificationEmail(ctx context.Context, userID string) error

	// VerifyEmail проверяет токен и выставляет флаг подтверждения.
	VerifyEmail(ctx context.Context, token string) (*entities.User, error)
}
