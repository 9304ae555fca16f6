// Package api определяет порты прикладного уровня.
package api

import (
	"context"

	"inkpost/internal/domain/entities"
	"inkpost/internal/domain/services"
)

// RegisterInput содержит данные регистрации нового пользователя.
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string
	// AvatarPath - путь к временно сохраненному файлу аватара.
	// Пустое значение означает, что аватар не загружен.
	AvatarPath string
	// CoverImagePath - путь к временно сохраненному файлу обложки профиля,
	// опционален.
	CoverImagePath string
}

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	// Register создает пользователя и выпускает первую пару токенов.
	Register(ctx context.Context, input RegisterInput) (*entities.User, *services.TokenPair, error)

	// Login аутентифицирует пользователя по имени пользователя или email.
	Login(ctx context.Context, login, password string) (*entities.User, *services.TokenPair, error)

	// Refresh проверяет предъявленный refresh токен и ротирует пару.
	Refresh(ctx context.Context, refreshToken string) (*entities.User, *services.TokenPair, error)

	// Logout очищает слот refresh токена пользователя.
	Logout(ctx context.Context, userID string) error
}
