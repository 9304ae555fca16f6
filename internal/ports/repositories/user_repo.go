// Package repositories определяет интерфейсы хранилищ доменных сущностей.
package repositories

import (
	"context"

	"inkpost/internal/domain/entities"
)

// UserRepository определяет операции над хранилищем пользователей.
type UserRepository interface {
	// Create сохраняет нового пользователя и возвращает созданную запись.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	// FindByID находит пользователя по идентификатору.
	FindByID(ctx context.Context, id string) (*entities.User, error)

	// FindByLogin находит пользователя по имени пользователя или email.
	FindByLogin(ctx context.Context, login string) (*entities.User, error)

	// FindConflict находит пользователя, у которого совпадает имя пользователя
	// или email. Используется при регистрации для проверки уникальности.
	FindConflict(ctx context.Context, username, email string) (*entities.User, error)

	// UpdateRefreshToken безусловно записывает новое значение слота refresh
	// токена. nil очищает слот.
	UpdateRefreshToken(ctx context.Context, id string, token *string) error

	// SwapRefreshToken атомарно заменяет значение слота refresh токена, только
	// если текущее значение равно old. При несовпадении возвращает
	// services.ErrTokenMismatch.
	SwapRefreshToken(ctx context.Context, id, old, next string) error

	// SetVerified выставляет флаг подтверждения email.
	SetVerified(ctx context.Context, id string, verified bool) error

	// UpdateProfile обновляет профильные поля. Список социальных ссылок
	// заменяется целиком.
	UpdateProfile(ctx context.Context, id, fullName, bio string, handles []entities.SocialMediaHandle) (*entities.User, error)

	// UpdateAvatar обновляет URL аватара.
	UpdateAvatar(ctx context.Context, id, url string) (*entities.User, error)

	// UpdateCoverImage обновляет URL обложки профиля.
	UpdateCoverImage(ctx context.Context, id, url string) (*entities.User, error)
}
