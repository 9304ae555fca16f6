package repositories

import (
	"context"

	"inkpost/internal/domain/entities"
)

// PostRepository определяет операции над хранилищем постов.
type PostRepository interface {
	// Create сохраняет новый пост и возвращает созданную запись.
	Create(ctx context.Context, post *entities.Post) (*entities.Post, error)

	// FindBySlug находит пост по slug.
	FindBySlug(ctx context.Context, slug string) (*entities.Post, error)

	// FindByTitleOrSlug находит пост, у которого совпадает заголовок или slug.
	// Используется для проверки дубликатов при создании.
	FindByTitleOrSlug(ctx context.Context, title, slug string) (*entities.Post, error)
}
