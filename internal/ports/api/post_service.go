package api

import (
	"context"

	"inkpost/internal/domain/entities"
)

// CreatePostInput содержит данные нового поста.
type CreatePostInput struct {
	AuthorID string
	Title    string
	// Slug задается клиентом и приводится к каноническому виду при создании.
	Slug    string
	Content string
	Excerpt string
	Category   string
	Tags       []string
	Status     entities.PostStatus
	SEO        entities.SEO
	IsFeatured bool
	// ImagePaths - пути к временно сохраненным файлам изображений.
	ImagePaths []string
	AltTexts   []string
}

// PostUseCase определяет порт для операций над постами.
type PostUseCase interface {
	// CreatePost загружает изображения, создает пост и возвращает созданную
	// запись.
	CreatePost(ctx context.Context, input CreatePostInput) (*entities.Post, error)

	// GetPostBySlug возвращает пост по slug.
	GetPostBySlug(ctx context.Context, slug string) (*entities.Post, error)
}
