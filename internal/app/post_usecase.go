package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"inkpost/internal/domain/entities"
	"inkpost/internal/ports/api"
	portscache "inkpost/internal/ports/cache"
	"inkpost/internal/ports/repositories"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/logger"
)

const (
	methodCreatePost    = "CreatePost"
	methodGetPostBySlug = "GetPostBySlug"

	postCacheKeyPrefix = "post:slug:"

	msgCreatingPost       = "creating post"
	msgPostCreated        = "post created successfully"
	msgDuplicatePost      = "post with the same title or slug already exists"
	msgFetchingPost       = "fetching post by slug"
	msgPostCacheHit       = "post served from cache"
	msgErrCheckDuplicate  = "failed to check post duplicate"
	msgErrUploadImages    = "failed to upload post images"
	msgErrCreatePost      = "failed to create post"
	msgErrFindingPost     = "error finding post"
	msgPostNotPublished   = "post is not published"
	msgErrCacheRead       = "failed to read post from cache"
	msgErrCacheWrite      = "failed to cache post"
	msgErrCacheDecode     = "failed to decode cached post"
	msgErrCacheSerialize  = "failed to serialize post for cache"
	errCtxValidatingPost  = "validating post"
	errCtxCheckingPost    = "checking post duplicate"
	errCtxDuplicatePost   = "duplicate post title or slug"
	errCtxUploadingImages = "uploading post images"
	errCtxCreatingPost    = "creating post"
	errCtxFindingPost     = "finding post"
)

// PostUseCaseImpl реализует интерфейс PostUseCase.
type PostUseCaseImpl struct {
	postRepo repositories.PostRepository
	storage  svc.FileStorage
	cache    portscache.Cache
}

// NewPostUseCase создает новый экземпляр сервиса постов.
func NewPostUseCase(
	postRepo repositories.PostRepository,
	storage svc.FileStorage,
	cache portscache.Cache,
) api.PostUseCase {
	return &PostUseCaseImpl{
		postRepo: postRepo,
		storage:  storage,
		cache:    cache,
	}
}

// CreatePost загружает изображения, создает пост и возвращает созданную
// запись.
func (p *PostUseCaseImpl) CreatePost(ctx context.Context, input api.CreatePostInput) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreatePost), zap.String("authorID", input.AuthorID))
	log.Debug(ctx, msgCreatingPost, zap.String("title", input.Title))

	if err := validatePostInput(input); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPost, err)
	}

	slug := entities.Slugify(input.Slug)

	existing, err := p.postRepo.FindByTitleOrSlug(ctx, input.Title, slug)
	if err != nil && !errors.Is(err, entities.ErrPostNotFound) {
		log.Error(ctx, msgErrCheckDuplicate, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingPost, err)
	}
	if existing != nil {
		log.Debug(ctx, msgDuplicatePost, zap.String("slug", slug))
		return nil, fmt.Errorf("%s: %w", errCtxDuplicatePost, entities.ErrPostAlreadyExists)
	}

	images := make([]entities.FeaturedImage, 0, len(input.ImagePaths))
	for i, path := range input.ImagePaths {
		url, err := p.storage.Upload(ctx, path)
		if err != nil {
			log.Error(ctx, msgErrUploadImages, zap.Error(err), zap.Int("index", i))
			return nil, fmt.Errorf("%s: %w", errCtxUploadingImages, err)
		}
		image := entities.FeaturedImage{URL: url}
		if i < len(input.AltTexts) {
			image.AltText = input.AltTexts[i]
		}
		images = append(images, image)
	}

	status := input.Status
	if status == "" {
		status = entities.PostStatusDraft
	}

	excerpt := input.Excerpt
	if excerpt == "" {
		excerpt = deriveExcerpt(input.Content)
	}

	newPost := &entities.Post{
		AuthorID:       input.AuthorID,
		Title:          input.Title,
		Slug:           slug,
		Content:        input.Content,
		Excerpt:        excerpt,
		Status:         status,
		Category:       input.Category,
		Tags:           input.Tags,
		FeaturedImages: images,
		SEO:            input.SEO,
		IsFeatured:     input.IsFeatured,
	}

	createdPost, err := p.postRepo.Create(ctx, newPost)
	if err != nil {
		if errors.Is(err, entities.ErrPostAlreadyExists) {
			log.Debug(ctx, msgDuplicatePost, zap.String("slug", slug))
			return nil, fmt.Errorf("%s: %w", errCtxDuplicatePost, err)
		}
		log.Error(ctx, msgErrCreatePost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingPost, err)
	}

	log.Info(ctx, msgPostCreated, zap.String("postID", createdPost.ID), zap.String("slug", createdPost.Slug))
	return createdPost, nil
}

// GetPostBySlug возвращает опубликованный пост по slug. Черновики и
// архивные посты для публичного чтения не существуют. Найденный пост
// кэшируется; ошибки кэша не прерывают запрос. В кэш попадают только
// опубликованные посты.
func (p *PostUseCaseImpl) GetPostBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetPostBySlug), zap.String("slug", slug))
	log.Debug(ctx, msgFetchingPost)

	cacheKey := postCacheKeyPrefix + slug

	if cached, err := p.cache.Get(ctx, cacheKey); err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
	} else if cached != "" {
		var post entities.Post
		if err := json.Unmarshal([]byte(cached), &post); err != nil {
			log.Warn(ctx, msgErrCacheDecode, zap.Error(err))
		} else {
			log.Debug(ctx, msgPostCacheHit)
			return &post, nil
		}
	}

	post, err := p.postRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, entities.ErrPostNotFound) {
			log.Debug(ctx, msgErrFindingPost, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxFindingPost, err)
		}
		log.Error(ctx, msgErrFindingPost, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingPost, err)
	}

	if !post.IsPublished() {
		log.Debug(ctx, msgPostNotPublished, zap.String("status", string(post.Status)))
		return nil, fmt.Errorf("%s: %w", errCtxFindingPost, entities.ErrPostNotFound)
	}

	if encoded, err := json.Marshal(post); err != nil {
		log.Warn(ctx, msgErrCacheSerialize, zap.Error(err))
	} else if err := p.cache.Set(ctx, cacheKey, string(encoded), 0); err != nil {
		log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
	}

	return post, nil
}

func validatePostInput(input api.CreatePostInput) error {
	if input.Title == "" {
		return entities.ErrEmptyPostTitle
	}
	if entities.Slugify(input.Slug) == "" {
		return entities.ErrEmptyPostSlug
	}
	if input.Content == "" {
		return entities.ErrEmptyPostContent
	}
	if len(input.ImagePaths) == 0 {
		return entities.ErrNoPostImages
	}
	if len(input.ImagePaths) > entities.MaxPostImages {
		return entities.ErrTooManyPostImages
	}
	return nil
}

// deriveExcerpt возвращает первые символы контента в качестве краткого
// описания.
func deriveExcerpt(content string) string {
	const maxLen = 160
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen]) + "..."
}
