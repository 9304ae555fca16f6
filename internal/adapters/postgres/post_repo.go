package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"inkpost/internal/domain/entities"
	"inkpost/internal/ports/repositories"
	"inkpost/pkg/logger"
)

const postColumns = `id, author_id, title, slug, content, excerpt, status, category, tags,
               featured_images, seo, is_featured, likes, comments, views, created_at, updated_at`

// PostRepository реализует интерфейс repositories.PostRepository для Postgres.
type PostRepository struct {
	pool PgxPoolInterface
}

// NewPostRepository создает новый экземпляр репозитория постов.
func NewPostRepository(pool PgxPoolInterface) repositories.PostRepository {
	return &PostRepository{pool: pool}
}

func scanPost(row pgx.Row) (*entities.Post, error) {
	var post entities.Post
	err := row.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Title,
		&post.Slug,
		&post.Content,
		&post.Excerpt,
		&post.Status,
		&post.Category,
		&post.Tags,
		&post.FeaturedImages,
		&post.SEO,
		&post.IsFeatured,
		&post.Likes,
		&post.Comments,
		&post.Views,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create сохраняет новый пост.
func (r *PostRepository) Create(ctx context.Context, post *entities.Post) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "Create"))

	query := `
        INSERT INTO posts (author_id, title, slug, content, excerpt, status, category, tags, featured_images, seo, is_featured)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING ` + postColumns

	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	images := post.FeaturedImages
	if images == nil {
		images = []entities.FeaturedImage{}
	}

	created, err := scanPost(r.pool.QueryRow(ctx, query,
		post.AuthorID,
		post.Title,
		post.Slug,
		post.Content,
		post.Excerpt,
		post.Status,
		post.Category,
		tags,
		images,
		post.SEO,
		post.IsFeatured,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			log.Debug(ctx, "duplicate post title or slug", zap.String("constraint", pgErr.ConstraintName))
			return nil, entities.ErrPostAlreadyExists
		}
		log.Error(ctx, "error creating post", zap.Error(err))
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	return created, nil
}

// FindBySlug находит пост по slug.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "FindBySlug"))

	query := `
        SELECT ` + postColumns + `
        FROM posts
        WHERE slug = $1
    `

	post, err := scanPost(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "post not found", zap.String("slug", slug))
			return nil, entities.ErrPostNotFound
		}
		log.Error(ctx, "error finding post by slug", zap.Error(err))
		return nil, fmt.Errorf("error querying post by slug: %w", err)
	}

	return post, nil
}

// FindByTitleOrSlug находит пост с совпадающим заголовком или slug.
func (r *PostRepository) FindByTitleOrSlug(ctx context.Context, title, slug string) (*entities.Post, error) {
	log := logger.Log(ctx).With(zap.String("repository", "post"), zap.String("method", "FindByTitleOrSlug"))

	query := `
        SELECT ` + postColumns + `
        FROM posts
        WHERE title = $1 OR slug = $2
    `

	post, err := scanPost(r.pool.QueryRow(ctx, query, title, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrPostNotFound
		}
		log.Error(ctx, "error checking post duplicate", zap.Error(err))
		return nil, fmt.Errorf("error querying post by title or slug: %w", err)
	}

	return post, nil
}
