// Package postgres содержит реализации репозиториев для работы с Postgres.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"inkpost/internal/domain/entities"
	"inkpost/internal/domain/services"
	"inkpost/internal/ports/repositories"
	"inkpost/pkg/logger"
)

// PgxPoolInterface описывает используемое подмножество пула соединений.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

const userColumns = `id, username, email, full_name, password_hash, refresh_token, role, verified,
               avatar, cover_image, bio, social_media_handles, created_at, updated_at`

// UserRepository реализует интерфейс repositories.UserRepository для Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.RefreshToken,
		&user.Role,
		&user.Verified,
		&user.Avatar,
		&user.CoverImage,
		&user.Bio,
		&user.SocialMediaHandles,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create сохраняет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (username, email, full_name, password_hash, role, avatar, cover_image, bio, social_media_handles)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + userColumns

	handles := user.SocialMediaHandles
	if handles == nil {
		handles = []entities.SocialMediaHandle{}
	}

	created, err := scanUser(r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.Role,
		user.Avatar,
		user.CoverImage,
		user.Bio,
		handles,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			log.Debug(ctx, "duplicate username or email", zap.String("constraint", pgErr.ConstraintName))
			return nil, entities.ErrUserAlreadyExist
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// FindByID находит пользователя по идентификатору.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return user, nil
}

// FindByLogin находит пользователя по имени пользователя или email.
func (r *UserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByLogin"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE username = $1 OR email = $1
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, entities.NormalizeLogin(login)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found by login")
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by login", zap.Error(err))
		return nil, fmt.Errorf("error querying user by login: %w", err)
	}

	return user, nil
}

// FindConflict находит пользователя с совпадающим именем пользователя или email.
func (r *UserRepository) FindConflict(ctx context.Context, username, email string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindConflict"))

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE username = $1 OR email = $2
    `

	user, err := scanUser(r.pool.QueryRow(ctx, query, username, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error checking user conflict", zap.Error(err))
		return nil, fmt.Errorf("error querying user conflict: %w", err)
	}

	return user, nil
}

// UpdateRefreshToken безусловно записывает значение слота refresh токена.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdateRefreshToken"))

	query := `
        UPDATE users
        SET refresh_token = $2, updated_at = $3
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id, token, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error updating refresh token", zap.Error(err))
		return fmt.Errorf("error updating refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for refresh token update", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}

// SwapRefreshToken атомарно заменяет значение слота, только если текущее
// значение равно old. Проигравший гонку ротации запрос получает
// services.ErrTokenMismatch.
func (r *UserRepository) SwapRefreshToken(ctx context.Context, id, old, next string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "SwapRefreshToken"))

	query := `
        UPDATE users
        SET refresh_token = $3, updated_at = $4
        WHERE id = $1 AND refresh_token = $2
    `

	result, err := r.pool.Exec(ctx, query, id, old, next, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error swapping refresh token", zap.Error(err))
		return fmt.Errorf("error swapping refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists); err != nil {
			log.Error(ctx, "error checking user existence", zap.Error(err))
			return fmt.Errorf("error checking user existence: %w", err)
		}
		if !exists {
			log.Debug(ctx, "user not found for refresh token swap", zap.String("id", id))
			return entities.ErrUserNotFound
		}
		log.Debug(ctx, "stored refresh token changed concurrently", zap.String("id", id))
		return services.ErrTokenMismatch
	}

	return nil
}

// SetVerified выставляет флаг подтверждения email.
func (r *UserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "SetVerified"))

	query := `
        UPDATE users
        SET verified = $2, updated_at = $3
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id, verified, time.Now().UTC())
	if err != nil {
		log.Error(ctx, "error updating verified flag", zap.Error(err))
		return fmt.Errorf("error updating verified flag: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for verified flag update", zap.String("id", id))
		return entities.ErrUserNotFound
	}

	return nil
}

// UpdateProfile обновляет профильные поля. Список социальных ссылок заменяется
// целиком, частичное слияние не выполняется.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, fullName, bio string, handles []entities.SocialMediaHandle) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdateProfile"))

	query := `
        UPDATE users
        SET full_name = $2, bio = $3, social_media_handles = $4, updated_at = $5
        WHERE id = $1
        RETURNING ` + userColumns

	if handles == nil {
		handles = []entities.SocialMediaHandle{}
	}

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, fullName, bio, handles, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for profile update", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error updating profile", zap.Error(err))
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	return user, nil
}

// UpdateAvatar обновляет URL аватара.
func (r *UserRepository) UpdateAvatar(ctx context.Context, id, url string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdateAvatar"))

	query := `
        UPDATE users
        SET avatar = $2, updated_at = $3
        WHERE id = $1
        RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, url, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for avatar update", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error updating avatar", zap.Error(err))
		return nil, fmt.Errorf("error updating avatar: %w", err)
	}

	return user, nil
}

// UpdateCoverImage обновляет URL обложки профиля.
func (r *UserRepository) UpdateCoverImage(ctx context.Context, id, url string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "UpdateCoverImage"))

	query := `
        UPDATE users
        SET cover_image = $2, updated_at = $3
        WHERE id = $1
        RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, id, url, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found for cover image update", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error updating cover image", zap.Error(err))
		return nil, fmt.Errorf("error updating cover image: %w", err)
	}

	return user, nil
}
