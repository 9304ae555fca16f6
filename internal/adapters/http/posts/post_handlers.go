// Package posts содержит HTTP обработчики публикаций.
package posts

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkpost/internal/adapters/http/dto"
	"inkpost/internal/adapters/http/httputil"
	"inkpost/internal/adapters/http/middleware"
	"inkpost/internal/domain/entities"
	"inkpost/internal/ports/api"
	"inkpost/pkg/apierror"
	"inkpost/pkg/apiresponse"
	"inkpost/pkg/logger"
)

// maxAltTextLength ограничивает длину alt-текста, выводимого из имени файла.
const maxAltTextLength = 120

// Константы для логирования.
const (
	LogHandlerCreatePost = "posts handler: create post"
	LogHandlerGetPost    = "posts handler: get post by slug"

	ErrorInvalidForm        = "invalid multipart form"
	ErrorNoFeaturedImages   = "at least one featured image is required"
	ErrorTooManyImages      = "too many featured images"
	ErrorNotAuthenticated   = "not authenticated"
	ErrorFailedToSaveUpload = "failed to store uploaded file"

	MsgPostCreated = "post created successfully"
)

// Handler содержит HTTP обработчики публикаций.
type Handler struct {
	posts api.PostUseCase
}

// NewHandler создает новый экземпляр обработчика публикаций.
func NewHandler(posts api.PostUseCase) *Handler {
	return &Handler{posts: posts}
}

// sendJSON отправляет успешный ответ в едином конверте.
func sendJSON(ctx fiber.Ctx, status int, data any, message string) error {
	resp := apiresponse.Success(data,
		apiresponse.WithStatusCode(status),
		apiresponse.WithMessage(message),
		apiresponse.WithPath(ctx.Path()))

	if err := ctx.Status(status).JSON(resp); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// CreatePost обрабатывает создание публикации. Запрос приходит multipart
// формой с текстовыми полями поста и файлами featuredImages (от 1 до 10).
func (h *Handler) CreatePost(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreatePost)

	current, ok := middleware.CurrentUser(ctx)
	if !ok {
		return apierror.New(ErrorNotAuthenticated, fiber.StatusUnauthorized, apierror.CodeNotAuthenticated).
			WithPath(ctx.Path())
	}

	input := api.CreatePostInput{
		AuthorID: current.ID,
		Title:    strings.TrimSpace(ctx.FormValue("title")),
		Slug:     strings.TrimSpace(ctx.FormValue("slug")),
		Content:  ctx.FormValue("content"),
		Excerpt:  ctx.FormValue("excerpt"),
		Category: strings.TrimSpace(ctx.FormValue("category")),
		Status:   entities.PostStatus(ctx.FormValue("status")),
		SEO: entities.SEO{
			MetaTitle:       ctx.FormValue("metaTitle"),
			MetaDescription: ctx.FormValue("metaDescription"),
			Keywords:        splitList(ctx.FormValue("keywords")),
		},
		IsFeatured: ctx.FormValue("isFeatured") == "true",
	}

	var fields []apierror.FieldError
	for _, field := range []struct{ name, value string }{
		{"title", input.Title},
		{"slug", input.Slug},
		{"content", input.Content},
		{"category", input.Category},
	} {
		if field.value == "" {
			fields = append(fields, apierror.FieldError{Field: field.name, Message: field.name + " is required"})
		}
	}
	if len(fields) > 0 {
		return apierror.New("required fields are missing", fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).
			WithValidationErrors(fields...)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		log.Debug(requestCtx, ErrorInvalidForm, zap.Error(err))
		return apierror.New(ErrorInvalidForm, fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).WithCause(err)
	}

	for _, values := range form.Value["tags"] {
		input.Tags = append(input.Tags, splitList(values)...)
	}

	images := form.File["featuredImages"]
	if len(images) == 0 {
		log.Debug(requestCtx, ErrorNoFeaturedImages)
		return apierror.New(ErrorNoFeaturedImages, fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).
			WithValidationErrors(apierror.FieldError{Field: "featuredImages", Message: ErrorNoFeaturedImages})
	}
	if len(images) > entities.MaxPostImages {
		log.Debug(requestCtx, ErrorTooManyImages, zap.Int("count", len(images)))
		return apierror.New(ErrorTooManyImages, fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(ctx.Path()).
			WithValidationErrors(apierror.FieldError{Field: "featuredImages", Message: ErrorTooManyImages})
	}

	for _, image := range images {
		path, err := httputil.SaveTempUpload(ctx, image)
		if err != nil {
			log.Error(requestCtx, ErrorFailedToSaveUpload, zap.Error(err))
			return apierror.New(ErrorFailedToSaveUpload, fiber.StatusInternalServerError, apierror.CodeUpload).
				WithPath(ctx.Path()).WithCause(err)
		}
		input.ImagePaths = append(input.ImagePaths, path)
		input.AltTexts = append(input.AltTexts, altTextFromFilename(image.Filename))
	}

	post, err := h.posts.CreatePost(requestCtx, input)
	if err != nil {
		return mapPostError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusCreated, fiber.Map{"post": dto.NewPostView(post)}, MsgPostCreated)
}

// GetPost возвращает публикацию по slug.
func (h *Handler) GetPost(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetPost)

	slug := ctx.Params("slug")

	post, err := h.posts.GetPostBySlug(requestCtx, slug)
	if err != nil {
		return mapPostError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusOK, fiber.Map{"post": dto.NewPostView(post)}, "")
}

// mapPostError переводит доменные ошибки постов в структурированные ошибки
// API. Неизвестные ошибки возвращаются как есть и обрабатываются как 500.
func mapPostError(ctx fiber.Ctx, err error) error {
	path := ctx.Path()

	switch {
	case errors.Is(err, entities.ErrEmptyPostTitle),
		errors.Is(err, entities.ErrEmptyPostSlug),
		errors.Is(err, entities.ErrEmptyPostContent),
		errors.Is(err, entities.ErrNoPostImages),
		errors.Is(err, entities.ErrTooManyPostImages):
		return apierror.New(err.Error(), fiber.StatusBadRequest, apierror.CodeValidation).
			WithPath(path).WithCause(err)
	case errors.Is(err, entities.ErrPostAlreadyExists):
		return apierror.New(entities.ErrPostAlreadyExists.Error(), fiber.StatusConflict, apierror.CodeDuplicatePost).
			WithPath(path).WithCause(err)
	case errors.Is(err, entities.ErrPostNotFound):
		return apierror.New(entities.ErrPostNotFound.Error(), fiber.StatusNotFound, apierror.CodeNotFound).
			WithPath(path).WithCause(err)
	default:
		return err
	}
}

// splitList разбивает значение, перечисленное через запятую.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// altTextFromFilename выводит alt-текст изображения из исходного имени
// файла без расширения.
func altTextFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	runes := []rune(name)
	if len(runes) > maxAltTextLength {
		return string(runes[:maxAltTextLength])
	}
	return name
}
