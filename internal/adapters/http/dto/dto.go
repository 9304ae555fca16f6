// Package dto определяет структуры HTTP запросов и ответов.
package dto

import (
	"time"

	"inkpost/internal/domain/entities"
)

// LoginRequest - тело запроса на вход. Поле login принимает имя пользователя
// или email.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SocialMediaHandle - ссылка на профиль в социальной сети.
type SocialMediaHandle struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// UpdateProfileRequest - тело запроса на обновление профиля. Список
// социальных ссылок заменяется целиком.
type UpdateProfileRequest struct {
	FullName           string              `json:"fullName"`
	Bio                string              `json:"bio"`
	SocialMediaHandles []SocialMediaHandle `json:"socialMediaHandles"`
}

// Handles преобразует ссылки запроса в доменные значения.
func (r *UpdateProfileRequest) Handles() []entities.SocialMediaHandle {
	handles := make([]entities.SocialMediaHandle, 0, len(r.SocialMediaHandles))
	for _, h := range r.SocialMediaHandles {
		handles = append(handles, entities.SocialMediaHandle{Platform: h.Platform, URL: h.URL})
	}
	return handles
}

// PostView - проекция поста для ответов API. Производные поля считаются при
// чтении и не хранятся в базе.
type PostView struct {
	ID             string                   `json:"id"`
	AuthorID       string                   `json:"authorId"`
	Title          string                   `json:"title"`
	Slug           string                   `json:"slug"`
	Content        string                   `json:"content"`
	Excerpt        string                   `json:"excerpt"`
	Status         entities.PostStatus      `json:"status"`
	Category       string                   `json:"category"`
	Tags           []string                 `json:"tags"`
	FeaturedImages []entities.FeaturedImage `json:"featuredImages"`
	SEO            entities.SEO             `json:"seo"`
	IsFeatured     bool                     `json:"isFeatured"`
	LikeCount      int                      `json:"likeCount"`
	CommentCount   int                      `json:"commentCount"`
	ReadingTime    int                      `json:"readingTime"`
	Views          int                      `json:"views"`
	CreatedAt      string                   `json:"createdAt"`
	UpdatedAt      string                   `json:"updatedAt"`
}

// NewPostView создает проекцию поста.
func NewPostView(post *entities.Post) *PostView {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	images := post.FeaturedImages
	if images == nil {
		images = []entities.FeaturedImage{}
	}

	return &PostView{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		Title:          post.Title,
		Slug:           post.Slug,
		Content:        post.Content,
		Excerpt:        post.Excerpt,
		Status:         post.Status,
		Category:       post.Category,
		Tags:           tags,
		FeaturedImages: images,
		SEO:            post.SEO,
		IsFeatured:     post.IsFeatured,
		LikeCount:      post.LikeCount(),
		CommentCount:   post.CommentCount(),
		ReadingTime:    post.ReadingTime(),
		Views:          post.Views,
		CreatedAt:      post.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      post.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
