package entities

import (
	"errors"
	"math"
	"strings"
	"time"
)

// Ошибки доменной модели поста.
var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostAlreadyExists = errors.New("post with the same title or slug already exists")
	ErrEmptyPostTitle    = errors.New("empty post title")
	ErrEmptyPostSlug     = errors.New("empty post slug")
	ErrEmptyPostContent  = errors.New("empty post content")
	ErrNoPostImages      = errors.New("post requires at least one image")
	ErrTooManyPostImages = errors.New("too many post images")
)

// MaxPostImages - максимальное число изображений поста.
const MaxPostImages = 10

// PostStatus определяет статус публикации.
type PostStatus string

// Поддерживаемые статусы поста.
const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// readingWordsPerMinute - скорость чтения для расчета времени чтения.
const readingWordsPerMinute = 175

// FeaturedImage описывает загруженное изображение поста.
type FeaturedImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
	Credit  string `json:"credit"`
}

// SEO содержит метаданные поста для поисковых систем.
type SEO struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
}

// Post представляет публикацию.
type Post struct {
	ID             string
	AuthorID       string
	Title          string
	Slug           string
	Content        string
	Excerpt        string
	Status         PostStatus
	Category       string
	Tags           []string
	FeaturedImages []FeaturedImage
	SEO            SEO
	IsFeatured     bool
	Likes          []string
	Comments       []string
	Views          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LikeCount возвращает число лайков. Значение выводится из данных при чтении
// и не хранится отдельно.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

// CommentCount возвращает число комментариев.
func (p *Post) CommentCount() int {
	return len(p.Comments)
}

// ReadingTime возвращает оценку времени чтения в минутах.
func (p *Post) ReadingTime() int {
	words := len(strings.Fields(p.Content))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / readingWordsPerMinute))
}

// IsPublished сообщает, опубликован ли пост.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// Slugify приводит строку к каноническому slug: строчные буквы и цифры,
// разделенные дефисами.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
