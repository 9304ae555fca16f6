// Package entities содержит доменные сущности сервиса.
package entities

import (
	"errors"
	"strings"
	"time"
)

// Ошибки доменной модели пользователя.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserAlreadyExist = errors.New("user with this username or email already exists")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyUsername    = errors.New("empty username")
	ErrPasswordTooShort = errors.New("password is too short")
)

// Role определяет роль пользователя.
type Role string

// Поддерживаемые роли.
const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleCreator   Role = "creator"
)

// DefaultAvatarURL используется, когда пользователь не загрузил аватар.
const DefaultAvatarURL = "https://img.freepik.com/premium-vector/default-avatar-profile-icon-social-media-user-image-gray-avatar-icon-blank-profile-silhouette-vector-illustration_561158-3467.jpg"

// SocialMediaHandle описывает ссылку на профиль в социальной сети.
type SocialMediaHandle struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// User представляет учетную запись. Поле RefreshToken - единственный слот
// действующего refresh токена: в любой момент времени у пользователя может
// быть не более одного валидного refresh токена.
type User struct {
	ID                 string
	Username           string
	Email              string
	FullName           string
	PasswordHash       string
	RefreshToken       *string
	Role               Role
	Verified           bool
	Avatar             string
	CoverImage         *string
	Bio                string
	SocialMediaHandles []SocialMediaHandle
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PublicUser - безопасная для сериализации проекция пользователя.
// Хэш пароля и refresh токен в нее не попадают.
type PublicUser struct {
	ID                 string              `json:"id"`
	Username           string              `json:"username"`
	Email              string              `json:"email"`
	FullName           string              `json:"fullName"`
	Role               Role                `json:"role"`
	Verified           bool                `json:"verified"`
	Avatar             string              `json:"avatar"`
	CoverImage         *string             `json:"coverImage"`
	Bio                string              `json:"bio"`
	SocialMediaHandles []SocialMediaHandle `json:"socialMediaHandles"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// Public возвращает проекцию пользователя без учетных данных.
func (u *User) Public() *PublicUser {
	handles := u.SocialMediaHandles
	if handles == nil {
		handles = []SocialMediaHandle{}
	}

	return &PublicUser{
		ID:                 u.ID,
		Username:           u.Username,
		Email:              u.Email,
		FullName:           u.FullName,
		Role:               u.Role,
		Verified:           u.Verified,
		Avatar:             u.Avatar,
		CoverImage:         u.CoverImage,
		Bio:                u.Bio,
		SocialMediaHandles: handles,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

// NormalizeLogin приводит имя пользователя или email к каноническому виду.
func NormalizeLogin(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
