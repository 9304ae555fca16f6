// Package services содержит доменные типы и ошибки сервисов аутентификации.
package services

import (
	"errors"
	"time"
)

// Ошибки, связанные с токенами.
var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token has expired")
	ErrTokenMismatch   = errors.New("refresh token does not match the stored one")
	ErrGeneratingToken = errors.New("failed to generate token")
	ErrPersistingToken = errors.New("failed to persist refresh token")
)

// AccessClaims - полезная нагрузка access токена. Набор полей фиксирован:
// {id, username, role, fullName}.
type AccessClaims struct {
	UserID    string
	Username  string
	Role      string
	FullName  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshClaims - полезная нагрузка refresh токена: {id, username}.
type RefreshClaims struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// VerificationClaims - полезная нагрузка verification токена:
// {id, username, email}.
type VerificationClaims struct {
	UserID    string
	Username  string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair представляет пару выпущенных токенов аутентификации.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
