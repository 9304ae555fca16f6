// Package httputil содержит вспомогательные функции HTTP слоя: работу с
// cookie аутентификации и сохранение multipart файлов.
package httputil

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"inkpost/internal/domain/services"
)

// Имена cookie аутентификации.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// SetAuthCookies устанавливает cookie access и refresh токенов. В
// production-режиме cookie помечаются Secure и SameSite=None, иначе
// используется SameSite=Lax.
func SetAuthCookies(ctx fiber.Ctx, pair *services.TokenPair, production bool) {
	ctx.Cookie(authCookie(AccessTokenCookie, pair.AccessToken, pair.AccessExpiresAt, production))
	ctx.Cookie(authCookie(RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt, production))
}

// ClearAuthCookies сбрасывает обе cookie аутентификации.
func ClearAuthCookies(ctx fiber.Ctx, production bool) {
	expired := time.Now().Add(-time.Hour)
	ctx.Cookie(authCookie(AccessTokenCookie, "", expired, production))
	ctx.Cookie(authCookie(RefreshTokenCookie, "", expired, production))
}

func authCookie(name, value string, expires time.Time, production bool) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	if production {
		sameSite = fiber.CookieSameSiteNoneMode
	}

	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: true,
		Secure:   production,
		SameSite: sameSite,
	}
}
