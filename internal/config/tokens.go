package config

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokensConfig содержит настройки подписи и времени жизни токенов.
// Access токен подписывается асимметричным RSA ключом, refresh и verification
// токены - отдельными симметричными секретами.
type TokensConfig struct {
	AccessPrivateKeyPEM string `yaml:"access_private_key" env:"ACCESS_TOKEN_PRIVATE_KEY"`
	AccessTokenTTL      string `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshSecret       string `yaml:"refresh_secret" env:"REFRESH_TOKEN_SECRET" env-default:"refresh-secret-change-me-in-production"`
	RefreshTokenTTL     string `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	VerificationSecret  string `yaml:"verification_secret" env:"EMAIL_VERIFICATION_TOKEN_SECRET" env-default:"verification-secret-change-me-in-production"`
	VerificationTTL     string `yaml:"verification_ttl" env:"EMAIL_VERIFICATION_TOKEN_TTL" env-default:"5m"`
	BCryptCost          int    `yaml:"bcrypt_cost" env:"BCRYPT_COST" env-default:"12"`
}

// GetAccessPrivateKey разбирает PEM-ключ подписи access токенов.
func (c *TokensConfig) GetAccessPrivateKey() (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(c.AccessPrivateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parsing access token private key: %w", err)
	}
	return key, nil
}

// GetAccessTokenTTL возвращает время жизни access токена.
func (c *TokensConfig) GetAccessTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return 15 * time.Minute
	}
	return duration
}

// GetRefreshTokenTTL возвращает время жизни refresh токена.
func (c *TokensConfig) GetRefreshTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.RefreshTokenTTL)
	if err != nil {
		return 7 * 24 * time.Hour
	}
	return duration
}

// GetVerificationTTL возвращает время жизни verification токена.
func (c *TokensConfig) GetVerificationTTL() time.Duration {
	duration, err := time.ParseDuration(c.VerificationTTL)
	if err != nil {
		return 5 * time.Minute
	}
	return duration
}
