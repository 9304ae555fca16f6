// Package services содержит реализации прикладных сервисов.
package services

import (
	"context"
	"crypto/rsa"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"inkpost/internal/domain/entities"
	"inkpost/internal/domain/services"
	"inkpost/internal/ports/repositories"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/logger"
)

// Константы для работы с токенами.
const (
	methodIssueAccessToken       = "IssueAccessToken"
	methodIssueRefreshToken      = "IssueRefreshToken"
	methodRotate                 = "Rotate"
	methodRotateFrom             = "RotateFrom"
	methodVerifyAccess           = "VerifyAccess"
	methodDecodeRefresh          = "DecodeRefresh"
	methodVerifyRefresh          = "VerifyRefresh"
	methodIssueVerification      = "IssueVerificationToken"
	methodVerifyVerification     = "VerifyVerificationToken"
	msgTokenIssued               = "token issued successfully"
	msgTokenVerified             = "token verified successfully"
	msgTokenExpired              = "token has expired"
	msgInvalidToken              = "invalid token"
	msgStoredTokenMismatch       = "presented refresh token does not match stored value"
	msgAccessKeyNotConfigured    = "access token private key is not configured"
	msgRefreshSlotEmpty          = "user has no active refresh token"
	msgPairRotated               = "token pair rotated"
	errSigningToken              = "error signing token"
	errParsingToken              = "error parsing token"
	errStoringRefreshToken       = "error storing refresh token"
	errCtxIssuingAccessToken     = "issuing access token"
	errCtxIssuingRefreshToken    = "issuing refresh token"
	errCtxIssuingVerification    = "issuing verification token"
	errCtxVerifyingToken         = "verifying token"
	errCtxVerifyingStoredValue   = "verifying stored refresh token value"
	errCtxPersistingRefreshToken = "persisting refresh token"
)

// ErrInvalidAlgorithm представляет ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// TokenKeys содержит ключевой материал и времена жизни всех видов токенов.
// Access токен подписывается RSA ключом, refresh и verification токены -
// отдельными симметричными секретами.
type TokenKeys struct {
	AccessPrivateKey   *rsa.PrivateKey
	RefreshSecret      []byte
	VerificationSecret []byte
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	VerificationTTL    time.Duration
}

// accessJWTClaims адаптирует доменные claims access токена к формату библиотеки.
type accessJWTClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// refreshJWTClaims адаптирует доменные claims refresh токена.
type refreshJWTClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// verificationJWTClaims адаптирует доменные claims verification токена.
type verificationJWTClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	keys     TokenKeys
	userRepo repositories.UserRepository
}

// NewJWT создает новый экземпляр сервиса токенов.
func NewJWT(keys TokenKeys, userRepo repositories.UserRepository) svc.TokenService {
	return &ServiceJWT{keys: keys, userRepo: userRepo}
}

func registeredClaims(subject string, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

// IssueAccessToken выпускает access токен, подписанный RSA ключом.
func (s *ServiceJWT) IssueAccessToken(ctx context.Context, user *entities.User) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueAccessToken),
		zap.String("userID", user.ID),
	)

	if s.keys.AccessPrivateKey == nil {
		log.Error(ctx, msgAccessKeyNotConfigured)
		return "", fmt.Errorf("%s: %w: missing private key", errCtxIssuingAccessToken, services.ErrGeneratingToken)
	}

	claims := accessJWTClaims{
		UserID:           user.ID,
		Username:         user.Username,
		Role:             string(user.Role),
		FullName:         user.FullName,
		RegisteredClaims: registeredClaims(user.ID, time.Now(), s.keys.AccessTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signed, err := token.SignedString(s.keys.AccessPrivateKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxIssuingAccessToken, services.ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenIssued)
	return signed, nil
}

// IssueRefreshToken выпускает refresh токен, подписанный симметричным секретом.
// Сохранение значения в слот пользователя - обязанность вызывающего.
func (s *ServiceJWT) IssueRefreshToken(ctx context.Context, user *entities.User) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueRefreshToken),
		zap.String("userID", user.ID),
	)

	if len(s.keys.RefreshSecret) == 0 {
		log.Error(ctx, "refresh token secret is not configured")
		return "", fmt.Errorf("%s: %w: missing secret", errCtxIssuingRefreshToken, services.ErrGeneratingToken)
	}

	claims := refreshJWTClaims{
		UserID:           user.ID,
		Username:         user.Username,
		RegisteredClaims: registeredClaims(user.ID, time.Now(), s.keys.RefreshTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.keys.RefreshSecret)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxIssuingRefreshToken, services.ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenIssued)
	return signed, nil
}

// Rotate выпускает новую пару токенов и безусловно перезаписывает слот refresh
// токена пользователя. Прежний refresh токен перестает действовать сразу.
func (s *ServiceJWT) Rotate(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodRotate),
		zap.String("userID", user.ID),
	)

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &pair.RefreshToken); err != nil {
		log.Error(ctx, errStoringRefreshToken, zap.Error(err))
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", errCtxPersistingRefreshToken, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", errCtxPersistingRefreshToken, services.ErrPersistingToken, err)
	}

	user.RefreshToken = &pair.RefreshToken

	log.Debug(ctx, msgPairRotated)
	return pair, nil
}

// RotateFrom выпускает новую пару и заменяет слот атомарным сравнением с
// предъявленным значением. Запрос, проигравший гонку ротации, получает
// ErrTokenMismatch и вынужден пройти аутентификацию заново.
func (s *ServiceJWT) RotateFrom(ctx context.Context, user *entities.User, presented string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodRotateFrom),
		zap.String("userID", user.ID),
	)

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SwapRefreshToken(ctx, user.ID, presented, pair.RefreshToken); err != nil {
		if errors.Is(err, services.ErrTokenMismatch) || errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgStoredTokenMismatch)
			return nil, fmt.Errorf("%s: %w", errCtxPersistingRefreshToken, err)
		}
		log.Error(ctx, errStoringRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxPersistingRefreshToken, services.ErrPersistingToken, err)
	}

	user.RefreshToken = &pair.RefreshToken

	log.Debug(ctx, msgPairRotated)
	return pair, nil
}

func (s *ServiceJWT) issuePair(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	now := time.Now()

	access, err := s.IssueAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.IssueRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &services.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  now.Add(s.keys.AccessTTL),
		RefreshExpiresAt: now.Add(s.keys.RefreshTTL),
	}, nil
}

// VerifyAccess проверяет подпись и срок действия access токена. Хранилище не
// опрашивается: авторизационную свежесть обязан проверять вызывающий.
func (s *ServiceJWT) VerifyAccess(ctx context.Context, tokenString string) (*services.AccessClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerifyAccess))

	token, err := jwt.ParseWithClaims(tokenString, &accessJWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		if s.keys.AccessPrivateKey == nil {
			return nil, errors.New(msgAccessKeyNotConfigured)
		}
		return &s.keys.AccessPrivateKey.PublicKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrExpiredToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*accessJWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.UserID))
	return &services.AccessClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		FullName:  claims.FullName,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// DecodeRefresh проверяет подпись и срок действия refresh токена и возвращает
// claims. Слот пользователя не сверяется.
func (s *ServiceJWT) DecodeRefresh(ctx context.Context, tokenString string) (*services.RefreshClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodDecodeRefresh))

	token, err := jwt.ParseWithClaims(tokenString, &refreshJWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.keys.RefreshSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrExpiredToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*refreshJWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidToken)
	}

	return &services.RefreshClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// VerifyRefresh проверяет подпись и срок действия refresh токена, а затем
// байтовое равенство со значением в слоте пользователя. Криптографически
// валидный, но ротированный токен отклоняется с ErrTokenMismatch: без этой
// проверки отозванный перезаписью токен оставался бы пригодным для повтора.
func (s *ServiceJWT) VerifyRefresh(ctx context.Context, tokenString string, user *entities.User) (*services.RefreshClaims, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodVerifyRefresh),
		zap.String("userID", user.ID),
	)

	claims, err := s.DecodeRefresh(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	if user.RefreshToken == nil {
		log.Debug(ctx, msgRefreshSlotEmpty)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingStoredValue, services.ErrTokenMismatch)
	}

	if subtle.ConstantTimeCompare([]byte(tokenString), []byte(*user.RefreshToken)) != 1 {
		log.Debug(ctx, msgStoredTokenMismatch)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingStoredValue, services.ErrTokenMismatch)
	}

	log.Debug(ctx, msgTokenVerified)
	return claims, nil
}

// IssueVerificationToken выпускает токен подтверждения email с коротким
// временем жизни, подписанный отдельным секретом.
func (s *ServiceJWT) IssueVerificationToken(ctx context.Context, user *entities.User) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueVerification),
		zap.String("userID", user.ID),
	)

	if len(s.keys.VerificationSecret) == 0 {
		log.Error(ctx, "verification token secret is not configured")
		return "", fmt.Errorf("%s: %w: missing secret", errCtxIssuingVerification, services.ErrGeneratingToken)
	}

	claims := verificationJWTClaims{
		UserID:           user.ID,
		Username:         user.Username,
		Email:            user.Email,
		RegisteredClaims: registeredClaims(user.ID, time.Now(), s.keys.VerificationTTL),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.keys.VerificationSecret)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxIssuingVerification, services.ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenIssued)
	return signed, nil
}

// VerifyVerificationToken проверяет токен подтверждения email. Токен не
// инвалидируется на сервере: его единственный побочный эффект идемпотентен.
func (s *ServiceJWT) VerifyVerificationToken(ctx context.Context, tokenString string) (*services.VerificationClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerifyVerification))

	token, err := jwt.ParseWithClaims(tokenString, &verificationJWTClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.keys.VerificationSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrExpiredToken)
		}
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxVerifyingToken, services.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*verificationJWTClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingToken, services.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.UserID))
	return &services.VerificationClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Email:     claims.Email,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
