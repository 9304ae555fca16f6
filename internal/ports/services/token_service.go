// Package services определяет интерфейсы прикладных сервисов.
package services

import (
	"context"

	"inkpost/internal/domain/entities"
	"inkpost/internal/domain/services"
)

// TokenService выпускает и проверяет токены аутентификации. Сервис владеет
// инвариантом ротации: у пользователя единственный действующий refresh токен,
// и смена пары инвалидирует предыдущий токен перезаписью слота.
type TokenService interface {
	// IssueAccessToken выпускает подписанный access токен без побочных эффектов.
	IssueAccessToken(ctx context.Context, user *entities.User) (string, error)

	// IssueRefreshToken выпускает подписанный refresh токен. Сохранение значения
	// в хранилище - обязанность вызывающего (или Rotate).
	IssueRefreshToken(ctx context.Context, user *entities.User) (string, error)

	// Rotate выпускает новую пару токенов и безусловно записывает refresh токен
	// в слот пользователя, перезаписывая прежнее значение.
	Rotate(ctx context.Context, user *entities.User) (*services.TokenPair, error)

	// RotateFrom выпускает новую пару и атомарно заменяет значение слота,
	// только если оно все еще равно presented. Проигравший гонку запрос
	// получает services.ErrTokenMismatch.
	RotateFrom(ctx context.Context, user *entities.User, presented string) (*services.TokenPair, error)

	// VerifyAccess проверяет подпись и срок действия access токена. Хранилище
	// не опрашивается: свежесть данных обязан проверять вызывающий.
	VerifyAccess(ctx context.Context, token string) (*services.AccessClaims, error)

	// DecodeRefresh проверяет подпись и срок действия refresh токена и
	// возвращает claims. Слот пользователя не сверяется: это криптографическая
	// половина проверки, используемая для идентификации владельца токена.
	DecodeRefresh(ctx context.Context, token string) (*services.RefreshClaims, error)

	// VerifyRefresh проверяет подпись и срок действия refresh токена, а затем
	// байтовое равенство со значением, сохраненным в слоте пользователя.
	// Обе проверки обязательны.
	VerifyRefresh(ctx context.Context, token string, user *entities.User) (*services.RefreshClaims, error)

	// IssueVerificationToken выпускает одноразовый токен подтверждения email.
	IssueVerificationToken(ctx context.Context, user *entities.User) (string, error)

	// VerifyVerificationToken проверяет токен подтверждения email.
	VerifyVerificationToken(ctx context.Context, token string) (*services.VerificationClaims, error)
}
