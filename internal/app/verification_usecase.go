package app

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"inkpost/internal/domain/entities"
	"inkpost/internal/ports/api"
	"inkpost/internal/ports/repositories"
	svc "inkpost/internal/ports/services"
	"inkpost/pkg/logger"
)

const (
	methodSendVerification = "SendVerificationEmail"
	methodVerifyEmail      = "VerifyEmail"

	verificationEmailSubject = "Verify your email address"

	msgSendingVerification  = "sending verification email"
	msgVerificationSent     = "verification email sent"
	msgVerifyingEmail       = "verifying email"
	msgEmailVerified        = "email verified successfully"
	msgEmailAlreadyVerified = "email already verified"

	msgErrIssueVerification = "failed to issue verification token"
	msgErrSendEmail         = "failed to send verification email"
	msgErrVerifyToken       = "failed to verify token"
	msgErrSetVerified       = "failed to set verified flag"

	errCtxIssuingVerification = "issuing verification token"
	errCtxSendingEmail        = "sending verification email"
	errCtxVerifyingEmailToken = "verifying email token"
	errCtxSettingVerified     = "setting verified flag"
)

// VerificationUseCaseImpl реализует интерфейс VerificationUseCase.
type VerificationUseCaseImpl struct {
	userRepo repositories.UserRepository
	tokenSvc svc.TokenService
	mailer   svc.Mailer
	baseURL  string
}

// NewVerificationUseCase создает новый экземпляр сервиса подтверждения email.
func NewVerificationUseCase(
	userRepo repositories.UserRepository,
	tokenSvc svc.TokenService,
	mailer svc.Mailer,
	baseURL string,
) api.VerificationUseCase {
	return &VerificationUseCaseImpl{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		mailer:   mailer,
		baseURL:  baseURL,
	}
}

// SendVerificationEmail выпускает токен подтверждения и отправляет письмо со
// ссылкой подтверждения.
func (v *VerificationUseCaseImpl) SendVerificationEmail(ctx context.Context, userID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodSendVerification), zap.String("userID", userID))
	log.Debug(ctx, msgSendingVerification)

	user, err := v.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	token, err := v.tokenSvc.IssueVerificationToken(ctx, user)
	if err != nil {
		log.Error(ctx, msgErrIssueVerification, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxIssuingVerification, err)
	}

	link := fmt.Sprintf("%s/api/v1/user/verify-email?token=%s", v.baseURL, url.QueryEscape(token))
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Please verify your email address by clicking the link below. The link expires in a few minutes.</p><p><a href=%q>Verify email</a></p>",
		user.FullName, link,
	)

	if err := v.mailer.Send(ctx, user.Email, verificationEmailSubject, body); err != nil {
		log.Error(ctx, msgErrSendEmail, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSendingEmail, err)
	}

	log.Info(ctx, msgVerificationSent)
	return nil
}

// VerifyEmail проверяет токен и выставляет флаг подтверждения. Повторное
// подтверждение по действующему токену идемпотентно.
func (v *VerificationUseCaseImpl) VerifyEmail(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerifyEmail))
	log.Debug(ctx, msgVerifyingEmail)

	claims, err := v.tokenSvc.VerifyVerificationToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgErrVerifyToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingEmailToken, err)
	}

	log = log.With(zap.String("userID", claims.UserID))

	user, err := v.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if user.Verified {
		log.Debug(ctx, msgEmailAlreadyVerified)
		return user, nil
	}

	if err := v.userRepo.SetVerified(ctx, user.ID, true); err != nil {
		log.Error(ctx, msgErrSetVerified, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSettingVerified, err)
	}

	user.Verified = true

	log.Info(ctx, msgEmailVerified)
	return user, nil
}
