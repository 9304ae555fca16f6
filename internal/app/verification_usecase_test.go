package app_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkpost/internal/app"
	"inkpost/internal/domain/entities"
	"inkpost/internal/domain/services"
)

const verificationBaseURL = "http://localhost:8000"

func TestVerificationUseCase_SendVerificationEmail(t *testing.T) {
	ctx := testContext(t)

	user := &entities.User{ID: "user-1", Username: "testuser", Email: "test@example.com", FullName: "Test User"}

	t.Run("successful sending", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenSvc := new(mockTokenService)
		mailer := new(mockMailer)

		userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()
		tokenSvc.On("IssueVerificationToken", mock.Anything, user).Return("verification-token", nil).Once()
		mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, verificationBaseURL+"/api/v1/user/verify-email?token=verification-token")
		})).Return(nil).Once()

		uc := app.NewVerificationUseCase(userRepo, tokenSvc, mailer, verificationBaseURL)
		err := uc.SendVerificationEmail(ctx, "user-1")

		require.NoError(t, err)
		mailer.AssertExpectations(t)
	})

	t.Run("the user was not found", func(t *testing.T) {
		userRepo := new(mockUserRepository)

		userRepo.On("FindByID", mock.Anything, "missing").Return(nil, entities.ErrUserNotFound).Once()

		uc := app.NewVerificationUseCase(userRepo, new(mockTokenService), new(mockMailer), verificationBaseURL)
		err := uc.SendVerificationEmail(ctx, "missing")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("smtp failure is propagated", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenSvc := new(mockTokenService)
		mailer := new(mockMailer)

		userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()
		tokenSvc.On("IssueVerificationToken", mock.Anything, user).Return("verification-token", nil).Once()
		mailer.On("Send", mock.Anything, "test@example.com", mock.Anything, mock.Anything).Return(assert.AnError).Once()

		uc := app.NewVerificationUseCase(userRepo, tokenSvc, mailer, verificationBaseURL)
		err := uc.SendVerificationEmail(ctx, "user-1")

		require.ErrorIs(t, err, assert.AnError)
	})
}

func TestVerificationUseCase_VerifyEmail(t *testing.T) {
	ctx := testContext(t)

	claims := &services.VerificationClaims{UserID: "user-1", Username: "testuser", Email: "test@example.com"}

	t.Run("successful verification sets the flag", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenSvc := new(mockTokenService)

		user := &entities.User{ID: "user-1", Verified: false}

		tokenSvc.On("VerifyVerificationToken", mock.Anything, "token").Return(claims, nil).Once()
		userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()
		userRepo.On("SetVerified", mock.Anything, "user-1", true).Return(nil).Once()

		uc := app.NewVerificationUseCase(userRepo, tokenSvc, new(mockMailer), verificationBaseURL)
		verified, err := uc.VerifyEmail(ctx, "token")

		require.NoError(t, err)
		assert.True(t, verified.Verified)
		userRepo.AssertExpectations(t)
	})

	t.Run("already verified user is idempotent", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenSvc := new(mockTokenService)

		user := &entities.User{ID: "user-1", Verified: true}

		tokenSvc.On("VerifyVerificationToken", mock.Anything, "token").Return(claims, nil).Once()
		userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()

		uc := app.NewVerificationUseCase(userRepo, tokenSvc, new(mockMailer), verificationBaseURL)
		verified, err := uc.VerifyEmail(ctx, "token")

		require.NoError(t, err)
		assert.True(t, verified.Verified)
		userRepo.AssertNotCalled(t, "SetVerified", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired token leaves the flag untouched", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		tokenSvc := new(mockTokenService)

		tokenSvc.On("VerifyVerificationToken", mock.Anything, "expired").Return(nil, services.ErrExpiredToken).Once()

		uc := app.NewVerificationUseCase(userRepo, tokenSvc, new(mockMailer), verificationBaseURL)
		verified, err := uc.VerifyEmail(ctx, "expired")

		require.Nil(t, verified)
		require.ErrorIs(t, err, services.ErrExpiredToken)
		userRepo.AssertNotCalled(t, "SetVerified", mock.Anything, mock.Anything, mock.Anything)
	})
}
