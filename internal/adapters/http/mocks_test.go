package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"inkpost/internal/domain/entities"
	"inkpost/internal/domain/services"
	"inkpost/internal/ports/api"
)

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Register(ctx context.Context, input api.RegisterInput) (*entities.User, *services.TokenPair, error) {
	args := m.Called(ctx, input)
	user, _ := args.Get(0).(*entities.User)
	pair, _ := args.Get(1).(*services.TokenPair)
	return user, pair, args.Error(2)
}

func (m *mockAuthUseCase) Login(ctx context.Context, login, password string) (*entities.User, *services.TokenPair, error) {
	args := m.Called(ctx, login, password)
	user, _ := args.Get(0).(*entities.User)
	pair, _ := args.Get(1).(*services.TokenPair)
	return user, pair, args.Error(2)
}

func (m *mockAuthUseCase) Refresh(ctx context.Context, refreshToken string) (*entities.User, *services.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	user, _ := args.Get(0).(*entities.User)
	pair, _ := args.Get(1).(*services.TokenPair)
	return user, pair, args.Error(2)
}

func (m *mockAuthUseCase) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Profile(ctx context.Context, userID string) (*entities.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserUseCase) UpdateProfile(ctx context.Context, userID, fullName, bio string, handles []entities.SocialMediaHandle) (*entities.User, error) {
	args := m.Called(ctx, userID, fullName, bio, handles)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserUseCase) UpdateAvatar(ctx context.Context, userID, localPath string) (*entities.User, error) {
	args := m.Called(ctx, userID, localPath)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserUseCase) UpdateCoverImage(ctx context.Context, userID, localPath string) (*entities.User, error) {
	args := m.Called(ctx, userID, localPath)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

type mockVerificationUseCase struct {
	mock.Mock
}

func (m *mockVerificationUseCase) SendVerificationEmail(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockVerificationUseCase) VerifyEmail(ctx context.Context, token string) (*entities.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

type mockPostUseCase struct {
	mock.Mock
}

func (m *mockPostUseCase) CreatePost(ctx context.Context, input api.CreatePostInput) (*entities.Post, error) {
	args := m.Called(ctx, input)
	post, _ := args.Get(0).(*entities.Post)
	return post, args.Error(1)
}

func (m *mockPostUseCase) GetPostBySlug(ctx context.Context, slug string) (*entities.Post, error) {
	args := m.Called(ctx, slug)
	post, _ := args.Get(0).(*entities.Post)
	return post, args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueAccessToken(ctx context.Context, user *entities.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IssueRefreshToken(ctx context.Context, user *entities.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Rotate(ctx context.Context, user *entities.User) (*services.TokenPair, error) {
	args := m.Called(ctx, user)
	pair, _ := args.Get(0).(*services.TokenPair)
	return pair, args.Error(1)
}

func (m *mockTokenService) RotateFrom(ctx context.Context, user *entities.User, presented string) (*services.TokenPair, error) {
	args := m.Called(ctx, user, presented)
	pair, _ := args.Get(0).(*services.TokenPair)
	return pair, args.Error(1)
}

func (m *mockTokenService) VerifyAccess(ctx context.Context, token string) (*services.AccessClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*services.AccessClaims)
	return claims, args.Error(1)
}

func (m *mockTokenService) DecodeRefresh(ctx context.Context, token string) (*services.RefreshClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*services.RefreshClaims)
	return claims, args.Error(1)
}

func (m *mockTokenService) VerifyRefresh(ctx context.Context, token string, user *entities.User) (*services.RefreshClaims, error) {
	args := m.Called(ctx, token, user)
	claims, _ := args.Get(0).(*services.RefreshClaims)
	return claims, args.Error(1)
}

func (m *mockTokenService) IssueVerificationToken(ctx context.Context, user *entities.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) VerifyVerificationToken(ctx context.Context, token string) (*services.VerificationClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*services.VerificationClaims)
	return claims, args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*entities.User)
	return created, args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByLogin(ctx context.Context, login string) (*entities.User, error) {
	args := m.Called(ctx, login)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindConflict(ctx context.Context, username, email string) (*entities.User, error) {
	args := m.Called(ctx, username, email)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) UpdateRefreshToken(ctx context.Context, id string, token *string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *mockUserRepository) SwapRefreshToken(ctx context.Context, id, old, next string) error {
	return m.Called(ctx, id, old, next).Error(0)
}

func (m *mockUserRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id, fullName, bio string, handles []entities.SocialMediaHandle) (*entities.User, error) {
	args := m.Called(ctx, id, fullName, bio, handles)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) UpdateAvatar(ctx context.Context, id, url string) (*entities.User, error) {
	args := m.Called(ctx, id, url)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) UpdateCoverImage(ctx context.Context, id, url string) (*entities.User, error) {
	args := m.Called(ctx, id, url)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}
