package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inkpost/internal/app"
	"inkpost/internal/domain/entities"
)

func TestUserUseCase_Profile(t *testing.T) {
	ctx := testContext(t)

	t.Run("successful profile acquisition", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		user := &entities.User{ID: "user-1", Username: "testuser"}

		userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil).Once()

		uc := app.NewUserUseCase(userRepo, new(mockFileStorage))
		found, err := uc.Profile(ctx, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "user-1", found.ID)
	})

	t.Run("the user was not found", func(t *testing.T) {
		userRepo := new(mockUserRepository)

		userRepo.On("FindByID", mock.Anything, "missing").Return(nil, entities.ErrUserNotFound).Once()

		uc := app.NewUserUseCase(userRepo, new(mockFileStorage))
		found, err := uc.Profile(ctx, "missing")

		require.Nil(t, found)
		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserUseCase_UpdateProfile(t *testing.T) {
	ctx := testContext(t)

	handles := []entities.SocialMediaHandle{{Platform: "github", URL: "https://github.com/testuser"}}

	t.Run("successful profile update", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		updated := &entities.User{ID: "user-1", FullName: "New Name", Bio: "bio", SocialMediaHandles: handles}

		userRepo.On("UpdateProfile", mock.Anything, "user-1", "New Name", "bio", handles).Return(updated, nil).Once()

		uc := app.NewUserUseCase(userRepo, new(mockFileStorage))
		user, err := uc.UpdateProfile(ctx, "user-1", "New Name", "bio", handles)

		require.NoError(t, err)
		assert.Equal(t, "New Name", user.FullName)
		assert.Equal(t, handles, user.SocialMediaHandles)
	})

	t.Run("the user was not found", func(t *testing.T) {
		userRepo := new(mockUserRepository)

		userRepo.On("UpdateProfile", mock.Anything, "missing", "name", "", mock.Anything).
			Return(nil, entities.ErrUserNotFound).Once()

		uc := app.NewUserUseCase(userRepo, new(mockFileStorage))
		user, err := uc.UpdateProfile(ctx, "missing", "name", "", nil)

		require.Nil(t, user)
		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestUserUseCase_UpdateAvatar(t *testing.T) {
	ctx := testContext(t)

	t.Run("successful avatar update", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		storage := new(mockFileStorage)
		updated := &entities.User{ID: "user-1", Avatar: "https://cdn.example.com/a.png"}

		storage.On("Upload", mock.Anything, "/tmp/avatar.png").Return("https://cdn.example.com/a.png", nil).Once()
		userRepo.On("UpdateAvatar", mock.Anything, "user-1", "https://cdn.example.com/a.png").Return(updated, nil).Once()

		uc := app.NewUserUseCase(userRepo, storage)
		user, err := uc.UpdateAvatar(ctx, "user-1", "/tmp/avatar.png")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", user.Avatar)
	})

	t.Run("upload error", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		storage := new(mockFileStorage)

		storage.On("Upload", mock.Anything, "/tmp/avatar.png").Return("", assert.AnError).Once()

		uc := app.NewUserUseCase(userRepo, storage)
		user, err := uc.UpdateAvatar(ctx, "user-1", "/tmp/avatar.png")

		require.Nil(t, user)
		require.ErrorIs(t, err, assert.AnError)
		userRepo.AssertNotCalled(t, "UpdateAvatar", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserUseCase_UpdateCoverImage(t *testing.T) {
	ctx := testContext(t)

	t.Run("cover image lands in the cover field", func(t *testing.T) {
		userRepo := new(mockUserRepository)
		storage := new(mockFileStorage)

		coverURL := "https://cdn.example.com/c.png"
		updated := &entities.User{ID: "user-1", CoverImage: &coverURL}

		storage.On("Upload", mock.Anything, "/tmp/cover.png").Return(coverURL, nil).Once()
		userRepo.On("UpdateCoverImage", mock.Anything, "user-1", coverURL).Return(updated, nil).Once()

		uc := app.NewUserUseCase(userRepo, storage)
		user, err := uc.UpdateCoverImage(ctx, "user-1", "/tmp/cover.png")

		require.NoError(t, err)
		require.NotNil(t, user.CoverImage)
		assert.Equal(t, coverURL, *user.CoverImage)
		userRepo.AssertExpectations(t)
	})
}
