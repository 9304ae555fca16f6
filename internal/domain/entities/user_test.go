package entities_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/internal/domain/entities"
)

func TestUser_Public(t *testing.T) {
	t.Run("credentials never reach the projection", func(t *testing.T) {
		refresh := "stored-refresh-token"
		user := &entities.User{
			ID:           "user-1",
			Username:     "author",
			Email:        "author@example.com",
			PasswordHash: "$2a$10$hash",
			RefreshToken: &refresh,
			Role:         entities.RoleUser,
		}

		raw, err := json.Marshal(user.Public())
		require.NoError(t, err)

		body := string(raw)
		assert.NotContains(t, body, "$2a$10$hash")
		assert.NotContains(t, body, "stored-refresh-token")
		assert.Contains(t, body, `"username":"author"`)
	})

	t.Run("nil social handles serialize as an empty list", func(t *testing.T) {
		public := (&entities.User{ID: "user-1"}).Public()

		require.NotNil(t, public.SocialMediaHandles)
		assert.Empty(t, public.SocialMediaHandles)
	})
}

func TestNormalizeLogin(t *testing.T) {
	assert.Equal(t, "author@example.com", entities.NormalizeLogin("  Author@Example.COM "))
	assert.Equal(t, "author", entities.NormalizeLogin("Author"))
	assert.Equal(t, "", entities.NormalizeLogin("   "))
}
