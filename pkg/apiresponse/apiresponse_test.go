package apiresponse_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/pkg/apiresponse"
)

func TestSuccess(t *testing.T) {
	t.Run("defaults to 200 with data attached", func(t *testing.T) {
		resp := apiresponse.Success(map[string]string{"id": "user-1"})

		assert.True(t, resp.Success)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]string{"id": "user-1"}, resp.Data)
		assert.NotEmpty(t, resp.Meta.Timestamp)
	})

	t.Run("options set status, message and path", func(t *testing.T) {
		resp := apiresponse.Success(nil,
			apiresponse.WithStatusCode(http.StatusCreated),
			apiresponse.WithMessage("User registered successfully"),
			apiresponse.WithPath("/api/v1/user/register"))

		assert.True(t, resp.Success)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "User registered successfully", resp.Message)
		assert.Equal(t, "/api/v1/user/register", resp.Meta.Path)
	})

	t.Run("success flag follows the status code", func(t *testing.T) {
		resp := apiresponse.Success(nil, apiresponse.WithStatusCode(http.StatusNotFound))
		assert.False(t, resp.Success)
	})

	t.Run("status code is clamped to a valid range", func(t *testing.T) {
		assert.Equal(t, http.StatusContinue, apiresponse.Success(nil, apiresponse.WithStatusCode(0)).StatusCode)
		assert.Equal(t, 599, apiresponse.Success(nil, apiresponse.WithStatusCode(1000)).StatusCode)
	})

	t.Run("extra metadata is attached", func(t *testing.T) {
		resp := apiresponse.Success(nil, apiresponse.WithMeta(map[string]any{"cached": true}))
		assert.Equal(t, true, resp.Meta.Extra["cached"])
	})
}

func TestWithPagination(t *testing.T) {
	t.Run("pages are rounded up", func(t *testing.T) {
		resp := apiresponse.Success(nil, apiresponse.WithPagination(2, 10, 25))

		require.NotNil(t, resp.Meta.Pagination)
		assert.Equal(t, 2, resp.Meta.Pagination.Page)
		assert.Equal(t, 10, resp.Meta.Pagination.Limit)
		assert.Equal(t, 25, resp.Meta.Pagination.Total)
		assert.Equal(t, 3, resp.Meta.Pagination.Pages)
	})

	t.Run("zero limit yields zero pages", func(t *testing.T) {
		resp := apiresponse.Success(nil, apiresponse.WithPagination(1, 0, 25))

		require.NotNil(t, resp.Meta.Pagination)
		assert.Equal(t, 0, resp.Meta.Pagination.Pages)
	})
}
