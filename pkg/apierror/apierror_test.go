package apierror_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost/pkg/apierror"
)

func TestNew(t *testing.T) {
	t.Run("client status is categorized as client failure", func(t *testing.T) {
		apiErr := apierror.New("bad input", http.StatusBadRequest, apierror.CodeValidation)

		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, apierror.StatusClientFailure, apiErr.Status)
		assert.Equal(t, apierror.CodeValidation, apiErr.ErrorCode)
		assert.Equal(t, "bad input", apiErr.Error())
		assert.NotEmpty(t, apiErr.Timestamp)
		assert.NotNil(t, apiErr.ValidationErrors)
	})

	t.Run("server status is categorized as server error", func(t *testing.T) {
		apiErr := apierror.New("boom", http.StatusInternalServerError, apierror.CodeUnhandled)
		assert.Equal(t, apierror.StatusServerError, apiErr.Status)
	})

	t.Run("out of range status is clamped to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, apierror.New("x", 0, apierror.CodeUnhandled).StatusCode)
		assert.Equal(t, http.StatusInternalServerError, apierror.New("x", 900, apierror.CodeUnhandled).StatusCode)
	})

	t.Run("empty message falls back to the default", func(t *testing.T) {
		apiErr := apierror.New("", http.StatusNotFound, apierror.CodeNotFound)
		assert.Equal(t, apierror.DefaultMessage, apiErr.Message)
	})
}

func TestError_Builders(t *testing.T) {
	t.Run("validation errors accumulate", func(t *testing.T) {
		apiErr := apierror.New("invalid", http.StatusBadRequest, apierror.CodeValidation).
			WithValidationErrors(apierror.FieldError{Field: "email", Message: "email is required"}).
			WithValidationErrors(apierror.FieldError{Field: "password", Message: "password is required"})

		require.Len(t, apiErr.ValidationErrors, 2)
		assert.Equal(t, "email", apiErr.ValidationErrors[0].Field)
	})

	t.Run("cause is unwrappable", func(t *testing.T) {
		cause := errors.New("connection refused")
		apiErr := apierror.New("db down", http.StatusInternalServerError, apierror.CodePersistence).WithCause(cause)

		require.ErrorIs(t, apiErr, cause)
		assert.Equal(t, "connection refused", apiErr.Cause)
	})

	t.Run("stack captures the current goroutine", func(t *testing.T) {
		apiErr := apierror.New("boom", http.StatusInternalServerError, apierror.CodeUnhandled).WithStack()
		assert.Contains(t, apiErr.Stack, "goroutine")
	})
}

func TestFrom(t *testing.T) {
	t.Run("structured error passes through with path filled in", func(t *testing.T) {
		original := apierror.New("not found", http.StatusNotFound, apierror.CodeNotFound)

		got := apierror.From(original, "/api/v1/post/missing")
		assert.Same(t, original, got)
		assert.Equal(t, "/api/v1/post/missing", got.Path)
	})

	t.Run("already set path is kept", func(t *testing.T) {
		original := apierror.New("not found", http.StatusNotFound, apierror.CodeNotFound).WithPath("/original")

		got := apierror.From(original, "/other")
		assert.Equal(t, "/original", got.Path)
	})

	t.Run("wrapped structured error is unwrapped", func(t *testing.T) {
		original := apierror.New("conflict", http.StatusConflict, apierror.CodeConflictingUser)
		wrapped := errors.Join(errors.New("registering user"), original)

		got := apierror.From(wrapped, "/api/v1/user/register")
		assert.Equal(t, http.StatusConflict, got.StatusCode)
		assert.Equal(t, apierror.CodeConflictingUser, got.ErrorCode)
	})

	t.Run("plain error becomes an unhandled 500", func(t *testing.T) {
		got := apierror.From(errors.New("something broke"), "/api/v1/user/login")

		assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
		assert.Equal(t, apierror.CodeUnhandled, got.ErrorCode)
		assert.Equal(t, "something broke", got.Message)
		assert.Equal(t, "/api/v1/user/login", got.Path)
	})

	t.Run("nil error still yields a renderable 500", func(t *testing.T) {
		got := apierror.From(nil, "/api/v1")
		assert.Equal(t, http.StatusInternalServerError, got.StatusCode)
		assert.Equal(t, apierror.DefaultMessage, got.Message)
	})
}

func TestError_Payload(t *testing.T) {
	apiErr := apierror.New("boom", http.StatusInternalServerError, apierror.CodeUnhandled).
		WithPath("/api/v1/post/create-post").
		WithCause(errors.New("disk full")).
		WithStack()

	t.Run("stack is included outside production", func(t *testing.T) {
		raw, err := json.Marshal(apiErr.Payload(true))
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))

		assert.Equal(t, false, body["success"])
		assert.Equal(t, "boom", body["message"])
		assert.Equal(t, "disk full", body["cause"])
		assert.Contains(t, body["stack"], "goroutine")
	})

	t.Run("stack is suppressed in production", func(t *testing.T) {
		raw, err := json.Marshal(apiErr.Payload(false))
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))

		_, hasStack := body["stack"]
		assert.False(t, hasStack)
	})
}
