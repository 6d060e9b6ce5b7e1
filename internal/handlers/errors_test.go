package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/qrshare/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorModel(t *testing.T) {
	handlers.InstallErrorModel()

	t.Run("validation errors become 400 invalid parameters", func(t *testing.T) {
		err := huma.NewError(http.StatusUnprocessableEntity, "validation failed",
			&huma.ErrorDetail{Message: "expected length >= 1", Location: "body.content", Value: ""})

		var apiErr *handlers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.GetStatus())
		assert.Equal(t, "Invalid parameters", apiErr.Message)
		require.Len(t, apiErr.Errors, 1)
		assert.Contains(t, apiErr.Errors[0], "body.content")
	})

	t.Run("400 with field details is a validation error", func(t *testing.T) {
		err := huma.NewError(http.StatusBadRequest, "validation failed",
			&huma.ErrorDetail{Message: "invalid json", Location: "body"})

		assert.Equal(t, "Invalid parameters", err.Error())
	})

	t.Run("plain client errors keep their message", func(t *testing.T) {
		err := huma.Error400BadRequest("File size is required for upload")

		assert.Equal(t, http.StatusBadRequest, err.GetStatus())
		assert.Equal(t, "File size is required for upload", err.Error())
	})

	t.Run("server errors hide details", func(t *testing.T) {
		err := huma.NewError(http.StatusInternalServerError, "db exploded", errors.New("secret dsn"))

		var apiErr *handlers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Internal server error", apiErr.Message)
		assert.Empty(t, apiErr.Errors)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()

	handlers.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/shorten", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"Method not allowed"}`, rec.Body.String())
}
