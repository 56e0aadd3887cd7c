package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDetailDoesNotMutateBase(t *testing.T) {
	e := ErrBadRequest.WithDetail("category required")
	assert.Equal(t, "category required", e.Detail)
	assert.Empty(t, ErrBadRequest.Detail)
}

func TestFromErrorUnwrapsAppError(t *testing.T) {
	wrapped := fmt.Errorf("start: %w", ErrProviderNotFound)
	assert.Same(t, ErrProviderNotFound, FromError(wrapped))

	plain := FromError(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.HTTPStatus)
	assert.EqualError(t, plain.Unwrap(), "boom")
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v2/auth/social/x/start", nil)
	WriteError(rec, req, ErrProviderNotFound.WithDetail("x"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PROVIDER_NOT_FOUND", body["code"])
	assert.Equal(t, "x", body["detail"])
}
