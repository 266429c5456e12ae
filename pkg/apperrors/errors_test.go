package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAppError_MarshalHidesInternals(t *testing.T) {
	t.Parallel()

	appErr := Wrap(errors.New("pq: connection refused"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	data, err := json.Marshal(appErr)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "connection refused")
	assert.NotContains(t, string(data), "500")
	assert.Contains(t, string(data), "Internal server error")
}

func TestAppError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("record not found")
	appErr := Wrap(inner, CodeNotFound, "users", "User not found", http.StatusNotFound)

	assert.True(t, errors.Is(appErr, inner))
	assert.Contains(t, appErr.Error(), "User not found")
	assert.Contains(t, appErr.Error(), "record not found")
}

func TestAsAppError(t *testing.T) {
	t.Parallel()

	appErr := NewNotFoundError("users", "User not found")
	wrapped := fmt.Errorf("service: %w", appErr)

	got, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, appErr, got)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func performHandleError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	HandleError(c, err)
	return w
}

func TestHandleError_AppError(t *testing.T) {
	w := performHandleError(ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestHandleError_PlainErrorBecomes500(t *testing.T) {
	SetDebug(false)
	w := performHandleError(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleError_DebugExposesDetails(t *testing.T) {
	SetDebug(true)
	defer SetDebug(false)

	w := performHandleError(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestValidationError_CarriesDetails(t *testing.T) {
	t.Parallel()

	appErr := ValidationError(map[string]string{"email": "Must be a valid email address"})
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	data, err := json.Marshal(appErr)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "Must be a valid email address")
}
