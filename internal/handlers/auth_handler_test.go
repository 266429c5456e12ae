package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"fitcoach_backend/internal/models"
	"fitcoach_backend/internal/services/dto"
	"fitcoach_backend/internal/validator"
	"fitcoach_backend/pkg/apperrors"
)

// fakeAuthService records calls and returns canned results.
type fakeAuthService struct {
	registerResp *dto.AuthResponse
	registerErr  error
	loginResp    *dto.AuthResponse
	loginErr     error
	refreshResp  *dto.TokenPair
	refreshErr   error
	logoutErr    error

	refreshedWith string
	loggedOutID   string
}

func (f *fakeAuthService) Register(*dto.RegisterRequest) (*dto.AuthResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeAuthService) Login(*dto.LoginRequest) (*dto.AuthResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthService) RefreshToken(token string) (*dto.TokenPair, error) {
	f.refreshedWith = token
	return f.refreshResp, f.refreshErr
}

func (f *fakeAuthService) Logout(userID string) error {
	f.loggedOutID = userID
	return f.logoutErr
}

func newAuthHandlerRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(NewBaseHandler(validator.New()), svc)

	router := gin.New()
	router.POST("/api/auth/register", h.Register)
	router.POST("/api/auth/login", h.Login)
	router.POST("/api/auth/refresh-token", h.RefreshToken)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_Success(t *testing.T) {
	svc := &fakeAuthService{
		registerResp: &dto.AuthResponse{
			Message: "User registered successfully",
			User:    models.PublicUser{ID: "user-1", Email: "jamie@test.com", Role: models.UserRoleClient},
			Tokens:  dto.TokenPair{AccessToken: "at", RefreshToken: "rt", ExpiresIn: "24h"},
		},
	}
	router := newAuthHandlerRouter(svc)

	w := postJSON(router, "/api/auth/register", map[string]string{
		"name":     "Jamie Doe",
		"email":    "jamie@test.com",
		"password": "super_password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User registered successfully")
	assert.Contains(t, w.Body.String(), "24h")
}

func TestRegisterHandler_ValidationFailure(t *testing.T) {
	router := newAuthHandlerRouter(&fakeAuthService{})

	w := postJSON(router, "/api/auth/register", map[string]string{
		"name":     "J",
		"email":    "not-an-email",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
	assert.Contains(t, w.Body.String(), "email")
}

func TestRegisterHandler_MalformedBody(t *testing.T) {
	router := newAuthHandlerRouter(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	svc := &fakeAuthService{loginErr: apperrors.ErrInvalidCredentials}
	router := newAuthHandlerRouter(svc)

	w := postJSON(router, "/api/auth/login", map[string]string{
		"email":    "jamie@test.com",
		"password": "wrong_password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestRefreshHandler_MissingToken(t *testing.T) {
	router := newAuthHandlerRouter(&fakeAuthService{})

	w := postJSON(router, "/api/auth/refresh-token", map[string]string{})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Refresh token required")
}

func TestRefreshHandler_InvalidToken(t *testing.T) {
	svc := &fakeAuthService{refreshErr: apperrors.ErrInvalidRefreshToken}
	router := newAuthHandlerRouter(svc)

	w := postJSON(router, "/api/auth/refresh-token", map[string]string{
		"refreshToken": "stale-token",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "stale-token", svc.refreshedWith)
}

func TestRefreshHandler_Success(t *testing.T) {
	svc := &fakeAuthService{
		refreshResp: &dto.TokenPair{AccessToken: "new-at", RefreshToken: "new-rt", ExpiresIn: "24h"},
	}
	router := newAuthHandlerRouter(svc)

	w := postJSON(router, "/api/auth/refresh-token", map[string]string{
		"refreshToken": "valid-token",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-at")
	assert.Contains(t, w.Body.String(), "new-rt")
}
