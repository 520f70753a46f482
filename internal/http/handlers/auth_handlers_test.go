package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshahhh/educounsel/domain"
	"github.com/eshahhh/educounsel/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setIdentity mimics the authentication middleware for routes behind it.
func setIdentity(identity domain.AuthIdentity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("auth_identity", identity)
		c.Next()
	}
}

func authRouter(authSvc domain.AuthService, verificationSvc domain.VerificationService, identity *domain.AuthIdentity) *gin.Engine {
	h := NewAuthHandlers(authSvc, verificationSvc)
	r := gin.New()

	auth := r.Group("/api/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)
	auth.POST("/verify-email", h.VerifyEmail)

	authed := auth.Group("")
	if identity != nil {
		authed.Use(setIdentity(*identity))
	}
	authed.POST("/logout", h.Logout)
	authed.GET("/me", h.Me)
	authed.POST("/resend-verification", h.ResendVerification)

	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleResult(userID uuid.UUID) *domain.AuthResult {
	return &domain.AuthResult{
		User: &domain.User{
			ID:           userID,
			Email:        "a@x.com",
			FullName:     "Test User",
			PasswordHash: "$2b$10$secret",
			Role:         domain.RoleStudent,
			IsActive:     true,
		},
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		ExpiresIn:    3600,
	}
}

func TestSignupHandler_Created(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.SignupFunc = func(ctx context.Context, email, password, fullName, phone string, role domain.Role, ip, userAgent string) (*domain.AuthResult, error) {
		assert.Equal(t, "new@x.com", email)
		assert.Equal(t, domain.RoleStudent, role)
		return sampleResult(uuid.New()), nil
	}
	r := authRouter(authSvc, mocks.NewMockVerificationService(), nil)

	w := doJSON(r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "new@x.com",
		"password": "password123",
		"fullName": "Test User",
		"role":     "student",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			User         map[string]interface{} `json:"user"`
			AccessToken  string                 `json:"accessToken"`
			RefreshToken string                 `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "access_token", resp.Data.AccessToken)
	assert.Equal(t, "a@x.com", resp.Data.User["email"])

	// The hash must not leak anywhere in the payload
	assert.NotContains(t, w.Body.String(), "secret")
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestSignupHandler_Validation(t *testing.T) {
	r := authRouter(mocks.NewMockAuthService(), mocks.NewMockVerificationService(), nil)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"password": "password123", "fullName": "User", "role": "student"}},
		{"bad email", gin.H{"email": "nope", "password": "password123", "fullName": "User", "role": "student"}},
		{"short password", gin.H{"email": "a@x.com", "password": "short", "fullName": "User", "role": "student"}},
		{"short name", gin.H{"email": "a@x.com", "password": "password123", "fullName": "U", "role": "student"}},
		{"missing role", gin.H{"email": "a@x.com", "password": "password123", "fullName": "User"}},
		{"unknown role", gin.H{"email": "a@x.com", "password": "password123", "fullName": "User", "role": "superadmin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/signup", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestSignupHandler_DuplicateEmail(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.SignupFunc = func(ctx context.Context, email, password, fullName, phone string, role domain.Role, ip, userAgent string) (*domain.AuthResult, error) {
		return nil, domain.ErrEmailTaken
	}
	r := authRouter(authSvc, mocks.NewMockVerificationService(), nil)

	w := doJSON(r, http.MethodPost, "/api/auth/signup", gin.H{
		"email":    "dup@x.com",
		"password": "password123",
		"fullName": "Test User",
		"role":     "student",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"User with this email already exists"}`, w.Body.String())
}

func TestLoginHandler_OK(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.LoginFunc = func(ctx context.Context, email, password, ip, userAgent string) (*domain.AuthResult, error) {
		return sampleResult(uuid.New()), nil
	}
	r := authRouter(authSvc, mocks.NewMockVerificationService(), nil)

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "a@x.com", "password": "password123"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"refreshToken":"refresh_token"`)
}

func TestLoginHandler_Failures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"deactivated", domain.ErrUserInactive, http.StatusForbidden, "Account is deactivated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authSvc := mocks.NewMockAuthService()
			authSvc.LoginFunc = func(ctx context.Context, email, password, ip, userAgent string) (*domain.AuthResult, error) {
				return nil, tt.err
			}
			r := authRouter(authSvc, mocks.NewMockVerificationService(), nil)

			w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "a@x.com", "password": "password123"})
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantMsg)
		})
	}
}

func TestRefreshHandler(t *testing.T) {
	authSvc := mocks.NewMockAuthService()
	authSvc.RefreshFunc = func(ctx context.Context, refreshToken string) (string, error) {
		if refreshToken == "good" {
			return "fresh_access", nil
		}
		return "", domain.ErrRefreshRejected
	}
	r := authRouter(authSvc, mocks.NewMockVerificationService(), nil)

	w := doJSON(r, http.MethodPost, "/api/auth/refresh", gin.H{"refreshToken": "good"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"accessToken":"fresh_access"}}`, w.Body.String())

	w = doJSON(r, http.MethodPost, "/api/auth/refresh", gin.H{"refreshToken": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid or expired refresh token"}`, w.Body.String())

	// Missing token fails binding
	w = doJSON(r, http.MethodPost, "/api/auth/refresh", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutHandler(t *testing.T) {
	userID := uuid.New()
	identity := &domain.AuthIdentity{UserID: userID, Email: "a@x.com", Role: domain.RoleStudent}

	var loggedOut string
	authSvc := mocks.NewMockAuthService()
	authSvc.LogoutFunc = func(ctx context.Context, id uuid.UUID, refreshToken string) error {
		assert.Equal(t, userID, id)
		loggedOut = refreshToken
		return nil
	}
	r := authRouter(authSvc, mocks.NewMockVerificationService(), identity)

	w := doJSON(r, http.MethodPost, "/api/auth/logout", gin.H{"refreshToken": "refresh_token"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "refresh_token", loggedOut)
	assert.JSONEq(t, `{"success":true,"message":"Logged out successfully"}`, w.Body.String())

	// No body at all still succeeds
	w = doJSON(r, http.MethodPost, "/api/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutHandler_RequiresIdentity(t *testing.T) {
	r := authRouter(mocks.NewMockAuthService(), mocks.NewMockVerificationService(), nil)

	w := doJSON(r, http.MethodPost, "/api/auth/logout", gin.H{"refreshToken": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeHandler(t *testing.T) {
	userID := uuid.New()
	identity := &domain.AuthIdentity{UserID: userID, Email: "a@x.com", Role: domain.RoleStudent}

	authSvc := mocks.NewMockAuthService()
	authSvc.GetProfileFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return sampleResult(id).User, nil
	}
	r := authRouter(authSvc, mocks.NewMockVerificationService(), identity)

	w := doJSON(r, http.MethodGet, "/api/auth/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.False(t, strings.Contains(w.Body.String(), "secret"))
}

func TestMeHandler_UserGone(t *testing.T) {
	identity := &domain.AuthIdentity{UserID: uuid.New(), Email: "a@x.com", Role: domain.RoleStudent}
	// Default mock GetProfile returns ErrUserNotFound
	r := authRouter(mocks.NewMockAuthService(), mocks.NewMockVerificationService(), identity)

	w := doJSON(r, http.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"User not found"}`, w.Body.String())
}

func TestForgotPasswordHandler_AlwaysSucceeds(t *testing.T) {
	r := authRouter(mocks.NewMockAuthService(), mocks.NewMockVerificationService(), nil)

	w := doJSON(r, http.MethodPost, "/api/auth/forgot-password", gin.H{"email": "anyone@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "If the email is registered")
}

func TestResetPasswordHandler(t *testing.T) {
	verificationSvc := mocks.NewMockVerificationService()
	verificationSvc.ResetPasswordFunc = func(ctx context.Context, token, newPassword string) error {
		if token == "good" {
			return nil
		}
		return domain.ErrOneTimeTokenInvalid
	}
	r := authRouter(mocks.NewMockAuthService(), verificationSvc, nil)

	w := doJSON(r, http.MethodPost, "/api/auth/reset-password", gin.H{"token": "good", "newPassword": "password123"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/reset-password", gin.H{"token": "bad", "newPassword": "password123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired reset token")

	// Short replacement password fails binding
	w = doJSON(r, http.MethodPost, "/api/auth/reset-password", gin.H{"token": "good", "newPassword": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmailHandler(t *testing.T) {
	verificationSvc := mocks.NewMockVerificationService()
	verificationSvc.ConfirmEmailFunc = func(ctx context.Context, token string) (uuid.UUID, error) {
		if token == "good" {
			return uuid.New(), nil
		}
		return uuid.Nil, domain.ErrOneTimeTokenInvalid
	}
	r := authRouter(mocks.NewMockAuthService(), verificationSvc, nil)

	w := doJSON(r, http.MethodPost, "/api/auth/verify-email", gin.H{"token": "good"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Email verified successfully")

	w = doJSON(r, http.MethodPost, "/api/auth/verify-email", gin.H{"token": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResendVerificationHandler(t *testing.T) {
	identity := &domain.AuthIdentity{UserID: uuid.New(), Email: "a@x.com", Role: domain.RoleStudent}

	verificationSvc := mocks.NewMockVerificationService()
	var sentTo string
	verificationSvc.IssueEmailVerificationFunc = func(ctx context.Context, userID uuid.UUID, email string) (string, error) {
		sentTo = email
		return "token", nil
	}
	r := authRouter(mocks.NewMockAuthService(), verificationSvc, identity)

	w := doJSON(r, http.MethodPost, "/api/auth/resend-verification", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com", sentTo)
}
