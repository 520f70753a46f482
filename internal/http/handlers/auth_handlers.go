package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshahhh/educounsel/domain"
	"github.com/eshahhh/educounsel/internal/http/middleware"
)

// AuthHandlers handles the /api/auth route group.
type AuthHandlers struct {
	authSvc         domain.AuthService
	verificationSvc domain.VerificationService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, verificationSvc domain.VerificationService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, verificationSvc: verificationSvc}
}

// SignupRequest represents signup request
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName" binding:"required,min=2"`
	Role     string `json:"role" binding:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke. Optional: logging out
// without one still succeeds, it just cannot revoke anything.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest represents password reset initiation
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents password reset completion
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// VerifyEmailRequest represents email verification
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// userView is the sanitized user representation. The password hash never
// appears in any payload.
type userView struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Phone         string     `json:"phone,omitempty"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func sanitizeUser(user *domain.User) userView {
	return userView{
		ID:            user.ID.String(),
		Email:         user.Email,
		FullName:      user.FullName,
		Phone:         user.Phone,
		Role:          user.Role.String(),
		IsActive:      user.IsActive,
		EmailVerified: user.EmailVerified,
		LastLogin:     user.LastLogin,
		CreatedAt:     user.CreatedAt,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	role := domain.Role(req.Role)
	if !role.Valid() {
		badRequest(c, "Invalid role")
		return
	}

	result, err := h.authSvc.Signup(c.Request.Context(), req.Email, req.Password, req.FullName, req.Phone, role,
		c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "User with this email already exists"})
		case errors.Is(err, domain.ErrInvalidRole):
			badRequest(c, "Invalid role")
		default:
			internalError(c, "Failed to register user")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"user":         sanitizeUser(result.User),
			"accessToken":  result.AccessToken,
			"refreshToken": result.RefreshToken,
		},
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
		case errors.Is(err, domain.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Account is deactivated"})
		default:
			internalError(c, "Login failed")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":         sanitizeUser(result.User),
			"accessToken":  result.AccessToken,
			"refreshToken": result.RefreshToken,
		},
	})
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	accessToken, err := h.authSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrRefreshRejected) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired refresh token"})
			return
		}
		internalError(c, "Token refresh failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"accessToken": accessToken},
	})
}

// Logout handles POST /api/auth/logout. Always reports success, even when no
// matching session row existed.
func (h *AuthHandlers) Logout(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.authSvc.Logout(c.Request.Context(), identity.UserID, req.RefreshToken); err != nil {
		internalError(c, "Logout failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Me handles GET /api/auth/me
func (h *AuthHandlers) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authSvc.GetProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		internalError(c, "Failed to get user profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sanitizeUser(user)})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response does
// not reveal whether the email is registered.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.verificationSvc.IssuePasswordReset(c.Request.Context(), req.Email); err != nil {
		internalError(c, "Failed to process request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the email is registered, a reset link has been sent"})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.verificationSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrOneTimeTokenInvalid) || errors.Is(err, domain.ErrOneTimeTokenKind) {
			badRequest(c, "Invalid or expired reset token")
			return
		}
		internalError(c, "Failed to reset password")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully"})
}

// VerifyEmail handles POST /api/auth/verify-email
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if _, err := h.verificationSvc.ConfirmEmail(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, domain.ErrOneTimeTokenInvalid) || errors.Is(err, domain.ErrOneTimeTokenKind) {
			badRequest(c, "Invalid or expired verification token")
			return
		}
		internalError(c, "Failed to verify email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully"})
}

// ResendVerification handles POST /api/auth/resend-verification
func (h *AuthHandlers) ResendVerification(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return
	}

	if _, err := h.verificationSvc.IssueEmailVerification(c.Request.Context(), identity.UserID, identity.Email); err != nil {
		internalError(c, "Failed to send verification email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verification email sent"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

func unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
}

func internalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
}
