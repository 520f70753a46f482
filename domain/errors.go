package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrInvalidRole        = errors.New("invalid role")
)

// Token errors
var (
	ErrTokenMissing   = errors.New("authentication token required")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRefreshRejected = errors.New("invalid or expired refresh token")
)

// One-time token errors
var (
	ErrOneTimeTokenInvalid = errors.New("invalid or expired token")
	ErrOneTimeTokenKind    = errors.New("wrong token type")
)

// Authorization errors
var (
	ErrAccessDenied = errors.New("access denied")
)
