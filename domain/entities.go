package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles. Free-form role strings are
// rejected at every boundary: signup, middleware and the authorization gate.
type Role string

const (
	RoleStudent   Role = "student"
	RoleCounselor Role = "counselor"
	RoleSchool    Role = "school"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleCounselor, RoleSchool, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User represents an EduCounsel account. PasswordHash never leaves the
// service; handlers serialize users through sanitized views only.
type User struct {
	ID            uuid.UUID
	Email         string
	FullName      string
	Phone         string
	PasswordHash  string
	Role          Role
	IsActive      bool
	EmailVerified bool
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session is one row of the refresh-token ledger. TokenHash holds a SHA-256
// digest of the refresh token, never the token itself. A session is live
// while ExpiresAt is strictly in the future and the row has not been deleted.
type Session struct {
	ID        uint
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// AuthIdentity is the request-scoped identity derived from a verified access
// token plus a live user lookup. It is rebuilt on every request and never
// cached across requests.
type AuthIdentity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// TokenClaims is the payload carried by both token classes.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      Role
	IssuedAt  int64
	ExpiresAt int64
}

// AuthResult is what login and signup hand back to the transport layer.
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// OneTimeTokenKind distinguishes the two persisted correlation-token flows.
type OneTimeTokenKind string

const (
	TokenKindEmailVerification OneTimeTokenKind = "email_verification"
	TokenKindPasswordReset     OneTimeTokenKind = "password_reset"
)
