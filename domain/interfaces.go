package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkEmailVerified(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, offset, limit int) ([]*User, int64, error)
}

// SessionRepository defines the refresh-token ledger operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindActive(ctx context.Context, userID uuid.UUID, tokenHash string) (*Session, error)
	Delete(ctx context.Context, userID uuid.UUID, tokenHash string) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Signup(ctx context.Context, email, password, fullName, phone string, role Role, ip, userAgent string) (*AuthResult, error)
	Login(ctx context.Context, email, password, ip, userAgent string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*User, error)
}

// VerificationService issues and redeems the persisted one-time correlation
// tokens used by the email verification and password reset flows.
type VerificationService interface {
	IssueEmailVerification(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ConfirmEmail(ctx context.Context, token string) (uuid.UUID, error)
	IssuePasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService issues and verifies the two signed token classes. Access and
// refresh tokens use independent secrets so leaking one does not compromise
// the other.
type TokenService interface {
	IssueAccess(userID uuid.UUID, email string, role Role) (string, error)
	IssueRefresh(userID uuid.UUID, email string, role Role) (string, error)
	VerifyAccess(token string) (*TokenClaims, error)
	VerifyRefresh(token string) (*TokenClaims, error)
}

// Mailer delivers account mail. The current implementation only logs what it
// would send.
type Mailer interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role Role, resource, action string) error
	RemovePolicy(role Role, resource, action string) error
	CheckPermission(role Role, resource, action string) (bool, error)
	Policies() [][]string
}

// CasbinEnforcer is the slice of the Casbin enforcer API the service uses.
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
