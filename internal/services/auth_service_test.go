package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eshahhh/educounsel/domain"
	"github.com/eshahhh/educounsel/internal/mocks"
)

type authFixture struct {
	userRepo    *mocks.MockUserRepository
	sessionRepo *mocks.MockSessionRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	svc         domain.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    mocks.NewMockUserRepository(),
		sessionRepo: mocks.NewMockSessionRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
	}
	f.svc = NewAuthService(
		f.userRepo,
		f.sessionRepo,
		f.passwordSvc,
		f.tokenSvc,
		AuthConfig{AccessTTL: time.Hour, RefreshTTL: 7 * 24 * time.Hour},
		zerolog.Nop(),
	)
	return f
}

func activeUser(id uuid.UUID) *domain.User {
	return &domain.User{
		ID:           id,
		Email:        "a@x.com",
		FullName:     "Test User",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleStudent,
		IsActive:     true,
	}
}

func TestAuthService_Signup(t *testing.T) {
	f := newAuthFixture()

	var createdSession *domain.Session
	f.sessionRepo.CreateFunc = func(ctx context.Context, s *domain.Session) error {
		createdSession = s
		return nil
	}

	result, err := f.svc.Signup(context.Background(), "new@x.com", "password123", "New User", "+123", domain.RoleStudent, "10.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}

	if result.User.Email != "new@x.com" {
		t.Errorf("Email = %q, want new@x.com", result.User.Email)
	}
	if result.User.PasswordHash != "hashed_password123" {
		t.Errorf("PasswordHash = %q, want the mock hash", result.User.PasswordHash)
	}
	if !result.User.IsActive {
		t.Error("new users must start active")
	}
	if result.AccessToken != "access_token" || result.RefreshToken != "refresh_token" {
		t.Errorf("tokens = (%q, %q), want mock tokens", result.AccessToken, result.RefreshToken)
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("ExpiresIn = %d, want 3600", result.ExpiresIn)
	}

	if createdSession == nil {
		t.Fatal("Signup() must record a session")
	}
	if createdSession.TokenHash != HashToken("refresh_token") {
		t.Error("ledger must store the refresh token hash, not the token")
	}
	if createdSession.IPAddress != "10.0.0.1" || createdSession.UserAgent != "go-test" {
		t.Errorf("session client info = (%q, %q)", createdSession.IPAddress, createdSession.UserAgent)
	}
	if createdSession.ExpiresAt.Before(time.Now().Add(6 * 24 * time.Hour)) {
		t.Error("session expiry must track the refresh TTL")
	}
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return activeUser(uuid.New()), nil
	}

	if _, err := f.svc.Signup(context.Background(), "a@x.com", "password123", "User", "", domain.RoleStudent, "", ""); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("Signup(duplicate) error = %v, want ErrEmailTaken", err)
	}
}

func TestAuthService_SignupInvalidRole(t *testing.T) {
	f := newAuthFixture()

	created := false
	f.userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
		created = true
		return nil
	}

	if _, err := f.svc.Signup(context.Background(), "a@x.com", "password123", "User", "", domain.Role("superadmin"), "", ""); !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("Signup(bad role) error = %v, want ErrInvalidRole", err)
	}
	if created {
		t.Error("no user may be created for an invalid role")
	}
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	lastLoginUpdated := false
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		return activeUser(userID), nil
	}
	f.userRepo.UpdateLastLoginFunc = func(ctx context.Context, id uuid.UUID) error {
		if id != userID {
			t.Errorf("UpdateLastLogin id = %v, want %v", id, userID)
		}
		lastLoginUpdated = true
		return nil
	}

	result, err := f.svc.Login(context.Background(), "a@x.com", "password123", "10.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != userID {
		t.Errorf("User.ID = %v, want %v", result.User.ID, userID)
	}
	if !lastLoginUpdated {
		t.Error("login must stamp last_login")
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		setup    func(f *authFixture)
		password string
		wantErr  error
	}{
		{
			name:     "unknown email",
			setup:    func(f *authFixture) {},
			password: "password123",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			setup: func(f *authFixture) {
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return activeUser(userID), nil
				}
			},
			password: "wrong-password",
			wantErr:  domain.ErrInvalidCredentials,
		},
		{
			name: "deactivated account",
			setup: func(f *authFixture) {
				f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					u := activeUser(userID)
					u.IsActive = false
					return u, nil
				}
			},
			password: "password123",
			wantErr:  domain.ErrUserInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture()
			tt.setup(f)

			if _, err := f.svc.Login(context.Background(), "a@x.com", tt.password, "", ""); !errors.Is(err, tt.wantErr) {
				t.Errorf("Login() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_LoginInactiveBeforePasswordCheck(t *testing.T) {
	f := newAuthFixture()
	f.userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		u := activeUser(uuid.New())
		u.IsActive = false
		return u, nil
	}

	// Even with the right password a deactivated account is rejected as
	// inactive, never as bad credentials.
	if _, err := f.svc.Login(context.Background(), "a@x.com", "password123", "", ""); !errors.Is(err, domain.ErrUserInactive) {
		t.Errorf("Login(inactive) error = %v, want ErrUserInactive", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	f.tokenSvc.VerifyRefreshFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: userID, Email: "a@x.com", Role: domain.RoleStudent}, nil
	}
	f.sessionRepo.FindActiveFunc = func(ctx context.Context, id uuid.UUID, tokenHash string) (*domain.Session, error) {
		if id != userID {
			t.Errorf("FindActive id = %v, want %v", id, userID)
		}
		if tokenHash != HashToken("refresh_token") {
			t.Errorf("FindActive hash = %q, want hash of the presented token", tokenHash)
		}
		return &domain.Session{UserID: id, TokenHash: tokenHash}, nil
	}

	access, err := f.svc.Refresh(context.Background(), "refresh_token")
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if access != "access_token" {
		t.Errorf("access = %q, want access_token", access)
	}
}

func TestAuthService_RefreshRejectsBadSignature(t *testing.T) {
	f := newAuthFixture()

	// Default mock VerifyRefresh fails; the ledger must never be consulted.
	f.sessionRepo.FindActiveFunc = func(ctx context.Context, id uuid.UUID, tokenHash string) (*domain.Session, error) {
		t.Error("ledger must not be consulted for an unverifiable token")
		return nil, domain.ErrSessionNotFound
	}

	if _, err := f.svc.Refresh(context.Background(), "forged"); !errors.Is(err, domain.ErrRefreshRejected) {
		t.Errorf("Refresh(forged) error = %v, want ErrRefreshRejected", err)
	}
}

func TestAuthService_RefreshRejectsMissingLedgerRow(t *testing.T) {
	f := newAuthFixture()

	// Valid signature but no matching ledger row: a revoked session must not
	// refresh even while the token itself is still within its lifetime.
	f.tokenSvc.VerifyRefreshFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: uuid.New(), Email: "a@x.com", Role: domain.RoleStudent}, nil
	}

	if _, err := f.svc.Refresh(context.Background(), "revoked_token"); !errors.Is(err, domain.ErrRefreshRejected) {
		t.Errorf("Refresh(revoked) error = %v, want ErrRefreshRejected", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	var deletedHash string
	f.sessionRepo.DeleteFunc = func(ctx context.Context, id uuid.UUID, tokenHash string) error {
		deletedHash = tokenHash
		return nil
	}

	if err := f.svc.Logout(context.Background(), userID, "refresh_token"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if deletedHash != HashToken("refresh_token") {
		t.Errorf("deleted hash = %q, want hash of the refresh token", deletedHash)
	}

	// No token at all still succeeds
	if err := f.svc.Logout(context.Background(), userID, ""); err != nil {
		t.Errorf("Logout(no token) error = %v", err)
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return activeUser(id), nil
	}

	user, err := f.svc.GetProfile(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if user.ID != userID {
		t.Errorf("ID = %v, want %v", user.ID, userID)
	}
}
