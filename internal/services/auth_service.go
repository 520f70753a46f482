package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eshahhh/educounsel/domain"
)

// AuthConfig carries the token lifetimes the auth service needs to size
// session ledger rows and the expires_in it reports to clients.
type AuthConfig struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	config      AuthConfig
	log         zerolog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	config AuthConfig,
	log zerolog.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		config:      config,
		log:         log,
	}
}

// HashToken returns the SHA-256 digest stored in the session ledger in place
// of the refresh token itself, so a ledger compromise does not yield usable
// tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Signup implements domain.AuthService
func (s *AuthServiceImpl) Signup(ctx context.Context, email, password, fullName, phone string, role domain.Role, ip, userAgent string) (*domain.AuthResult, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		FullName:     fullName,
		Phone:        phone,
		PasswordHash: hashedPassword,
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := s.issueTokenPair(ctx, user, ip, userAgent)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", user.Email).Str("role", user.Role.String()).Msg("user registered")
	return result, nil
}

// Login implements domain.AuthService. Unknown emails and wrong passwords
// collapse into one generic ErrInvalidCredentials; a deactivated account is
// surfaced separately as ErrUserInactive.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password, ip, userAgent string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	result, err := s.issueTokenPair(ctx, user, ip, userAgent)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", user.Email).Msg("user logged in")
	return result, nil
}

// Refresh implements domain.AuthService. Redemption succeeds only if BOTH the
// signature/expiry check and the ledger lookup pass; either failing rejects
// the whole operation. The refresh token is not rotated; only a new access
// token is minted.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenSvc.VerifyRefresh(refreshToken)
	if err != nil {
		return "", domain.ErrRefreshRejected
	}

	if _, err := s.sessionRepo.FindActive(ctx, claims.UserID, HashToken(refreshToken)); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return "", domain.ErrRefreshRejected
		}
		return "", fmt.Errorf("failed to look up session: %w", err)
	}

	accessToken, err := s.tokenSvc.IssueAccess(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}

	return accessToken, nil
}

// Logout implements domain.AuthService. Removing a session that no longer
// exists still reports success.
func (s *AuthServiceImpl) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, userID, HashToken(refreshToken)); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.log.Info().Str("user_id", userID.String()).Msg("user logged out")
	return nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) issueTokenPair(ctx context.Context, user *domain.User, ip, userAgent string) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.IssueAccess(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.IssueRefresh(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	session := &domain.Session{
		UserID:    user.ID,
		TokenHash: HashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.config.RefreshTTL),
		IPAddress: ip,
		UserAgent: userAgent,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTTL.Seconds()),
	}, nil
}
