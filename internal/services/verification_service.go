package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eshahhh/educounsel/domain"
)

// VerificationServiceImpl implements domain.VerificationService on Redis.
// Tokens are single-use correlation values: stored with a TTL at issue time
// and deleted on redemption, so they survive restarts and work across
// instances, unlike an in-process map.
type VerificationServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	mailer      domain.Mailer
	redisClient *redis.Client
	config      VerificationConfig
	log         zerolog.Logger
}

type VerificationConfig struct {
	EmailTokenTTL time.Duration
	ResetTokenTTL time.Duration
}

// NewVerificationService creates a new Redis-based verification service
func NewVerificationService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	mailer domain.Mailer,
	redisClient *redis.Client,
	config VerificationConfig,
	log zerolog.Logger,
) domain.VerificationService {
	return &VerificationServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		mailer:      mailer,
		redisClient: redisClient,
		config:      config,
		log:         log,
	}
}

func tokenKey(token string) string { return "onetime:" + token }

// IssueEmailVerification implements domain.VerificationService
func (s *VerificationServiceImpl) IssueEmailVerification(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	value := fmt.Sprintf("%s:%s", domain.TokenKindEmailVerification, userID)
	if err := s.redisClient.Set(ctx, tokenKey(token), value, s.config.EmailTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store verification token: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(email, token); err != nil {
		s.redisClient.Del(ctx, tokenKey(token))
		return "", fmt.Errorf("failed to send verification email: %w", err)
	}

	return token, nil
}

// ConfirmEmail implements domain.VerificationService
func (s *VerificationServiceImpl) ConfirmEmail(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.redeem(ctx, token, domain.TokenKindEmailVerification)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.userRepo.MarkEmailVerified(ctx, userID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	s.log.Info().Str("user_id", userID.String()).Msg("email verified")
	return userID, nil
}

// IssuePasswordReset implements domain.VerificationService. An unknown email
// is not an error; the caller reports success either way to avoid account
// enumeration.
func (s *VerificationServiceImpl) IssuePasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return err
	}

	value := fmt.Sprintf("%s:%s", domain.TokenKindPasswordReset, user.ID)
	if err := s.redisClient.Set(ctx, tokenKey(token), value, s.config.ResetTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, token); err != nil {
		s.redisClient.Del(ctx, tokenKey(token))
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}

// ResetPassword implements domain.VerificationService. A successful reset
// revokes every outstanding session so stolen refresh tokens die with the
// old password.
func (s *VerificationServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.redeem(ctx, token, domain.TokenKindPasswordReset)
	if err != nil {
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessionRepo.DeleteAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.log.Info().Str("user_id", userID.String()).Msg("password reset")
	return nil
}

// redeem consumes a one-time token: wrong kind leaves the token in place,
// any successful match deletes it.
func (s *VerificationServiceImpl) redeem(ctx context.Context, token string, kind domain.OneTimeTokenKind) (uuid.UUID, error) {
	value, err := s.redisClient.Get(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return uuid.Nil, domain.ErrOneTimeTokenInvalid
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load token: %w", err)
	}

	storedKind, rawUserID, ok := strings.Cut(value, ":")
	if !ok {
		return uuid.Nil, domain.ErrOneTimeTokenInvalid
	}

	if domain.OneTimeTokenKind(storedKind) != kind {
		return uuid.Nil, domain.ErrOneTimeTokenKind
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return uuid.Nil, domain.ErrOneTimeTokenInvalid
	}

	if err := s.redisClient.Del(ctx, tokenKey(token)).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to consume token: %w", err)
	}

	return userID, nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
