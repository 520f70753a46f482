package notifications

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eshahhh/educounsel/domain"
)

// EmailServiceImpl implements domain.Mailer. No provider is wired yet, so it
// logs the mail it would deliver together with the link the recipient would
// receive.
type EmailServiceImpl struct {
	frontendURL string
	log         zerolog.Logger
}

// NewEmailService creates a new log-only mailer
func NewEmailService(frontendURL string, log zerolog.Logger) domain.Mailer {
	return &EmailServiceImpl{frontendURL: frontendURL, log: log}
}

// SendVerificationEmail implements domain.Mailer
func (s *EmailServiceImpl) SendVerificationEmail(to, token string) error {
	s.log.Info().
		Str("to", to).
		Str("url", fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token)).
		Msg("verification email would be sent")
	return nil
}

// SendPasswordResetEmail implements domain.Mailer
func (s *EmailServiceImpl) SendPasswordResetEmail(to, token string) error {
	s.log.Info().
		Str("to", to).
		Str("url", fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)).
		Msg("password reset email would be sent")
	return nil
}
