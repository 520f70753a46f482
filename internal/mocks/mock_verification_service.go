package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/eshahhh/educounsel/domain"
)

// MockVerificationService implements domain.VerificationService for testing
type MockVerificationService struct {
	IssueEmailVerificationFunc func(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ConfirmEmailFunc           func(ctx context.Context, token string) (uuid.UUID, error)
	IssuePasswordResetFunc     func(ctx context.Context, email string) error
	ResetPasswordFunc          func(ctx context.Context, token, newPassword string) error
}

func NewMockVerificationService() *MockVerificationService {
	return &MockVerificationService{}
}

func (m *MockVerificationService) IssueEmailVerification(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	if m.IssueEmailVerificationFunc != nil {
		return m.IssueEmailVerificationFunc(ctx, userID, email)
	}
	return "token", nil
}

func (m *MockVerificationService) ConfirmEmail(ctx context.Context, token string) (uuid.UUID, error) {
	if m.ConfirmEmailFunc != nil {
		return m.ConfirmEmailFunc(ctx, token)
	}
	return uuid.Nil, domain.ErrOneTimeTokenInvalid
}

func (m *MockVerificationService) IssuePasswordReset(ctx context.Context, email string) error {
	if m.IssuePasswordResetFunc != nil {
		return m.IssuePasswordResetFunc(ctx, email)
	}
	return nil
}

func (m *MockVerificationService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	return domain.ErrOneTimeTokenInvalid
}
