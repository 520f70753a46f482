package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/eshahhh/educounsel/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	SignupFunc     func(ctx context.Context, email, password, fullName, phone string, role domain.Role, ip, userAgent string) (*domain.AuthResult, error)
	LoginFunc      func(ctx context.Context, email, password, ip, userAgent string) (*domain.AuthResult, error)
	RefreshFunc    func(ctx context.Context, refreshToken string) (string, error)
	LogoutFunc     func(ctx context.Context, userID uuid.UUID, refreshToken string) error
	GetProfileFunc func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Signup(ctx context.Context, email, password, fullName, phone string, role domain.Role, ip, userAgent string) (*domain.AuthResult, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, email, password, fullName, phone, role, ip, userAgent)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password, ip, userAgent string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password, ip, userAgent)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return "", domain.ErrRefreshRejected
}

func (m *MockAuthService) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, userID, refreshToken)
	}
	return nil
}

func (m *MockAuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}
