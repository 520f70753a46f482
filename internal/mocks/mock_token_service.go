package mocks

import (
	"github.com/google/uuid"

	"github.com/eshahhh/educounsel/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueAccessFunc   func(userID uuid.UUID, email string, role domain.Role) (string, error)
	IssueRefreshFunc  func(userID uuid.UUID, email string, role domain.Role) (string, error)
	VerifyAccessFunc  func(token string) (*domain.TokenClaims, error)
	VerifyRefreshFunc func(token string) (*domain.TokenClaims, error)
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) IssueAccess(userID uuid.UUID, email string, role domain.Role) (string, error) {
	if m.IssueAccessFunc != nil {
		return m.IssueAccessFunc(userID, email, role)
	}
	return "access_token", nil
}

func (m *MockTokenService) IssueRefresh(userID uuid.UUID, email string, role domain.Role) (string, error) {
	if m.IssueRefreshFunc != nil {
		return m.IssueRefreshFunc(userID, email, role)
	}
	return "refresh_token", nil
}

func (m *MockTokenService) VerifyAccess(token string) (*domain.TokenClaims, error) {
	if m.VerifyAccessFunc != nil {
		return m.VerifyAccessFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) VerifyRefresh(token string) (*domain.TokenClaims, error) {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}
