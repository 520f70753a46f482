package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/eshahhh/educounsel/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing
type MockSessionRepository struct {
	CreateFunc           func(ctx context.Context, session *domain.Session) error
	FindActiveFunc       func(ctx context.Context, userID uuid.UUID, tokenHash string) (*domain.Session, error)
	DeleteFunc           func(ctx context.Context, userID uuid.UUID, tokenHash string) error
	DeleteAllForUserFunc func(ctx context.Context, userID uuid.UUID) error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindActive(ctx context.Context, userID uuid.UUID, tokenHash string) (*domain.Session, error) {
	if m.FindActiveFunc != nil {
		return m.FindActiveFunc(ctx, userID, tokenHash)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) Delete(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, tokenHash)
	}
	return nil
}

func (m *MockSessionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	return nil
}
