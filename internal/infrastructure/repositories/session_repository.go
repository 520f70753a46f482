package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eshahhh/educounsel/domain"
)

// SessionRepositoryImpl implements the refresh-token ledger on Postgres.
// Expired rows are filtered at query time; there is no background reaper.
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// DBSession represents the database model for Session (with GORM tags)
type DBSession struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	TokenHash string    `gorm:"index;size:64;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	IPAddress string    `gorm:"size:64"`
	UserAgent string    `gorm:"size:512"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository. Each login or signup inserts
// its own row; multiple concurrent sessions per user are allowed.
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	dbSession := &DBSession{
		UserID:    session.UserID,
		TokenHash: session.TokenHash,
		ExpiresAt: session.ExpiresAt,
		IPAddress: session.IPAddress,
		UserAgent: session.UserAgent,
	}
	if err := r.db.WithContext(ctx).Create(dbSession).Error; err != nil {
		return err
	}
	session.ID = dbSession.ID
	session.CreatedAt = dbSession.CreatedAt
	return nil
}

// FindActive implements domain.SessionRepository. Only rows whose expiry is
// strictly in the future match.
func (r *SessionRepositoryImpl) FindActive(ctx context.Context, userID uuid.UUID, tokenHash string) (*domain.Session, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ? AND expires_at > ?", userID, tokenHash, time.Now()).
		First(&dbSession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	return &domain.Session{
		ID:        dbSession.ID,
		UserID:    dbSession.UserID,
		TokenHash: dbSession.TokenHash,
		ExpiresAt: dbSession.ExpiresAt,
		IPAddress: dbSession.IPAddress,
		UserAgent: dbSession.UserAgent,
		CreatedAt: dbSession.CreatedAt,
	}, nil
}

// Delete implements domain.SessionRepository. Deleting a row that does not
// exist is not an error; logout is idempotent.
func (r *SessionRepositoryImpl) Delete(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token_hash = ?", userID, tokenHash).
		Delete(&DBSession{}).Error
}

// DeleteAllForUser removes every ledger row for the user, failing the ledger
// check of all outstanding refresh tokens even though their signatures stay
// valid until natural expiry.
func (r *SessionRepositoryImpl) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&DBSession{}).Error
}
