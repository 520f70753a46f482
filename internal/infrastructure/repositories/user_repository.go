package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eshahhh/educounsel/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email         string    `gorm:"uniqueIndex;size:255;not null"`
	FullName      string    `gorm:"size:255"`
	Phone         string    `gorm:"size:32"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	Role          string    `gorm:"index;size:32;not null"`
	IsActive      bool      `gorm:"index"`
	EmailVerified bool
	LastLogin     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository. A fresh UUID is assigned when the
// caller did not set one.
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	dbUser := domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(domainToDB(user)).Error
}

// UpdateLastLogin stamps the user's last_login column. Concurrent logins race
// on this column; last write wins.
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

// UpdatePassword implements domain.UserRepository
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// MarkEmailVerified records a redeemed verification token. Idempotent.
func (r *UserRepositoryImpl) MarkEmailVerified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("email_verified", true).Error
}

// Deactivate flips is_active to false. There is no reactivation path.
func (r *UserRepositoryImpl) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).
		Update("is_active", false).Error
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&dbUsers).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, dbToDomain(&dbUsers[i]))
	}
	return users, total, nil
}

func domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Phone:         user.Phone,
		PasswordHash:  user.PasswordHash,
		Role:          user.Role.String(),
		IsActive:      user.IsActive,
		EmailVerified: user.EmailVerified,
		LastLogin:     user.LastLogin,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:            dbUser.ID,
		Email:         dbUser.Email,
		FullName:      dbUser.FullName,
		Phone:         dbUser.Phone,
		PasswordHash:  dbUser.PasswordHash,
		Role:          domain.Role(dbUser.Role),
		IsActive:      dbUser.IsActive,
		EmailVerified: dbUser.EmailVerified,
		LastLogin:     dbUser.LastLogin,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}
