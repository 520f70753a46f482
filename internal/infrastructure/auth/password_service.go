package auth

import (
	"github.com/eshahhh/educounsel/domain"
	"golang.org/x/crypto/bcrypt"
)

// saltRounds matches the work factor the platform has always used for
// account passwords. Changing it only affects newly hashed passwords since
// bcrypt embeds the cost in the hash.
const saltRounds = 10

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{cost: saltRounds}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. A mismatch is reported as false,
// never as an error.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
