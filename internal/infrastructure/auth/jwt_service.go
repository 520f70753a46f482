package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eshahhh/educounsel/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with independent secrets so that leaking one secret does not
// compromise the other token class.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess implements domain.TokenService
func (j *JWTServiceImpl) IssueAccess(userID uuid.UUID, email string, role domain.Role) (string, error) {
	return j.sign(userID, email, role, j.accessSecret, j.accessTTL)
}

// IssueRefresh implements domain.TokenService
func (j *JWTServiceImpl) IssueRefresh(userID uuid.UUID, email string, role domain.Role) (string, error) {
	return j.sign(userID, email, role, j.refreshSecret, j.refreshTTL)
}

func (j *JWTServiceImpl) sign(userID uuid.UUID, email string, role domain.Role, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"email":   email,
		"role":    role.String(),
		"iss":     j.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccess implements domain.TokenService
func (j *JWTServiceImpl) VerifyAccess(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, j.accessSecret)
}

// VerifyRefresh implements domain.TokenService
func (j *JWTServiceImpl) VerifyRefresh(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, j.refreshSecret)
}

func (j *JWTServiceImpl) verify(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	rawUserID, ok := claims["user_id"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	rawRole, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	role := domain.Role(rawRole)
	if !role.Valid() {
		return nil, domain.ErrTokenMalformed
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	if time.Unix(int64(exp), 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return &domain.TokenClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
