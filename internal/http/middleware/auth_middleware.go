package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eshahhh/educounsel/domain"
)

// identityKey is where the request-scoped AuthIdentity lives in the gin
// context.
const identityKey = "auth_identity"

// AuthMW wraps the dependencies of the per-request authentication gate.
type AuthMW struct {
	tokenSvc domain.TokenService
	userRepo domain.UserRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, userRepo domain.UserRepository) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate verifies the bearer access token and loads the live user
// record, short-circuiting on the first failure. A missing user and a
// deactivated user produce the same response on purpose, so the gate does
// not reveal which accounts exist. The gate never writes.
func (mw *AuthMW) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authentication token required")
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			abortUnauthorized(c, "Authentication token required")
			return
		}

		claims, err := mw.tokenSvc.VerifyAccess(tokenParts[1])
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				abortUnauthorized(c, "Token expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		user, err := mw.userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			abortUnauthorized(c, "User not found or inactive")
			return
		}

		c.Set(identityKey, domain.AuthIdentity{
			UserID: user.ID,
			Email:  user.Email,
			Role:   user.Role,
		})

		c.Next()
	}
}

// IdentityFrom returns the authenticated identity attached by Authenticate.
func IdentityFrom(c *gin.Context) (domain.AuthIdentity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.AuthIdentity{}, false
	}
	identity, ok := v.(domain.AuthIdentity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
}
