package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshahhh/educounsel/domain"
)

// RBACMw gates routes on (role, path, method) policies held by the policy
// service. It runs strictly after Authenticate.
type RBACMw struct {
	policySvc domain.PolicyService
}

// NewRBACMw creates new authorization middleware
func NewRBACMw(policySvc domain.PolicyService) *RBACMw {
	return &RBACMw{policySvc: policySvc}
}

// Enforce checks the requester's role against the policy table for the
// request path and method. Authentication already validated the role string,
// so a missing identity here is a wiring bug and is answered with 401.
func (mw *RBACMw) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}

		allowed, err := mw.policySvc.CheckPermission(identity.Role, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Authorization check failed"})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
			return
		}

		c.Next()
	}
}

// RequireRoles allows the request only when the authenticated role is in the
// given set. Used for routes whose allowed set is fixed in code rather than
// in the policy table.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}

		for _, role := range roles {
			if identity.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
	}
}
