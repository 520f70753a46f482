package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eshahhh/educounsel/domain"
	"github.com/eshahhh/educounsel/internal/http/middleware"
)

// UserHandlers handles the /api/users route group.
type UserHandlers struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	log         zerolog.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userRepo domain.UserRepository, sessionRepo domain.SessionRepository, log zerolog.Logger) *UserHandlers {
	return &UserHandlers{userRepo: userRepo, sessionRepo: sessionRepo, log: log}
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	FullName string `json:"fullName" binding:"required,min=2"`
	Phone    string `json:"phone"`
}

// List handles GET /api/users (admin only, enforced by the policy table).
func (h *UserHandlers) List(c *gin.Context) {
	page, limit := paginationParams(c)

	users, total, err := h.userRepo.List(c.Request.Context(), (page-1)*limit, limit)
	if err != nil {
		internalError(c, "Failed to list users")
		return
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, sanitizeUser(user))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       views,
		"pagination": paginationMeta(page, limit, total),
	})
}

// Get handles GET /api/users/:id. A user may fetch their own record; admins
// may fetch anyone's.
func (h *UserHandlers) Get(c *gin.Context) {
	_, targetID, ok := h.requireSelfOrAdmin(c)
	if !ok {
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		internalError(c, "Failed to get user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": sanitizeUser(user)})
}

// Update handles PUT /api/users/:id (self or admin).
func (h *UserHandlers) Update(c *gin.Context) {
	_, targetID, ok := h.requireSelfOrAdmin(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		internalError(c, "Failed to get user")
		return
	}

	user.FullName = req.FullName
	user.Phone = req.Phone
	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		internalError(c, "Failed to update profile")
		return
	}

	h.log.Info().Str("user_id", targetID.String()).Msg("user profile updated")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sanitizeUser(user),
		"message": "Profile updated successfully",
	})
}

// Deactivate handles POST /api/users/:id/deactivate (admin only). Flipping
// the active flag alone would leave outstanding refresh tokens redeemable,
// so every session row is deleted in the same request.
func (h *UserHandlers) Deactivate(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid user ID")
		return
	}

	if err := h.userRepo.Deactivate(c.Request.Context(), targetID); err != nil {
		internalError(c, "Failed to deactivate user")
		return
	}

	if err := h.sessionRepo.DeleteAllForUser(c.Request.Context(), targetID); err != nil {
		internalError(c, "Failed to revoke sessions")
		return
	}

	h.log.Info().Str("user_id", targetID.String()).Msg("user deactivated")

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deactivated successfully"})
}

func (h *UserHandlers) requireSelfOrAdmin(c *gin.Context) (domain.AuthIdentity, uuid.UUID, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		unauthorized(c, "Not authenticated")
		return domain.AuthIdentity{}, uuid.Nil, false
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "Invalid user ID")
		return domain.AuthIdentity{}, uuid.Nil, false
	}

	if identity.Role != domain.RoleAdmin && identity.UserID != targetID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
		return domain.AuthIdentity{}, uuid.Nil, false
	}

	return identity, targetID, true
}

func paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginationMeta(page, limit int, total int64) gin.H {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return gin.H{
		"page":            page,
		"limit":           limit,
		"total":           total,
		"totalPages":      totalPages,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}
