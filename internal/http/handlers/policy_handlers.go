package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eshahhh/educounsel/domain"
)

// PolicyHandlers exposes the authorization policy table to admins.
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

// PolicyRequest represents one (role, resource, action) policy row
type PolicyRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// List handles GET /api/admin/policies
func (h *PolicyHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": h.policySvc.Policies()})
}

// Add handles POST /api/admin/policies
func (h *PolicyHandlers) Add(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.policySvc.AddPolicy(domain.Role(req.Role), req.Resource, req.Action); err != nil {
		if err == domain.ErrInvalidRole {
			badRequest(c, "Invalid role")
			return
		}
		internalError(c, "Failed to add policy")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Policy added"})
}

// Remove handles DELETE /api/admin/policies
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var req PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.policySvc.RemovePolicy(domain.Role(req.Role), req.Resource, req.Action); err != nil {
		if err == domain.ErrInvalidRole {
			badRequest(c, "Invalid role")
			return
		}
		internalError(c, "Failed to remove policy")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Policy removed"})
}
