// api/controller/admin_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixhub-app/fixhub/api/auth"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/service"
	"github.com/fixhub-app/fixhub/api/util"
	helper_util "github.com/fixhub-app/fixhub/api/util/helper"
)

type AdminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AdminController) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/users", ac.ListUsers)
		admin.PUT("/users/:id/role", ac.UpdateUserRole)
		admin.GET("/logs", ac.QueryAuditLogs)
	}
}

// ListUsers endpoint
func (ac *AdminController) ListUsers(c *gin.Context) {
	page, limit := helper_util.GetPaginationParams(c)

	users, err := ac.adminService.ListUsers(c, page, limit)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateUserRole endpoint
func (ac *AdminController) UpdateUserRole(c *gin.Context) {
	userID := c.Param("id")
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid role payload", err)
		return
	}

	decision, ok := auth.DecisionFromContext(c.Request.Context())
	if !ok {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", fixhub_errors.ErrUnauthorized)
		return
	}

	updated, err := ac.adminService.UpdateUserRole(c, decision.UserID, userID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrInvalidRole):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown role", err)
		case errors.Is(err, fixhub_errors.ErrProfileNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update user role", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// QueryAuditLogs endpoint
func (ac *AdminController) QueryAuditLogs(c *gin.Context) {
	to := time.Now()
	from := to.Add(-24 * time.Hour)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
			return
		}
		to = parsed
	}

	logs, err := ac.adminService.QueryAuditLogs(c, from, to, c.Query("user_id"), c.Query("action"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", err)
		return
	}

	c.JSON(http.StatusOK, logs)
}
