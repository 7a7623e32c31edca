// api/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixhub-app/fixhub/api/auth"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/util"
)

// sessionCookie is the browser-facing session token. The Authorization
// header wins when both are present.
const sessionCookie = "fixhub_session"

type AuthController struct {
	authService *auth.Service
}

func NewAuthController(authService *auth.Service) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", ac.Login)
		authGroup.POST("/logout", ac.Logout)
		authGroup.GET("/me", ac.Me)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid login payload", err)
		return
	}

	token, session, err := ac.authService.Login(c, req.Email, req.Password, util.Origin(c))
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrInvalidCredentials):
			util.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials", err)
		case errors.Is(err, fixhub_errors.ErrAccessDenied):
			util.RespondWithError(c, http.StatusForbidden, "Admin access required", err)
		case errors.Is(err, fixhub_errors.ErrRoleCheckFailed):
			util.RespondWithError(c, http.StatusForbidden, "Could not verify permissions", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Login failed", fixhub_errors.ErrInternalServer)
		}
		return
	}

	c.SetCookie(sessionCookie, token, int(time.Until(session.ExpiresAt).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"user_id":    session.UserID,
		"email":      session.Email,
		"expires_at": session.ExpiresAt,
	})
}

// Logout endpoint
func (ac *AuthController) Logout(c *gin.Context) {
	token := util.BearerToken(c)
	if token == "" {
		util.RespondWithError(c, http.StatusUnauthorized, "No active session", fixhub_errors.ErrNoSession)
		return
	}

	if err := ac.authService.Logout(c, token, util.Origin(c)); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Logout failed", err)
		return
	}

	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// Me endpoint reports the gate decision for the current session.
func (ac *AuthController) Me(c *gin.Context) {
	token := util.BearerToken(c)
	if token == "" {
		util.RespondWithError(c, http.StatusUnauthorized, "No active session", fixhub_errors.ErrNoSession)
		return
	}

	decision := ac.authService.CheckAdmin(c, token, util.Origin(c))
	if !decision.Allowed {
		c.JSON(http.StatusOK, gin.H{"admin": false, "redirect": decision.Redirect})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"admin":   true,
		"user_id": decision.UserID,
		"email":   decision.Email,
		"role":    decision.Role,
	})
}
