// api/middleware/admin_gate_test.go
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/fixhub-app/fixhub/api/auth"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/middleware"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/test/mock"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	gin.SetMode(gin.TestMode)
	m.Run()
}

func gatedRouter(sessions *mock.MockSessions, profiles *mock.MockProfileReader) *gin.Engine {
	attempts := auth.NewAttemptTracker(5, 5*time.Minute)
	authService := auth.NewService(sessions, profiles, mock.NopAuditService{}, attempts)

	r := gin.New()
	admin := r.Group("/admin")
	admin.Use(middleware.AdminGate(authService))
	admin.GET("/dashboard", func(c *gin.Context) {
		decision, ok := auth.DecisionFromContext(c.Request.Context())
		assertDecision := gin.H{"memoized": ok, "role": decision.Role}
		c.JSON(http.StatusOK, assertDecision)
	})
	admin.GET("/customers", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	admin.GET("/tickets", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAdminGateRedirectsAnonymousBrowserToLogin(t *testing.T) {
	sessions := new(mock.MockSessions)
	profiles := new(mock.MockProfileReader)
	sessions.On("GetSession", tmock.Anything, "").
		Return(auth.Session{}, fixhub_errors.ErrNoSession)
	router := gatedRouter(sessions, profiles)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdminGateReturns401ForAnonymousAPIClient(t *testing.T) {
	sessions := new(mock.MockSessions)
	profiles := new(mock.MockProfileReader)
	sessions.On("GetSession", tmock.Anything, "").
		Return(auth.Session{}, fixhub_errors.ErrNoSession)
	router := gatedRouter(sessions, profiles)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "/admin/login")
}

func TestAdminGateSendsNonAdminHome(t *testing.T) {
	sessions := new(mock.MockSessions)
	profiles := new(mock.MockProfileReader)
	sessions.On("GetSession", tmock.Anything, "user-token").
		Return(auth.Session{UserID: "u1", Email: "user@fixhub.app"}, nil)
	profiles.On("GetRole", tmock.Anything, "u1").Return(model.RoleUser, nil)
	router := gatedRouter(sessions, profiles)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/customers", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	req.Header.Set("Accept", "text/html")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAdminGateAllowsAdminThroughRowLevelSecurityError(t *testing.T) {
	sessions := new(mock.MockSessions)
	profiles := new(mock.MockProfileReader)
	sessions.On("GetSession", tmock.Anything, "admin-token").
		Return(auth.Session{UserID: "a1", Email: "owner@fixhub.app"}, nil)
	profiles.On("GetRole", tmock.Anything, "a1").
		Return("", fixhub_errors.ErrRowLevelSecurity)
	router := gatedRouter(sessions, profiles)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/tickets", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminGateMemoizesDecisionForHandlers(t *testing.T) {
	sessions := new(mock.MockSessions)
	profiles := new(mock.MockProfileReader)
	sessions.On("GetSession", tmock.Anything, "admin-token").
		Return(auth.Session{UserID: "a1", Email: "owner@fixhub.app"}, nil).Once()
	profiles.On("GetRole", tmock.Anything, "a1").Return(model.RoleAdmin, nil).Once()
	router := gatedRouter(sessions, profiles)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"memoized":true`)
	assert.Contains(t, w.Body.String(), model.RoleAdmin)
	sessions.AssertExpectations(t)
	profiles.AssertExpectations(t)
}
