// api/controller/dashboard_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fixhub-app/fixhub/api/service"
	"github.com/fixhub-app/fixhub/api/util"
)

type DashboardController struct {
	dashboardService service.IDashboardService
}

func NewDashboardController(dashboardService service.IDashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers the API routes
func (dc *DashboardController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard/metrics", dc.GetMetrics)
}

// GetMetrics endpoint
func (dc *DashboardController) GetMetrics(c *gin.Context) {
	metrics, err := dc.dashboardService.GetMetrics(c)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to collect dashboard metrics", err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
