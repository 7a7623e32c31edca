// api/controller/dashboard_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/fixhub-app/fixhub/api/controller"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/test/mock"
)

func TestDashboardController(t *testing.T) {
	setup := func(svc *mock.MockDashboardService) *gin.Engine {
		r := gin.New()
		dc := controller.NewDashboardController(svc)
		dc.RegisterRoutes(r.Group("/"))
		return r
	}

	t.Run("GetMetrics_Success", func(t *testing.T) {
		svc := new(mock.MockDashboardService)
		svc.On("GetMetrics", tmock.Anything).Return(&model.DashboardMetrics{
			TicketsByStatus: map[string]int64{model.TicketStatusReceived: 3},
			OpenTickets:     3,
			TotalCustomers:  12,
			MonthlyRevenue:  540.50,
		}, nil)
		router := setup(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dashboard/metrics", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "540.5")
	})

	t.Run("GetMetrics_Failure", func(t *testing.T) {
		svc := new(mock.MockDashboardService)
		svc.On("GetMetrics", tmock.Anything).Return(nil, fixhub_errors.ErrDatabaseOperation)
		router := setup(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dashboard/metrics", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
