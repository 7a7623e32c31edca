// api/controller/ticket_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/fixhub-app/fixhub/api/controller"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/test/mock"
)

func TestMain(m *testing.M) {
	logger.InitLogger("../logging")
	defer logger.Sync()
	gin.SetMode(gin.TestMode)
	m.Run()
}

func setupTicketRouter(svc *mock.MockTicketService) *gin.Engine {
	r := gin.New()
	tc := controller.NewTicketController(svc)
	api := r.Group("/")
	tc.RegisterRoutes(api)
	tc.RegisterPublicRoutes(api)
	return r
}

func TestTicketController(t *testing.T) {
	t.Run("CreateTicket_Success", func(t *testing.T) {
		svc := new(mock.MockTicketService)
		svc.On("CreateTicket", tmock.Anything, tmock.Anything).
			Return(&model.Ticket{ID: "t1", Number: "FX-AB12CD34", Status: model.TicketStatusReceived}, nil)
		router := setupTicketRouter(svc)

		body := strings.NewReader(`{"customer_id":"c1","device_brand":"Apple","device_model":"iPhone 12","issue":"cracked screen"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/tickets", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "FX-AB12CD34")
	})

	t.Run("CreateTicket_Failure_Invalid", func(t *testing.T) {
		svc := new(mock.MockTicketService)
		svc.On("CreateTicket", tmock.Anything, tmock.Anything).
			Return(nil, fixhub_errors.ErrInvalidTicketData)
		router := setupTicketRouter(svc)

		body := strings.NewReader(`{"customer_id":"c1"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/tickets", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UpdateTicketStatus_Success", func(t *testing.T) {
		svc := new(mock.MockTicketService)
		svc.On("UpdateTicketStatus", tmock.Anything, "t1", model.TicketStatusDiagnosing).
			Return(&model.Ticket{ID: "t1", Status: model.TicketStatusDiagnosing}, nil)
		router := setupTicketRouter(svc)

		body := strings.NewReader(`{"status":"diagnosing"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/tickets/t1/status", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UpdateTicketStatus_Failure_IllegalTransition", func(t *testing.T) {
		svc := new(mock.MockTicketService)
		svc.On("UpdateTicketStatus", tmock.Anything, "t1", model.TicketStatusDelivered).
			Return(nil, fixhub_errors.ErrStatusTransition)
		router := setupTicketRouter(svc)

		body := strings.NewReader(`{"status":"delivered"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/tickets/t1/status", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("GetTicket_Failure_NotFound", func(t *testing.T) {
		svc := new(mock.MockTicketService)
		svc.On("GetTicket", tmock.Anything, "missing").
			Return(nil, fixhub_errors.ErrTicketNotFound)
		router := setupTicketRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tickets/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("TrackTicket_OmitsInternalFields", func(t *testing.T) {
		svc := new(mock.MockTicketService)
		svc.On("TrackTicket", tmock.Anything, "FX-AB12CD34").
			Return(&model.Ticket{
				ID:             "t1",
				Number:         "FX-AB12CD34",
				Status:         model.TicketStatusRepairing,
				TechnicianNote: "ordered replacement panel",
			}, nil)
		router := setupTicketRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tickets/track/FX-AB12CD34", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "repairing")
		assert.NotContains(t, w.Body.String(), "replacement panel")
	})

	t.Run("ListTickets_RejectsUnknownStatus", func(t *testing.T) {
		svc := new(mock.MockTicketService)
		router := setupTicketRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/tickets?status=melted", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "ListTickets")
	})
}
