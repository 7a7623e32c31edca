// api/controller/ticket_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/service"
	"github.com/fixhub-app/fixhub/api/util"
	helper_util "github.com/fixhub-app/fixhub/api/util/helper"
)

type TicketController struct {
	ticketService service.ITicketService
}

func NewTicketController(ticketService service.ITicketService) *TicketController {
	return &TicketController{
		ticketService: ticketService,
	}
}

// RegisterRoutes registers the staff-facing API routes
func (tc *TicketController) RegisterRoutes(r *gin.RouterGroup) {
	tickets := r.Group("/tickets")
	{
		tickets.POST("", tc.CreateTicket)
		tickets.PUT("/:id", tc.UpdateTicket)
		tickets.PUT("/:id/status", tc.UpdateTicketStatus)
		tickets.DELETE("/:id", tc.DeleteTicket)
		tickets.GET("/:id", tc.GetTicket)
		tickets.GET("", tc.ListTickets)
	}
}

// RegisterPublicRoutes registers the customer-facing tracking route
func (tc *TicketController) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET("/tickets/track/:number", tc.TrackTicket)
}

// CreateTicket endpoint
func (tc *TicketController) CreateTicket(c *gin.Context) {
	var ticket model.Ticket
	if err := c.ShouldBindJSON(&ticket); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid ticket data", fixhub_errors.ErrInvalidTicketData)
		return
	}

	createdTicket, err := tc.ticketService.CreateTicket(c, ticket)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrInvalidTicketData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid ticket data", err)
		case errors.Is(err, fixhub_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create ticket", fixhub_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, createdTicket)
}

// UpdateTicket endpoint
func (tc *TicketController) UpdateTicket(c *gin.Context) {
	ticketID := c.Param("id")
	var ticket model.Ticket
	if err := c.ShouldBindJSON(&ticket); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid ticket data", err)
		return
	}
	ticket.ID = ticketID

	updatedTicket, err := tc.ticketService.UpdateTicket(c, ticket)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrTicketNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Ticket not found", err)
		case errors.Is(err, fixhub_errors.ErrInvalidTicketData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid ticket data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedTicket)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateTicketStatus endpoint
func (tc *TicketController) UpdateTicketStatus(c *gin.Context) {
	ticketID := c.Param("id")
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid status payload", err)
		return
	}

	updatedTicket, err := tc.ticketService.UpdateTicketStatus(c, ticketID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrTicketNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Ticket not found", err)
		case errors.Is(err, fixhub_errors.ErrInvalidStatus):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown ticket status", err)
		case errors.Is(err, fixhub_errors.ErrStatusTransition):
			util.RespondWithError(c, http.StatusConflict, "Illegal status transition", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update ticket status", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedTicket)
}

// DeleteTicket endpoint
func (tc *TicketController) DeleteTicket(c *gin.Context) {
	ticketID := c.Param("id")

	if err := tc.ticketService.DeleteTicket(c, ticketID); err != nil {
		if errors.Is(err, fixhub_errors.ErrTicketNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Ticket not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete ticket", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetTicket endpoint
func (tc *TicketController) GetTicket(c *gin.Context) {
	ticketID := c.Param("id")

	ticket, err := tc.ticketService.GetTicket(c, ticketID)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrTicketNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Ticket not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve ticket", err)
		}
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// TrackTicket endpoint, public lookup by tracking number
func (tc *TicketController) TrackTicket(c *gin.Context) {
	number := c.Param("number")

	ticket, err := tc.ticketService.TrackTicket(c, number)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrTicketNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Ticket not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve ticket", err)
		}
		return
	}

	// Only the fields a customer needs; no technician notes.
	c.JSON(http.StatusOK, gin.H{
		"number":       ticket.Number,
		"device_brand": ticket.DeviceBrand,
		"device_model": ticket.DeviceModel,
		"status":       ticket.Status,
		"updated_at":   ticket.UpdatedAt,
	})
}

// ListTickets endpoint
func (tc *TicketController) ListTickets(c *gin.Context) {
	page, limit := helper_util.GetPaginationParams(c)
	status := c.Query("status")
	if status != "" && !model.ValidTicketStatus(status) {
		util.RespondWithError(c, http.StatusBadRequest, "Unknown ticket status", fixhub_errors.ErrInvalidStatus)
		return
	}

	tickets, err := tc.ticketService.ListTickets(c, status, page, limit)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list tickets", err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}
