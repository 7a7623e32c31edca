// api/controller/order_controller.go
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

type OrderController struct {
	orderService service.IOrderService
}

func NewOrderController(orderService service.IOrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

// RegisterRoutes registers the API routes
func (oc *OrderController) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.POST("", oc.CreateOrder)
		orders.PUT("/:id/status", oc.UpdateOrderStatus)
		orders.DELETE("/:id", oc.DeleteOrder)
		orders.GET("/:id", oc.GetOrder)
		orders.GET("", oc.ListOrders)
	}
}

// CreateOrder endpoint
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var order model.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid order data", fixhub_errors.ErrInvalidOrderData)
		return
	}

	createdOrder, err := oc.orderService.CreateOrder(c, order)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrInvalidOrderData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid order data", err)
		case errors.Is(err, fixhub_errors.ErrEmptyOrder):
			util.RespondWithError(c, http.StatusBadRequest, "Order must contain at least one item", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create order", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdOrder)
}

// UpdateOrderStatus endpoint
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid status payload", err)
		return
	}

	updatedOrder, err := oc.orderService.UpdateOrderStatus(c, orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrOrderNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Order not found", err)
		case errors.Is(err, fixhub_errors.ErrInvalidOrderData):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown order status", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update order status", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedOrder)
}

// DeleteOrder endpoint
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID := c.Param("id")

	if err := oc.orderService.DeleteOrder(c, orderID); err != nil {
		if errors.Is(err, fixhub_errors.ErrOrderNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Order not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetOrder endpoint
func (oc *OrderController) GetOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := oc.orderService.GetOrder(c, orderID)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrOrderNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Order not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve order", err)
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders endpoint
func (oc *OrderController) ListOrders(c *gin.Context) {
	page, limit := helper_util.GetPaginationParams(c)
	status := c.Query("status")
	if status != "" && !model.ValidOrderStatus(status) {
		util.RespondWithError(c, http.StatusBadRequest, "Unknown order status", fixhub_errors.ErrInvalidOrderData)
		return
	}

	orders, err := oc.orderService.ListOrders(c, status, page, limit)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list orders", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}
