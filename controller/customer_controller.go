// api/controller/customer_controller.go
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

type CustomerController struct {
	customerService service.ICustomerService
}

func NewCustomerController(customerService service.ICustomerService) *CustomerController {
	return &CustomerController{
		customerService: customerService,
	}
}

// RegisterRoutes registers the API routes
func (cc *CustomerController) RegisterRoutes(r *gin.RouterGroup) {
	customers := r.Group("/customers")
	{
		customers.POST("", cc.CreateCustomer)
		customers.PUT("/:id", cc.UpdateCustomer)
		customers.DELETE("/:id", cc.DeleteCustomer)
		customers.GET("/:id", cc.GetCustomer)
		customers.GET("", cc.ListCustomers)
		customers.GET("/search", cc.SearchCustomers)
	}
}

// CreateCustomer endpoint
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid customer data", fixhub_errors.ErrInvalidCustomerData)
		return
	}

	createdCustomer, err := cc.customerService.CreateCustomer(c, customer)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrInvalidCustomerData) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid customer data", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdCustomer)
}

// UpdateCustomer endpoint
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	customerID := c.Param("id")
	var customer model.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid customer data", err)
		return
	}
	customer.ID = customerID

	updatedCustomer, err := cc.customerService.UpdateCustomer(c, customer)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrCustomerNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Customer not found", err)
		case errors.Is(err, fixhub_errors.ErrInvalidCustomerData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid customer data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedCustomer)
}

// DeleteCustomer endpoint
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	customerID := c.Param("id")

	if err := cc.customerService.DeleteCustomer(c, customerID); err != nil {
		if errors.Is(err, fixhub_errors.ErrCustomerNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Customer not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCustomer endpoint
func (cc *CustomerController) GetCustomer(c *gin.Context) {
	customerID := c.Param("id")

	customer, err := cc.customerService.GetCustomer(c, customerID)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrCustomerNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Customer not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customer", err)
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ListCustomers endpoint
func (cc *CustomerController) ListCustomers(c *gin.Context) {
	page, limit := helper_util.GetPaginationParams(c)

	customers, err := cc.customerService.ListCustomers(c, page, limit)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list customers", err)
		return
	}

	c.JSON(http.StatusOK, customers)
}

// SearchCustomers endpoint
func (cc *CustomerController) SearchCustomers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		util.RespondWithError(c, http.StatusBadRequest, "Missing search query", fixhub_errors.ErrInvalidCustomerData)
		return
	}
	page, limit := helper_util.GetPaginationParams(c)

	customers, err := cc.customerService.SearchCustomers(c, query, page, limit)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to search customers", err)
		return
	}

	c.JSON(http.StatusOK, customers)
}
