// api/controller/secondhand_controller.go
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

type SecondHandController struct {
	secondHandService service.ISecondHandService
}

func NewSecondHandController(secondHandService service.ISecondHandService) *SecondHandController {
	return &SecondHandController{
		secondHandService: secondHandService,
	}
}

// RegisterRoutes registers the staff-facing API routes
func (sc *SecondHandController) RegisterRoutes(r *gin.RouterGroup) {
	secondhand := r.Group("/secondhand")
	{
		secondhand.POST("", sc.CreateSecondHand)
		secondhand.PUT("/:id", sc.UpdateSecondHand)
		secondhand.POST("/:id/sold", sc.MarkSold)
		secondhand.DELETE("/:id", sc.DeleteSecondHand)
	}
}

// RegisterPublicRoutes registers the storefront listing routes
func (sc *SecondHandController) RegisterPublicRoutes(r *gin.RouterGroup) {
	secondhand := r.Group("/secondhand")
	{
		secondhand.GET("/:id", sc.GetSecondHand)
		secondhand.GET("", sc.ListSecondHand)
	}
}

// CreateSecondHand endpoint
func (sc *SecondHandController) CreateSecondHand(c *gin.Context) {
	var product model.SecondHandProduct
	if err := c.ShouldBindJSON(&product); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid product data", fixhub_errors.ErrInvalidProductData)
		return
	}

	created, err := sc.secondHandService.CreateSecondHand(c, product)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrInvalidProductData) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid product data", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create listing", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateSecondHand endpoint
func (sc *SecondHandController) UpdateSecondHand(c *gin.Context) {
	productID := c.Param("id")
	var product model.SecondHandProduct
	if err := c.ShouldBindJSON(&product); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid product data", err)
		return
	}
	product.ID = productID

	updated, err := sc.secondHandService.UpdateSecondHand(c, product)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrProductNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Listing not found", err)
		case errors.Is(err, fixhub_errors.ErrInvalidProductData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid product data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update listing", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// MarkSold endpoint
func (sc *SecondHandController) MarkSold(c *gin.Context) {
	productID := c.Param("id")

	sold, err := sc.secondHandService.MarkSold(c, productID)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrProductNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Listing not found", err)
		case errors.Is(err, fixhub_errors.ErrProductSold):
			util.RespondWithError(c, http.StatusConflict, "Listing already sold", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to mark listing sold", err)
		}
		return
	}

	c.JSON(http.StatusOK, sold)
}

// DeleteSecondHand endpoint
func (sc *SecondHandController) DeleteSecondHand(c *gin.Context) {
	productID := c.Param("id")

	if err := sc.secondHandService.DeleteSecondHand(c, productID); err != nil {
		if errors.Is(err, fixhub_errors.ErrProductNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Listing not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete listing", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSecondHand endpoint
func (sc *SecondHandController) GetSecondHand(c *gin.Context) {
	productID := c.Param("id")

	product, err := sc.secondHandService.GetSecondHand(c, productID)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrProductNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Listing not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve listing", err)
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListSecondHand endpoint
func (sc *SecondHandController) ListSecondHand(c *gin.Context) {
	page, limit := helper_util.GetPaginationParams(c)
	includeSold := c.Query("sold") == "true"

	products, err := sc.secondHandService.ListSecondHand(c, includeSold, page, limit)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list second-hand products", err)
		return
	}

	c.JSON(http.StatusOK, products)
}
