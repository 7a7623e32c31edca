// api/controller/product_controller.go
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

type ProductController struct {
	productService service.IProductService
}

func NewProductController(productService service.IProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

// RegisterRoutes registers the staff-facing API routes
func (pc *ProductController) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.POST("", pc.CreateProduct)
		products.PUT("/:id", pc.UpdateProduct)
		products.DELETE("/:id", pc.DeleteProduct)
	}
}

// RegisterPublicRoutes registers the storefront catalog routes
func (pc *ProductController) RegisterPublicRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.GET("/:id", pc.GetProduct)
		products.GET("", pc.ListProducts)
	}
}

// CreateProduct endpoint
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid product data", fixhub_errors.ErrInvalidProductData)
		return
	}

	createdProduct, err := pc.productService.CreateProduct(c, product)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrInvalidProductData) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid product data", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create product", err)
		}
		return
	}

	c.JSON(http.StatusCreated, createdProduct)
}

// UpdateProduct endpoint
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")
	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid product data", err)
		return
	}
	product.ID = productID

	updatedProduct, err := pc.productService.UpdateProduct(c, product)
	if err != nil {
		switch {
		case errors.Is(err, fixhub_errors.ErrProductNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Product not found", err)
		case errors.Is(err, fixhub_errors.ErrInvalidProductData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid product data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update product", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedProduct)
}

// DeleteProduct endpoint
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	if err := pc.productService.DeleteProduct(c, productID); err != nil {
		if errors.Is(err, fixhub_errors.ErrProductNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Product not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProduct endpoint
func (pc *ProductController) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := pc.productService.GetProduct(c, productID)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrProductNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Product not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve product", err)
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// ListProducts endpoint
func (pc *ProductController) ListProducts(c *gin.Context) {
	page, limit := helper_util.GetPaginationParams(c)
	category := c.Query("category")
	activeOnly := c.Query("all") != "true"

	products, err := pc.productService.ListProducts(c, category, activeOnly, page, limit)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list products", err)
		return
	}

	c.JSON(http.StatusOK, products)
}
