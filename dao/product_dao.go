// api/dao/product_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

type ProductDAO struct {
	DB *gorm.DB
}

func NewProductDAO(db *gorm.DB) *ProductDAO {
	return &ProductDAO{DB: db}
}

func (dao *ProductDAO) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if err := dao.DB.WithContext(ctx).Create(&product).Error; err != nil {
		logger.Error("Failed to create product", zap.Error(err), zap.String("name", product.Name))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	logger.Info("Product created", zap.String("productID", product.ID))
	return &product, nil
}

func (dao *ProductDAO) Update(ctx context.Context, product model.Product) (*model.Product, error) {
	product.UpdatedAt = time.Now()
	result := dao.DB.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
			"category":    product.Category,
			"image_url":   product.ImageURL,
			"active":      product.Active,
			"updated_at":  product.UpdatedAt,
		})
	if result.Error != nil {
		logger.Error("Failed to update product", zap.Error(result.Error), zap.String("productID", product.ID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return nil, fixhub_errors.ErrProductNotFound
	}
	return dao.GetByID(ctx, product.ID)
}

func (dao *ProductDAO) Delete(ctx context.Context, productID string) error {
	result := dao.DB.WithContext(ctx).Delete(&model.Product{}, "id = ?", productID)
	if result.Error != nil {
		logger.Error("Failed to delete product", zap.Error(result.Error), zap.String("productID", productID))
		return fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return fixhub_errors.ErrProductNotFound
	}
	logger.Info("Product deleted", zap.String("productID", productID))
	return nil
}

func (dao *ProductDAO) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := dao.DB.WithContext(ctx).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fixhub_errors.ErrProductNotFound
		}
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return &product, nil
}

// List returns products, optionally filtered by category. The shop front only
// shows active products; the admin list passes activeOnly=false.
func (dao *ProductDAO) List(ctx context.Context, category string, activeOnly bool, limit, offset int) ([]*model.Product, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var products []*model.Product
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		logger.Error("Failed to list products", zap.Error(err))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return products, nil
}
