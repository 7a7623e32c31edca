// api/dao/secondhand_dao.go
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

type SecondHandDAO struct {
	DB *gorm.DB
}

func NewSecondHandDAO(db *gorm.DB) *SecondHandDAO {
	return &SecondHandDAO{DB: db}
}

func (dao *SecondHandDAO) Create(ctx context.Context, product model.SecondHandProduct) (*model.SecondHandProduct, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	product.Sold = false
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if err := dao.DB.WithContext(ctx).Create(&product).Error; err != nil {
		logger.Error("Failed to create listing", zap.Error(err), zap.String("title", product.Title))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	logger.Info("Listing created", zap.String("listingID", product.ID))
	return &product, nil
}

func (dao *SecondHandDAO) Update(ctx context.Context, product model.SecondHandProduct) (*model.SecondHandProduct, error) {
	product.UpdatedAt = time.Now()
	result := dao.DB.WithContext(ctx).
		Model(&model.SecondHandProduct{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"title":       product.Title,
			"description": product.Description,
			"price":       product.Price,
			"condition":   product.Condition,
			"image_urls":  product.ImageURLs,
			"updated_at":  product.UpdatedAt,
		})
	if result.Error != nil {
		logger.Error("Failed to update listing", zap.Error(result.Error), zap.String("listingID", product.ID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return nil, fixhub_errors.ErrProductNotFound
	}
	return dao.GetByID(ctx, product.ID)
}

// MarkSold flips the sold flag exactly once; selling an already-sold listing
// is an error surfaced to the caller.
func (dao *SecondHandDAO) MarkSold(ctx context.Context, productID string) (*model.SecondHandProduct, error) {
	result := dao.DB.WithContext(ctx).
		Model(&model.SecondHandProduct{}).
		Where("id = ? AND sold = ?", productID, false).
		Updates(map[string]interface{}{"sold": true, "updated_at": time.Now()})
	if result.Error != nil {
		logger.Error("Failed to mark listing sold", zap.Error(result.Error), zap.String("listingID", productID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		if _, err := dao.GetByID(ctx, productID); err != nil {
			return nil, err
		}
		return nil, fixhub_errors.ErrProductSold
	}
	logger.Info("Listing sold", zap.String("listingID", productID))
	return dao.GetByID(ctx, productID)
}

func (dao *SecondHandDAO) Delete(ctx context.Context, productID string) error {
	result := dao.DB.WithContext(ctx).Delete(&model.SecondHandProduct{}, "id = ?", productID)
	if result.Error != nil {
		logger.Error("Failed to delete listing", zap.Error(result.Error), zap.String("listingID", productID))
		return fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return fixhub_errors.ErrProductNotFound
	}
	logger.Info("Listing deleted", zap.String("listingID", productID))
	return nil
}

func (dao *SecondHandDAO) GetByID(ctx context.Context, productID string) (*model.SecondHandProduct, error) {
	var product model.SecondHandProduct
	err := dao.DB.WithContext(ctx).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fixhub_errors.ErrProductNotFound
		}
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return &product, nil
}

func (dao *SecondHandDAO) List(ctx context.Context, includeSold bool, limit, offset int) ([]*model.SecondHandProduct, error) {
	query := dao.DB.WithContext(ctx).Model(&model.SecondHandProduct{})
	if !includeSold {
		query = query.Where("sold = ?", false)
	}

	var products []*model.SecondHandProduct
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		logger.Error("Failed to list listings", zap.Error(err))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return products, nil
}

func (dao *SecondHandDAO) CountUnsold(ctx context.Context) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).
		Model(&model.SecondHandProduct{}).
		Where("sold = ?", false).
		Count(&count).Error
	if err != nil {
		return 0, fixhub_errors.ErrDatabaseOperation
	}
	return count, nil
}
