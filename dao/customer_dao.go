// api/dao/customer_dao.go
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

type CustomerDAO struct {
	DB *gorm.DB
}

func NewCustomerDAO(db *gorm.DB) *CustomerDAO {
	return &CustomerDAO{DB: db}
}

func (dao *CustomerDAO) Create(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt

	if err := dao.DB.WithContext(ctx).Create(&customer).Error; err != nil {
		logger.Error("Failed to create customer", zap.Error(err), zap.String("phone", customer.Phone))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	logger.Info("Customer created", zap.String("customerID", customer.ID))
	return &customer, nil
}

func (dao *CustomerDAO) Update(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	customer.UpdatedAt = time.Now()
	result := dao.DB.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"name":       customer.Name,
			"phone":      customer.Phone,
			"email":      customer.Email,
			"address":    customer.Address,
			"updated_at": customer.UpdatedAt,
		})
	if result.Error != nil {
		logger.Error("Failed to update customer", zap.Error(result.Error), zap.String("customerID", customer.ID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return nil, fixhub_errors.ErrCustomerNotFound
	}
	return dao.GetByID(ctx, customer.ID)
}

func (dao *CustomerDAO) Delete(ctx context.Context, customerID string) error {
	result := dao.DB.WithContext(ctx).Delete(&model.Customer{}, "id = ?", customerID)
	if result.Error != nil {
		logger.Error("Failed to delete customer", zap.Error(result.Error), zap.String("customerID", customerID))
		return fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return fixhub_errors.ErrCustomerNotFound
	}
	logger.Info("Customer deleted", zap.String("customerID", customerID))
	return nil
}

func (dao *CustomerDAO) GetByID(ctx context.Context, customerID string) (*model.Customer, error) {
	var customer model.Customer
	err := dao.DB.WithContext(ctx).First(&customer, "id = ?", customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fixhub_errors.ErrCustomerNotFound
		}
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return &customer, nil
}

func (dao *CustomerDAO) List(ctx context.Context, limit, offset int) ([]*model.Customer, error) {
	var customers []*model.Customer
	err := dao.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error
	if err != nil {
		logger.Error("Failed to list customers", zap.Error(err))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return customers, nil
}

// Search matches on name or phone, case-insensitively.
func (dao *CustomerDAO) Search(ctx context.Context, query string, limit, offset int) ([]*model.Customer, error) {
	pattern := "%" + query + "%"
	var customers []*model.Customer
	err := dao.DB.WithContext(ctx).
		Where("name ILIKE ? OR phone LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error
	if err != nil {
		logger.Error("Failed to search customers", zap.Error(err), zap.String("query", query))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return customers, nil
}

func (dao *CustomerDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := dao.DB.WithContext(ctx).Model(&model.Customer{}).Count(&count).Error; err != nil {
		return 0, fixhub_errors.ErrDatabaseOperation
	}
	return count, nil
}
