// api/dao/order_dao.go
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

type OrderDAO struct {
	DB *gorm.DB
}

func NewOrderDAO(db *gorm.DB) *OrderDAO {
	return &OrderDAO{DB: db}
}

// Create writes the order and its lines in one transaction and computes the
// total from the lines.
func (dao *OrderDAO) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	order.Total = 0
	for i := range order.Items {
		if order.Items[i].ID == "" {
			order.Items[i].ID = uuid.New().String()
		}
		order.Items[i].OrderID = order.ID
		order.Total += float64(order.Items[i].Quantity) * order.Items[i].UnitPrice
	}

	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(&order).Error; err != nil {
			return err
		}
		if err := tx.Create(&order.Items).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create order", zap.Error(err), zap.String("customerID", order.CustomerID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}

	logger.Info("Order created",
		zap.String("orderID", order.ID),
		zap.Float64("total", order.Total))
	return &order, nil
}

func (dao *OrderDAO) UpdateStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	result := dao.DB.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		logger.Error("Failed to update order status", zap.Error(result.Error), zap.String("orderID", orderID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return nil, fixhub_errors.ErrOrderNotFound
	}
	logger.Info("Order status updated", zap.String("orderID", orderID), zap.String("status", status))
	return dao.GetByID(ctx, orderID)
}

func (dao *OrderDAO) Delete(ctx context.Context, orderID string) error {
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.OrderItem{}, "order_id = ?", orderID).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Order{}, "id = ?", orderID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fixhub_errors.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrOrderNotFound) {
			return err
		}
		logger.Error("Failed to delete order", zap.Error(err), zap.String("orderID", orderID))
		return fixhub_errors.ErrDatabaseOperation
	}
	logger.Info("Order deleted", zap.String("orderID", orderID))
	return nil
}

func (dao *OrderDAO) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := dao.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fixhub_errors.ErrOrderNotFound
		}
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return &order, nil
}

func (dao *OrderDAO) List(ctx context.Context, status string, limit, offset int) ([]*model.Order, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Order{}).Preload("Items")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []*model.Order
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list orders", zap.Error(err))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return orders, nil
}

func (dao *OrderDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := dao.DB.WithContext(ctx).Model(&model.Order{}).Count(&count).Error; err != nil {
		return 0, fixhub_errors.ErrDatabaseOperation
	}
	return count, nil
}

// MonthlyRevenue sums paid, shipped and completed orders created since the
// start of the current month.
func (dao *OrderDAO) MonthlyRevenue(ctx context.Context, now time.Time) (float64, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var revenue *float64
	err := dao.DB.WithContext(ctx).
		Model(&model.Order{}).
		Select("sum(total)").
		Where("status IN ?", []string{model.OrderStatusPaid, model.OrderStatusShipped, model.OrderStatusCompleted}).
		Where("created_at >= ?", monthStart).
		Scan(&revenue).Error
	if err != nil {
		return 0, fixhub_errors.ErrDatabaseOperation
	}
	if revenue == nil {
		return 0, nil
	}
	return *revenue, nil
}
