// api/service/order_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/fixhub-app/fixhub/api/cache"
	"github.com/fixhub-app/fixhub/api/dao"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/realtime"
	"github.com/fixhub-app/fixhub/api/util"
)

const orderResource = "orders"

// IOrderService defines the interface for order operations
type IOrderService interface {
	CreateOrder(ctx context.Context, order model.Order) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	ListOrders(ctx context.Context, status string, page, limit int) ([]*model.Order, error)
}

type OrderService struct {
	orderDAO        *dao.OrderDAO
	validationUtil  *util.ValidationUtil
	fetchCache      *cache.FetchCache
	notificationSvc *util.NotificationService
	feed            *realtime.BusFeed
}

var _ IOrderService = &OrderService{}

func NewOrderService(
	orderDAO *dao.OrderDAO,
	validationUtil *util.ValidationUtil,
	fetchCache *cache.FetchCache,
	notificationSvc *util.NotificationService,
	feed *realtime.BusFeed,
) *OrderService {
	return &OrderService{
		orderDAO:        orderDAO,
		validationUtil:  validationUtil,
		fetchCache:      fetchCache,
		notificationSvc: notificationSvc,
		feed:            feed,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, order model.Order) (*model.Order, error) {
	if err := s.validationUtil.ValidateOrder(order); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidOrderData, err)
	}

	created, err := s.orderDAO.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.notificationSvc.NotifyOrderChange(ctx, "created", *created); err != nil {
		logger.Warn("Failed to send order notification",
			zap.Error(err),
			zap.String("orderID", created.ID))
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: orderResource,
		Event: realtime.EventInsert,
		ID:    created.ID,
	})
	return created, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, fixhub_errors.ErrInvalidOrderData
	}

	updated, err := s.orderDAO.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	if err := s.notificationSvc.NotifyOrderChange(ctx, status, *updated); err != nil {
		logger.Warn("Failed to send order notification",
			zap.Error(err),
			zap.String("orderID", orderID))
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: orderResource,
		Event: realtime.EventUpdate,
		ID:    updated.ID,
	})
	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orderDAO.Delete(ctx, orderID); err != nil {
		return err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: orderResource,
		Event: realtime.EventDelete,
		ID:    orderID,
	})
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	payload, err := s.fetchCache.Fetch(ctx, cache.DetailKey(orderResource, orderID), func(ctx context.Context) ([]byte, error) {
		order, err := s.orderDAO.GetByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(order)
	})
	if err != nil {
		return nil, err
	}

	var order model.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status string, page, limit int) ([]*model.Order, error) {
	key := cache.ListKey(orderResource, page, limit)
	if status != "" {
		key += "&status=" + status
	}

	payload, err := s.fetchCache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		orders, err := s.orderDAO.List(ctx, status, limit, (page-1)*limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(orders)
	})
	if err != nil {
		return nil, err
	}

	var orders []*model.Order
	if err := json.Unmarshal(payload, &orders); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return orders, nil
}
