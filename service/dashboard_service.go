// api/service/dashboard_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fixhub-app/fixhub/api/cache"
	"github.com/fixhub-app/fixhub/api/dao"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
)

// IDashboardService defines the interface for dashboard aggregates
type IDashboardService interface {
	GetMetrics(ctx context.Context) (*model.DashboardMetrics, error)
}

// DashboardService aggregates counts across the other domains. The result
// is the most expensive read in the system, so it always goes through the
// fetch cache and is invalidated by every change bridge.
type DashboardService struct {
	ticketDAO     *dao.TicketDAO
	customerDAO   *dao.CustomerDAO
	orderDAO      *dao.OrderDAO
	secondHandDAO *dao.SecondHandDAO
	fetchCache    *cache.FetchCache
	now           func() time.Time
}

var _ IDashboardService = &DashboardService{}

func NewDashboardService(
	ticketDAO *dao.TicketDAO,
	customerDAO *dao.CustomerDAO,
	orderDAO *dao.OrderDAO,
	secondHandDAO *dao.SecondHandDAO,
	fetchCache *cache.FetchCache,
) *DashboardService {
	return &DashboardService{
		ticketDAO:     ticketDAO,
		customerDAO:   customerDAO,
		orderDAO:      orderDAO,
		secondHandDAO: secondHandDAO,
		fetchCache:    fetchCache,
		now:           time.Now,
	}
}

func (s *DashboardService) GetMetrics(ctx context.Context) (*model.DashboardMetrics, error) {
	payload, err := s.fetchCache.Fetch(ctx, cache.MetricsKey(), func(ctx context.Context) ([]byte, error) {
		metrics, err := s.collect(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(metrics)
	})
	if err != nil {
		return nil, err
	}

	var metrics model.DashboardMetrics
	if err := json.Unmarshal(payload, &metrics); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return &metrics, nil
}

func (s *DashboardService) collect(ctx context.Context) (*model.DashboardMetrics, error) {
	byStatus, err := s.ticketDAO.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var open int64
	for status, count := range byStatus {
		if status != model.TicketStatusDelivered && status != model.TicketStatusCancelled {
			open += count
		}
	}

	customers, err := s.customerDAO.Count(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderDAO.Count(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.orderDAO.MonthlyRevenue(ctx, s.now())
	if err != nil {
		return nil, err
	}

	unsold, err := s.secondHandDAO.CountUnsold(ctx)
	if err != nil {
		return nil, err
	}

	return &model.DashboardMetrics{
		TicketsByStatus:  byStatus,
		OpenTickets:      open,
		TotalCustomers:   customers,
		TotalOrders:      orders,
		MonthlyRevenue:   revenue,
		UnsoldSecondHand: unsold,
	}, nil
}
