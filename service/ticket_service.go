// api/service/ticket_service.go
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

const ticketResource = "tickets"

// ITicketService defines the interface for repair ticket operations
type ITicketService interface {
	CreateTicket(ctx context.Context, ticket model.Ticket) (*model.Ticket, error)
	UpdateTicket(ctx context.Context, ticket model.Ticket) (*model.Ticket, error)
	UpdateTicketStatus(ctx context.Context, ticketID, status string) (*model.Ticket, error)
	DeleteTicket(ctx context.Context, ticketID string) error
	GetTicket(ctx context.Context, ticketID string) (*model.Ticket, error)
	TrackTicket(ctx context.Context, number string) (*model.Ticket, error)
	ListTickets(ctx context.Context, status string, page, limit int) ([]*model.Ticket, error)
}

// TicketService handles business logic for repair tickets
type TicketService struct {
	ticketDAO       *dao.TicketDAO
	validationUtil  *util.ValidationUtil
	fetchCache      *cache.FetchCache
	notificationSvc *util.NotificationService
	feed            *realtime.BusFeed
}

var _ ITicketService = &TicketService{}

func NewTicketService(
	ticketDAO *dao.TicketDAO,
	validationUtil *util.ValidationUtil,
	fetchCache *cache.FetchCache,
	notificationSvc *util.NotificationService,
	feed *realtime.BusFeed,
) *TicketService {
	return &TicketService{
		ticketDAO:       ticketDAO,
		validationUtil:  validationUtil,
		fetchCache:      fetchCache,
		notificationSvc: notificationSvc,
		feed:            feed,
	}
}

func (s *TicketService) CreateTicket(ctx context.Context, ticket model.Ticket) (*model.Ticket, error) {
	if err := s.validationUtil.ValidateTicket(ticket); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidTicketData, err)
	}

	created, err := s.ticketDAO.Create(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: ticketResource,
		Event: realtime.EventInsert,
		ID:    created.ID,
	})
	return created, nil
}

func (s *TicketService) UpdateTicket(ctx context.Context, ticket model.Ticket) (*model.Ticket, error) {
	if err := s.validationUtil.ValidateTicket(ticket); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidTicketData, err)
	}

	updated, err := s.ticketDAO.Update(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: ticketResource,
		Event: realtime.EventUpdate,
		ID:    updated.ID,
	})
	return updated, nil
}

func (s *TicketService) UpdateTicketStatus(ctx context.Context, ticketID, status string) (*model.Ticket, error) {
	if !model.ValidTicketStatus(status) {
		return nil, fixhub_errors.ErrInvalidStatus
	}

	updated, err := s.ticketDAO.UpdateStatus(ctx, ticketID, status)
	if err != nil {
		return nil, err
	}

	if err := s.notificationSvc.NotifyTicketStatus(ctx, *updated); err != nil {
		logger.Warn("Failed to send ticket status notification",
			zap.Error(err),
			zap.String("ticketID", ticketID))
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: ticketResource,
		Event: realtime.EventUpdate,
		ID:    updated.ID,
	})
	return updated, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, ticketID string) error {
	if err := s.ticketDAO.Delete(ctx, ticketID); err != nil {
		return err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: ticketResource,
		Event: realtime.EventDelete,
		ID:    ticketID,
	})
	return nil
}

func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*model.Ticket, error) {
	payload, err := s.fetchCache.Fetch(ctx, cache.DetailKey(ticketResource, ticketID), func(ctx context.Context) ([]byte, error) {
		ticket, err := s.ticketDAO.GetByID(ctx, ticketID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ticket)
	})
	if err != nil {
		return nil, err
	}

	var ticket model.Ticket
	if err := json.Unmarshal(payload, &ticket); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return &ticket, nil
}

// TrackTicket is the public lookup by tracking number. It bypasses the cache:
// a customer refreshing the tracking page expects the live status.
func (s *TicketService) TrackTicket(ctx context.Context, number string) (*model.Ticket, error) {
	return s.ticketDAO.GetByNumber(ctx, number)
}

func (s *TicketService) ListTickets(ctx context.Context, status string, page, limit int) ([]*model.Ticket, error) {
	key := cache.ListKey(ticketResource, page, limit)
	if status != "" {
		key += "&status=" + status
	}

	payload, err := s.fetchCache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		tickets, err := s.ticketDAO.List(ctx, status, limit, (page-1)*limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(tickets)
	})
	if err != nil {
		return nil, err
	}

	var tickets []*model.Ticket
	if err := json.Unmarshal(payload, &tickets); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return tickets, nil
}
