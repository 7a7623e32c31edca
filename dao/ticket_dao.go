// api/dao/ticket_dao.go
package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

type TicketDAO struct {
	DB *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{DB: db}
}

// newTicketNumber builds the human-facing tracking number customers type into
// the repair tracking page.
func newTicketNumber() string {
	return fmt.Sprintf("FX-%s", strings.ToUpper(uuid.New().String()[:8]))
}

func (dao *TicketDAO) Create(ctx context.Context, ticket model.Ticket) (*model.Ticket, error) {
	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	if ticket.Number == "" {
		ticket.Number = newTicketNumber()
	}
	if ticket.Status == "" {
		ticket.Status = model.TicketStatusReceived
	}
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt

	if err := dao.DB.WithContext(ctx).Create(&ticket).Error; err != nil {
		logger.Error("Failed to create ticket", zap.Error(err), zap.String("customerID", ticket.CustomerID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}

	logger.Info("Ticket created",
		zap.String("ticketID", ticket.ID),
		zap.String("number", ticket.Number))
	return &ticket, nil
}

func (dao *TicketDAO) Update(ctx context.Context, ticket model.Ticket) (*model.Ticket, error) {
	ticket.UpdatedAt = time.Now()
	result := dao.DB.WithContext(ctx).
		Model(&model.Ticket{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"customer_id":     ticket.CustomerID,
			"device_brand":    ticket.DeviceBrand,
			"device_model":    ticket.DeviceModel,
			"imei":            ticket.IMEI,
			"issue":           ticket.Issue,
			"quoted_price":    ticket.QuotedPrice,
			"technician_note": ticket.TechnicianNote,
			"updated_at":      ticket.UpdatedAt,
		})
	if result.Error != nil {
		logger.Error("Failed to update ticket", zap.Error(result.Error), zap.String("ticketID", ticket.ID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return nil, fixhub_errors.ErrTicketNotFound
	}
	return dao.GetByID(ctx, ticket.ID)
}

// UpdateStatus moves a ticket through the repair flow, enforcing the allowed
// transitions.
func (dao *TicketDAO) UpdateStatus(ctx context.Context, ticketID, status string) (*model.Ticket, error) {
	ticket, err := dao.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransitionTicket(ticket.Status, status) {
		return nil, fixhub_errors.ErrStatusTransition
	}

	result := dao.DB.WithContext(ctx).
		Model(&model.Ticket{}).
		Where("id = ? AND status = ?", ticketID, ticket.Status).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if result.Error != nil {
		logger.Error("Failed to update ticket status", zap.Error(result.Error), zap.String("ticketID", ticketID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		// Lost the race against a concurrent transition.
		return nil, fixhub_errors.ErrStatusTransition
	}

	logger.Info("Ticket status updated",
		zap.String("ticketID", ticketID),
		zap.String("from", ticket.Status),
		zap.String("to", status))
	ticket.Status = status
	return ticket, nil
}

func (dao *TicketDAO) Delete(ctx context.Context, ticketID string) error {
	result := dao.DB.WithContext(ctx).Delete(&model.Ticket{}, "id = ?", ticketID)
	if result.Error != nil {
		logger.Error("Failed to delete ticket", zap.Error(result.Error), zap.String("ticketID", ticketID))
		return fixhub_errors.ErrDatabaseOperation
	}
	if result.RowsAffected == 0 {
		return fixhub_errors.ErrTicketNotFound
	}
	logger.Info("Ticket deleted", zap.String("ticketID", ticketID))
	return nil
}

func (dao *TicketDAO) GetByID(ctx context.Context, ticketID string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := dao.DB.WithContext(ctx).First(&ticket, "id = ?", ticketID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fixhub_errors.ErrTicketNotFound
		}
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return &ticket, nil
}

// GetByNumber serves the public repair-tracking lookup.
func (dao *TicketDAO) GetByNumber(ctx context.Context, number string) (*model.Ticket, error) {
	var ticket model.Ticket
	err := dao.DB.WithContext(ctx).First(&ticket, "number = ?", number).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fixhub_errors.ErrTicketNotFound
		}
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return &ticket, nil
}

func (dao *TicketDAO) List(ctx context.Context, status string, limit, offset int) ([]*model.Ticket, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Ticket{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var tickets []*model.Ticket
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tickets).Error
	if err != nil {
		logger.Error("Failed to list tickets", zap.Error(err))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return tickets, nil
}

// CountByStatus feeds the dashboard metrics aggregate.
func (dao *TicketDAO) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := dao.DB.WithContext(ctx).
		Model(&model.Ticket{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fixhub_errors.ErrDatabaseOperation
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
