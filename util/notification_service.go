// api/util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as an SMS gateway client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyTicketStatus tells the customer their repair moved to a new status.
func (n *NotificationService) NotifyTicketStatus(ctx context.Context, ticket model.Ticket) error {
	switch ticket.Status {
	case model.TicketStatusReady:
		logger.Info("NOTIFICATION: Device ready for pickup",
			zap.String("ticketID", ticket.ID),
			zap.String("number", ticket.Number))
	case model.TicketStatusDelivered:
		logger.Info("NOTIFICATION: Device delivered",
			zap.String("ticketID", ticket.ID),
			zap.String("number", ticket.Number))
	case model.TicketStatusCancelled:
		logger.Info("NOTIFICATION: Repair cancelled",
			zap.String("ticketID", ticket.ID),
			zap.String("number", ticket.Number))
	default:
		logger.Info("NOTIFICATION: Ticket status changed",
			zap.String("ticketID", ticket.ID),
			zap.String("status", ticket.Status))
	}
	return nil
}

func (n *NotificationService) NotifyOrderChange(ctx context.Context, changeType string, order model.Order) error {
	switch changeType {
	case "created", "updated", "deleted":
		logger.Info("NOTIFICATION: Order change",
			zap.String("changeType", changeType),
			zap.String("orderID", order.ID),
			zap.String("status", order.Status))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
