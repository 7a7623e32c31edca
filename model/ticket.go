package model

import "time"

const (
	TicketStatusReceived   = "received"
	TicketStatusDiagnosing = "diagnosing"
	TicketStatusRepairing  = "repairing"
	TicketStatusReady      = "ready"
	TicketStatusDelivered  = "delivered"
	TicketStatusCancelled  = "cancelled"
)

// Ticket is a repair job for a customer device.
type Ticket struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Number         string    `json:"number" gorm:"uniqueIndex"` // human-facing tracking number
	CustomerID     string    `json:"customer_id" gorm:"index"`
	DeviceBrand    string    `json:"device_brand"`
	DeviceModel    string    `json:"device_model"`
	IMEI           string    `json:"imei,omitempty"`
	Issue          string    `json:"issue"`
	Status         string    `json:"status" gorm:"index"`
	QuotedPrice    float64   `json:"quoted_price"`
	TechnicianNote string    `json:"technician_note,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// ticketTransitions encodes the allowed status flow. Cancellation is reachable
// from every non-terminal state.
var ticketTransitions = map[string][]string{
	TicketStatusReceived:   {TicketStatusDiagnosing, TicketStatusCancelled},
	TicketStatusDiagnosing: {TicketStatusRepairing, TicketStatusCancelled},
	TicketStatusRepairing:  {TicketStatusReady, TicketStatusCancelled},
	TicketStatusReady:      {TicketStatusDelivered, TicketStatusCancelled},
}

// ValidTicketStatus reports whether s is a known ticket status.
func ValidTicketStatus(s string) bool {
	switch s {
	case TicketStatusReceived, TicketStatusDiagnosing, TicketStatusRepairing,
		TicketStatusReady, TicketStatusDelivered, TicketStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTicket reports whether a ticket may move from one status to another.
func CanTransitionTicket(from, to string) bool {
	for _, next := range ticketTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
