package model

import "time"

const (
	ChatSenderCustomer = "customer"
	ChatSenderStaff    = "staff"
)

type ChatMessage struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"index"`
	Sender         string    `json:"sender"` // "customer" or "staff"
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
