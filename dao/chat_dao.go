// api/dao/chat_dao.go
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/model"
)

type ChatDAO struct {
	DB *gorm.DB
}

func NewChatDAO(db *gorm.DB) *ChatDAO {
	return &ChatDAO{DB: db}
}

func (dao *ChatDAO) Append(ctx context.Context, message model.ChatMessage) (*model.ChatMessage, error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	if err := dao.DB.WithContext(ctx).Create(&message).Error; err != nil {
		logger.Error("Failed to append chat message",
			zap.Error(err),
			zap.String("conversationID", message.ConversationID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return &message, nil
}

// ListByConversation returns messages oldest-first, the order a chat widget
// renders them.
func (dao *ChatDAO) ListByConversation(ctx context.Context, conversationID string, limit, offset int) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	err := dao.DB.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		logger.Error("Failed to list chat messages",
			zap.Error(err),
			zap.String("conversationID", conversationID))
		return nil, fixhub_errors.ErrDatabaseOperation
	}
	return messages, nil
}
