// api/service/chat_service.go
package service

import (
	"context"
	"fmt"

	"github.com/fixhub-app/fixhub/api/dao"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/realtime"
	"github.com/fixhub-app/fixhub/api/util"
)

// IChatService defines the interface for support chat operations
type IChatService interface {
	SendMessage(ctx context.Context, message model.ChatMessage) (*model.ChatMessage, error)
	ListMessages(ctx context.Context, conversationID string, page, limit int) ([]*model.ChatMessage, error)
}

// ChatService handles business logic for support conversations.
// Messages never pass through the fetch cache; a chat pane polling a
// stale transcript defeats the point of the feature.
type ChatService struct {
	chatDAO        *dao.ChatDAO
	validationUtil *util.ValidationUtil
	feed           *realtime.BusFeed
}

var _ IChatService = &ChatService{}

func NewChatService(chatDAO *dao.ChatDAO, validationUtil *util.ValidationUtil, feed *realtime.BusFeed) *ChatService {
	return &ChatService{
		chatDAO:        chatDAO,
		validationUtil: validationUtil,
		feed:           feed,
	}
}

func (s *ChatService) SendMessage(ctx context.Context, message model.ChatMessage) (*model.ChatMessage, error) {
	if err := s.validationUtil.ValidateChatMessage(message); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidMessageData, err)
	}

	saved, err := s.chatDAO.Append(ctx, message)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: "chat_messages",
		Event: realtime.EventInsert,
		ID:    saved.ID,
	})
	return saved, nil
}

func (s *ChatService) ListMessages(ctx context.Context, conversationID string, page, limit int) ([]*model.ChatMessage, error) {
	if conversationID == "" {
		return nil, fixhub_errors.ErrConversationNotFound
	}
	return s.chatDAO.ListByConversation(ctx, conversationID, limit, (page-1)*limit)
}
