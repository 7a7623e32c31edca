// api/controller/chat_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/service"
	"github.com/fixhub-app/fixhub/api/util"
	helper_util "github.com/fixhub-app/fixhub/api/util/helper"
)

type ChatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

// RegisterRoutes registers the API routes
func (cc *ChatController) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	{
		chat.POST("/:conversation/messages", cc.SendMessage)
		chat.GET("/:conversation/messages", cc.ListMessages)
	}
}

// SendMessage endpoint
func (cc *ChatController) SendMessage(c *gin.Context) {
	var message model.ChatMessage
	if err := c.ShouldBindJSON(&message); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid message data", fixhub_errors.ErrInvalidMessageData)
		return
	}
	message.ConversationID = c.Param("conversation")

	saved, err := cc.chatService.SendMessage(c, message)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrInvalidMessageData) {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid message data", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to send message", err)
		}
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// ListMessages endpoint
func (cc *ChatController) ListMessages(c *gin.Context) {
	page, limit := helper_util.GetPaginationParams(c)

	messages, err := cc.chatService.ListMessages(c, c.Param("conversation"), page, limit)
	if err != nil {
		if errors.Is(err, fixhub_errors.ErrConversationNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Conversation not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list messages", err)
		}
		return
	}

	c.JSON(http.StatusOK, messages)
}
