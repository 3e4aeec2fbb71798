package api

import (
	"errors"
	"fmt"
	"net/http"

	"ironlog/workout-app/internal/domain"
	"ironlog/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler holds the chat service dependency.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// --- Request/Response Structs ---

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type ChatMessageResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// --- Handler Methods ---

func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	reply, err := h.chatService.SendMessage(c.Request.Context(), userID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAdvisorFailed):
			abortWithError(c, http.StatusBadGateway, "The advisory service is unavailable")
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to send message")
		}
		return
	}

	c.JSON(http.StatusOK, MapChatMessageToResponse(reply))
}

func (h *ChatHandler) GetConversation(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	messages, err := h.chatService.Conversation(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load conversation")
		return
	}

	out := make([]ChatMessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, MapChatMessageToResponse(&messages[i]))
	}
	c.JSON(http.StatusOK, out)
}

// MapChatMessageToResponse converts a chat message to its DTO.
func MapChatMessageToResponse(message *domain.ChatMessage) ChatMessageResponse {
	if message == nil {
		return ChatMessageResponse{}
	}
	return ChatMessageResponse{
		Role:    string(message.Role),
		Content: message.Content,
	}
}
