package handler

import (
	"net/http"
	"strconv"

	"myswamvar/backend/internal/auth"
	"myswamvar/backend/internal/hub"
	"myswamvar/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SendMessageInput defines the structure for sending a chat message.
type SendMessageInput struct {
	Content string `json:"content" binding:"required" example:"Hello"`
}

// endregion

// ChatHandler exposes conversations and messaging over REST. Successful sends
// are also pushed to the recipient's realtime sessions so delivery is the same
// whichever channel the sender used.
type ChatHandler struct {
	chat *service.ChatService
	hub  *hub.Hub
}

func NewChatHandler(chat *service.ChatService, h *hub.Hub) *ChatHandler {
	return &ChatHandler{chat: chat, hub: h}
}

// ListConversations godoc
// @Summary      List conversations
// @Description  Returns the caller's conversations with the other participant and last message, newest first.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  service.ConversationSummary
// @Router       /chat/conversations [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	userID := auth.GetUserID(c)
	summaries, err := h.chat.ListConversations(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetMessages godoc
// @Summary      Get conversation history
// @Description  Returns messages with the given user in chronological order. Use before/limit for paging.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        userId path  int true  "Other participant's user ID"
// @Param        before query int false "Return messages older than this message ID"
// @Param        limit  query int false "Page size (max 100)" default(50)
// @Success      200  {array}   service.MessageDTO
// @Failure      403  {object}  ErrorResponse "No accepted interest between the users"
// @Router       /chat/conversations/{userId}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	otherUserID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	before, _ := strconv.ParseUint(c.DefaultQuery("before", "0"), 10, 32)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	userID := auth.GetUserID(c)
	msgs, err := h.chat.GetMessages(c.Request.Context(), userID, uint(otherUserID), uint(before), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// SendMessage godoc
// @Summary      Send a message
// @Description  Sends a message to the given user. Requires an accepted interest between the two users.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId path int              true "Recipient's user ID"
// @Param        input  body SendMessageInput true "Message content"
// @Success      201  {object}  service.MessageDTO
// @Failure      400  {object}  ErrorResponse "Empty or oversized content, or self-messaging"
// @Failure      403  {object}  ErrorResponse "No accepted interest between the users"
// @Failure      429  {object}  ErrorResponse "Daily message limit reached"
// @Router       /chat/conversations/{userId}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	receiverID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	dto, err := h.chat.SendMessage(c.Request.Context(), userID, uint(receiverID), input.Content)
	if err != nil {
		writeError(c, err)
		return
	}

	// Cross-channel delivery: REST sends reach the recipient's live sessions too.
	h.hub.Push(uint(receiverID), hub.Event{Type: "message", Payload: dto})

	c.JSON(http.StatusCreated, dto)
}

// MessageLimit godoc
// @Summary      Get message quota status
// @Description  Reports the caller's standing against the daily free-tier message limit.
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.QuotaStatus
// @Router       /chat/message-limit [get]
func (h *ChatHandler) MessageLimit(c *gin.Context) {
	userID := auth.GetUserID(c)
	status, err := h.chat.MessageLimit(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
