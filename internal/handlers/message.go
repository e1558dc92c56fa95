package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamlink-service/internal/messaging"
	"teamlink-service/internal/models"
	"teamlink-service/internal/store"
)

// ConversationStore is the messaging surface consumed by the HTTP layer.
type ConversationStore interface {
	Send(ctx context.Context, fromID, toID, content string) (models.Message, error)
	Conversation(ctx context.Context, userA, userB string) ([]models.Message, error)
	MarkRead(ctx context.Context, ownerID, peerID string) (int64, error)
}

// MessageHandler manages direct-message endpoints.
type MessageHandler struct {
	messenger ConversationStore
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messenger ConversationStore) *MessageHandler {
	return &MessageHandler{messenger: messenger}
}

// PostMessage appends a message to the conversation with the recipient.
func (h *MessageHandler) PostMessage(c *gin.Context) {
	var req struct {
		RecipientID string `json:"recipient_id" binding:"required"`
		Content     string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	msg, err := h.messenger.Send(c.Request.Context(), userID, req.RecipientID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, messaging.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		case errors.Is(err, messaging.ErrEmptyContent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message content is empty"})
		case errors.Is(err, store.ErrBackendWrite):
			c.JSON(http.StatusBadGateway, gin.H{"error": "message was not saved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		}
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetConversation returns the full message history with another user,
// oldest first.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userID := c.GetString("userID")
	msgs, err := h.messenger.Conversation(c.Request.Context(), userID, c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversation"})
		return
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// MarkConversationRead marks all messages from the peer as read.
func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	userID := c.GetString("userID")
	updated, err := h.messenger.MarkRead(c.Request.Context(), userID, c.Param("user_id"))
	if err != nil {
		if errors.Is(err, store.ErrBackendWrite) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "read state was not saved"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark messages read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
