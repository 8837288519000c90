package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/devsocial/backend/internal/httperr"
	"github.com/devsocial/backend/internal/models"
	"github.com/devsocial/backend/internal/realtime"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// MessageHandler handles direct-message HTTP requests
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	userRepository    repositories.UserRepository
	hub               *realtime.Hub
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository, hub *realtime.Hub) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		userRepository:    userRepo,
		hub:               hub,
	}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages", h.GetPartners)
	g.GET("/messages/:userId", h.GetConversation)
}

// SendMessage persists a direct message, then pushes it onto the receiver's
// realtime room. The push is best-effort: an offline receiver still gets the
// message on the next conversation fetch.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.userRepository.GetUserByID(req.ReceiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("Receiver not found")
		}
		log.Printf("messages: receiver lookup failed: %v", err)
		return httperr.Internal()
	}

	message := &models.Message{
		SenderID:   currentUserID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := h.messageRepository.CreateMessage(message); err != nil {
		log.Printf("messages: create failed: %v", err)
		return httperr.Internal()
	}

	h.hub.Publish(message.ReceiverID, "receive_message", message)

	return c.JSON(http.StatusOK, message)
}

// GetConversation returns the message history with another user, oldest
// first
func (h *MessageHandler) GetConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	otherID, err := parseIDParam(c, "userId")
	if err != nil {
		return err
	}

	messages, err := h.messageRepository.GetConversation(currentUserID, otherID)
	if err != nil {
		log.Printf("messages: conversation query failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, messages)
}

// GetPartners lists the users the caller has exchanged messages with
func (h *MessageHandler) GetPartners(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	partners, err := h.messageRepository.GetPartners(currentUserID)
	if err != nil {
		log.Printf("messages: partners query failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, partners)
}
