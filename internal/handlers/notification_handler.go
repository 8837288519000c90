package handlers

import (
	"log"
	"net/http"

	"github.com/devsocial/backend/internal/httperr"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	feedLimit              int
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, feedLimit int) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		feedLimit:              feedLimit,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/users/notifications", h.GetNotifications)
	g.PUT("/users/notifications/read", h.MarkAllAsRead)
}

// GetNotifications returns the caller's most recent notifications, newest
// first, each carrying its read flag and the actor's public fields
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	notifications, err := h.notificationRepository.GetRecent(currentUserID, h.feedLimit)
	if err != nil {
		log.Printf("notifications: list failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkAllAsRead marks all of the caller's notifications read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	if err := h.notificationRepository.MarkAllAsRead(currentUserID); err != nil {
		log.Printf("notifications: mark read failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notifications marked as read"})
}
