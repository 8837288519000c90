package handlers

import (
	"log"
	"net/http"

	"github.com/devsocial/backend/internal/httperr"
	"github.com/devsocial/backend/internal/models"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/unfollow", h.UnfollowUser)
}

// FollowUser creates a follow edge. Repeated follows are idempotent; a
// notification is created only when a new edge was inserted.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if currentUserID == targetID {
		return httperr.BadRequest("You cannot follow yourself")
	}

	created, err := h.followRepository.CreateFollow(currentUserID, targetID)
	if err != nil {
		log.Printf("follow: insert failed: %v", err)
		return httperr.Internal()
	}

	if created {
		actor, err := h.userRepository.GetUserByID(currentUserID)
		if err == nil {
			notif := &models.Notification{
				UserID:  targetID,
				ActorID: currentUserID,
				Type:    models.NotificationFollow,
				Message: actor.Username + " started following you",
			}
			if err := h.notificationRepository.CreateNotification(notif); err != nil {
				log.Printf("follow: notification insert failed: %v", err)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User followed", "isFollowing": true})
}

// UnfollowUser removes the follow edge; unfollowing someone not followed is
// a no-op
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(currentUserID, targetID); err != nil {
		log.Printf("unfollow: delete failed: %v", err)
		return httperr.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "User unfollowed", "isFollowing": false})
}
