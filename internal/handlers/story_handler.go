package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/devsocial/backend/internal/httperr"
	"github.com/devsocial/backend/internal/models"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/devsocial/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository repositories.StoryRepository
	store           *storage.LocalStore
	ttl             time.Duration
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, store *storage.LocalStore, ttl time.Duration) *StoryHandler {
	return &StoryHandler{
		storyRepository: storyRepo,
		store:           store,
		ttl:             ttl,
	}
}

// RegisterStoryRoutes registers story-related routes. Stories live under the
// posts prefix.
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.POST("/posts/stories", h.CreateStory)
	g.GET("/posts/stories", h.GetActiveStories)
	g.POST("/posts/stories/:id/view", h.ViewStory)
	g.POST("/posts/stories/:id/react", h.ReactToStory)
	g.GET("/posts/stories/:id/viewers", h.GetStoryViewers)
	g.DELETE("/posts/stories/:id", h.DeleteStory)
}

// CreateStory creates a story from a multipart form: an image file, a text
// body, or both. Expiry is fixed at creation time.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	content := c.FormValue("content")
	theme := c.FormValue("theme")

	mediaType := ""
	mediaURL := ""
	if file, err := c.FormFile("media"); err == nil {
		name, err := h.store.Save(file)
		if err != nil {
			return httperr.BadRequest(err.Error())
		}
		mediaURL = name
		mediaType = models.MediaImage
	} else {
		if strings.TrimSpace(content) == "" {
			return httperr.BadRequest("A story needs media or content")
		}
		mediaType = models.MediaText
	}

	story := &models.Story{
		UserID:    currentUserID,
		MediaType: mediaType,
		MediaURL:  mediaURL,
		Content:   content,
		Theme:     theme,
		ExpiresAt: time.Now().Add(h.ttl),
	}
	if err := h.storyRepository.CreateStory(story); err != nil {
		log.Printf("stories: create failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, story)
}

// GetActiveStories returns all non-expired stories, oldest first
func (h *StoryHandler) GetActiveStories(c echo.Context) error {
	stories, err := h.storyRepository.GetActiveStories(time.Now())
	if err != nil {
		log.Printf("stories: list failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, stories)
}

// requireStory resolves a story's existence before an interaction is
// recorded, so a stale client gets a 404 instead of a constraint failure
func (h *StoryHandler) requireStory(storyID uint) error {
	if _, err := h.storyRepository.GetStoryOwner(storyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("Story not found")
		}
		log.Printf("stories: lookup failed: %v", err)
		return httperr.Internal()
	}
	return nil
}

// ViewStory records the caller's first view of a story. Repeat calls are
// no-ops and never overwrite a reaction.
func (h *StoryHandler) ViewStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.requireStory(storyID); err != nil {
		return err
	}

	if err := h.storyRepository.MarkViewed(storyID, currentUserID, time.Now()); err != nil {
		log.Printf("stories: view upsert failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ReactToStory sets the caller's reaction on a story; unlike ViewStory the
// update always takes effect
func (h *StoryHandler) ReactToStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ReactToStoryRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.requireStory(storyID); err != nil {
		return err
	}

	if err := h.storyRepository.UpsertReaction(storyID, currentUserID, req.Reaction, time.Now()); err != nil {
		log.Printf("stories: reaction upsert failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reaction": req.Reaction})
}

// GetStoryViewers lists who viewed a story, most recent first. Any
// authenticated user may call this, not just the owner.
func (h *StoryHandler) GetStoryViewers(c echo.Context) error {
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	viewers, err := h.storyRepository.GetViewers(storyID)
	if err != nil {
		log.Printf("stories: viewers query failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, viewers)
}

// DeleteStory deletes a story owned by the caller; missing or foreign
// stories report 403
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	storyID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	deleted, err := h.storyRepository.DeleteStory(storyID, currentUserID)
	if err != nil {
		log.Printf("stories: delete failed: %v", err)
		return httperr.Internal()
	}
	if !deleted {
		return httperr.Forbidden("Not allowed, or story not found")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Story deleted"})
}
