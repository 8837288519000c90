package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/devsocial/backend/internal/httperr"
	"github.com/devsocial/backend/internal/models"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/devsocial/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Feed categories that mean "show everything" rather than an exact filter.
const (
	CategoryForYou  = "For you"
	CategoryGeneral = "General"
)

// Actions reported by ReactToPost.
const (
	ReactionAdded   = "added"
	ReactionUpdated = "updated"
	ReactionRemoved = "removed"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository         repositories.PostRepository
	likeRepository         repositories.LikeRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	store                  *storage.LocalStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	store *storage.LocalStore,
) *PostHandler {
	return &PostHandler{
		postRepository:         postRepo,
		likeRepository:         likeRepo,
		commentRepository:      commentRepo,
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		store:                  store,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts", h.GetPosts)
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/user/:id", h.GetPostsByUser)
	g.POST("/posts/:id/react", h.ReactToPost)
	g.POST("/posts/:id/comments", h.AddComment)
	g.GET("/posts/:id/comments", h.GetComments)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a post from a multipart form. The media type is
// classified from the uploaded file's declared MIME type, falling back to
// "code" when a snippet is present and "text" otherwise. A positive duration
// (minutes) sets the expiry used by the sweeper.
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	content := c.FormValue("content")
	codeSnippet := c.FormValue("code_snippet")
	codeLanguage := c.FormValue("code_language")
	category := c.FormValue("category")

	mediaType := models.MediaText
	mediaURL := ""
	if file, err := c.FormFile("media"); err == nil {
		switch {
		case storage.IsAudio(file):
			mediaType = models.MediaAudio
		case storage.IsImage(file):
			mediaType = models.MediaImage
		}
		name, err := h.store.Save(file)
		if err != nil {
			return httperr.BadRequest(err.Error())
		}
		mediaURL = name
	} else if codeSnippet != "" {
		mediaType = models.MediaCode
	}

	var expiresAt *time.Time
	if duration, err := strconv.Atoi(c.FormValue("duration")); err == nil && duration > 0 {
		t := time.Now().Add(time.Duration(duration) * time.Minute)
		expiresAt = &t
	}

	post := &models.Post{
		UserID:       currentUserID,
		Content:      content,
		MediaType:    mediaType,
		MediaURL:     mediaURL,
		CodeSnippet:  codeSnippet,
		CodeLanguage: codeLanguage,
		Category:     category,
		ExpiresAt:    expiresAt,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		log.Printf("posts: create failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts returns the feed, newest first, optionally filtered to an exact
// category. The "show everything" sentinels disable the filter.
func (h *PostHandler) GetPosts(c echo.Context) error {
	category := c.QueryParam("category")
	if category == CategoryForYou || category == CategoryGeneral {
		category = ""
	}

	posts, err := h.postRepository.GetPosts(category)
	if err != nil {
		log.Printf("posts: feed query failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, posts)
}

// GetPostsByUser returns one author's posts, newest first
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	posts, err := h.postRepository.GetPostsByUser(userID)
	if err != nil {
		log.Printf("posts: user feed query failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, posts)
}

// ReactToPost toggles or replaces the caller's reaction: no existing
// reaction inserts one (and notifies the post owner), the same type removes
// it, a different type updates it in place without a new notification.
func (h *PostHandler) ReactToPost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ownerID, err := h.postRepository.GetPostOwner(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("Post not found")
		}
		log.Printf("react: owner lookup failed: %v", err)
		return httperr.Internal()
	}

	var action string
	existing, err := h.likeRepository.GetLike(postID, currentUserID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := &models.Like{PostID: postID, UserID: currentUserID, ReactionType: req.Type}
		if err := h.likeRepository.CreateLike(like); err != nil {
			log.Printf("react: insert failed: %v", err)
			return httperr.Internal()
		}
		action = ReactionAdded

		// Never notify for self-directed reactions.
		if currentUserID != ownerID {
			actor, err := h.userRepository.GetUserByID(currentUserID)
			if err == nil {
				notif := &models.Notification{
					UserID:  ownerID,
					ActorID: currentUserID,
					Type:    models.NotificationLike,
					Message: actor.Username + " reacted to your post",
				}
				if err := h.notificationRepository.CreateNotification(notif); err != nil {
					log.Printf("react: notification insert failed: %v", err)
				}
			}
		}
	case err != nil:
		log.Printf("react: lookup failed: %v", err)
		return httperr.Internal()
	case existing.ReactionType == req.Type:
		if err := h.likeRepository.DeleteLike(postID, currentUserID); err != nil {
			log.Printf("react: delete failed: %v", err)
			return httperr.Internal()
		}
		action = ReactionRemoved
	default:
		if err := h.likeRepository.UpdateReaction(postID, currentUserID, req.Type); err != nil {
			log.Printf("react: update failed: %v", err)
			return httperr.Internal()
		}
		action = ReactionUpdated
	}

	likeCount, err := h.likeRepository.GetLikesCountByPostID(postID)
	if err != nil {
		log.Printf("react: count failed: %v", err)
		return httperr.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Action applied",
		"action":    action,
		"type":      req.Type,
		"likeCount": likeCount,
	})
}

// AddComment creates a comment on a post
func (h *PostHandler) AddComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment := &models.Comment{PostID: postID, UserID: currentUserID, Content: req.Content}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		log.Printf("comments: create failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, comment)
}

// GetComments lists a post's comments, oldest first
func (h *PostHandler) GetComments(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		log.Printf("comments: list failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, comments)
}

// IncrementViews counts a view. Unauthenticated and not idempotent: every
// call counts.
func (h *PostHandler) IncrementViews(c echo.Context) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.postRepository.IncrementViews(postID); err != nil {
		log.Printf("views: increment failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "View counted"})
}

// DeletePost deletes a post owned by the caller. A missing or foreign post
// reports 403, matching the single owner-scoped delete statement.
func (h *PostHandler) DeletePost(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	deleted, err := h.postRepository.DeletePost(postID, currentUserID)
	if err != nil {
		log.Printf("posts: delete failed: %v", err)
		return httperr.Internal()
	}
	if !deleted {
		return httperr.Forbidden("Not allowed, or post not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted"})
}
