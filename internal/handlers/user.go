package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/devsocial/backend/internal/httperr"
	"github.com/devsocial/backend/internal/models"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/devsocial/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// searchLimit caps each result set of the global search.
const searchLimit = 5

// UserHandler handles HTTP requests related to user profiles and search
type UserHandler struct {
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	postRepository   repositories.PostRepository
	store            *storage.LocalStore
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	postRepo repositories.PostRepository,
	store *storage.LocalStore,
) *UserHandler {
	return &UserHandler{
		userRepository:   userRepo,
		followRepository: followRepo,
		postRepository:   postRepo,
		store:            store,
	}
}

// RegisterUserRoutes registers user-related routes. Fixed paths first so
// /users/search is not swallowed by /users/:id.
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/users", h.GetUsers)
	g.GET("/users/following", h.GetFollowing)
	g.GET("/users/search", h.GlobalSearch)
	g.PUT("/users/:id", h.UpdateProfile)
	g.DELETE("/users/:id", h.DeleteAccount)
}

// GetUsers lists every user except the caller, for starting a new
// conversation
func (h *UserHandler) GetUsers(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	users, err := h.userRepository.GetUsersExcept(currentUserID)
	if err != nil {
		log.Printf("users: list failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, users)
}

// GetFollowing lists the users the caller follows
func (h *UserHandler) GetFollowing(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	users, err := h.followRepository.GetFollowing(currentUserID)
	if err != nil {
		log.Printf("users: following list failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, users)
}

// GlobalSearch matches the term against usernames and post content. A blank
// term returns empty result sets rather than an error.
func (h *UserHandler) GlobalSearch(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusOK, echo.Map{
			"users": []models.UserCompact{},
			"posts": []models.PostWithMeta{},
		})
	}

	users, err := h.userRepository.SearchUsers(q, searchLimit)
	if err != nil {
		log.Printf("search: user query failed: %v", err)
		return httperr.Internal()
	}
	posts, err := h.postRepository.SearchPosts(q, searchLimit)
	if err != nil {
		log.Printf("search: post query failed: %v", err)
		return httperr.Internal()
	}

	return c.JSON(http.StatusOK, echo.Map{"users": users, "posts": posts})
}

// GetProfile returns a user's public fields with follower/following/post
// counts. When the caller is authenticated, isFollowing reflects their edge
// to the target.
func (h *UserHandler) GetProfile(c echo.Context) error {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("User not found")
		}
		log.Printf("profile: lookup failed: %v", err)
		return httperr.Internal()
	}

	followersCount, err := h.followRepository.GetFollowersCount(targetID)
	if err != nil {
		log.Printf("profile: followers count failed: %v", err)
		return httperr.Internal()
	}
	followingCount, err := h.followRepository.GetFollowingCount(targetID)
	if err != nil {
		log.Printf("profile: following count failed: %v", err)
		return httperr.Internal()
	}
	postsCount, err := h.postRepository.CountByUser(targetID)
	if err != nil {
		log.Printf("profile: post count failed: %v", err)
		return httperr.Internal()
	}

	isFollowing := false
	if callerID := getUserIDFromContext(c); callerID != 0 && callerID != targetID {
		isFollowing, _ = h.followRepository.IsFollowing(callerID, targetID)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":           user,
		"followersCount": followersCount,
		"followingCount": followingCount,
		"postsCount":     postsCount,
		"isFollowing":    isFollowing,
	})
}

// UpdateProfile updates the caller's own username, bio and avatar. The prior
// avatar is kept when no new file is uploaded.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if currentUserID != targetID {
		return httperr.Forbidden("You can only edit your own profile")
	}

	user, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("User not found")
		}
		log.Printf("profile: lookup failed: %v", err)
		return httperr.Internal()
	}

	if username := strings.TrimSpace(c.FormValue("username")); username != "" && username != user.Username {
		taken, err := h.userRepository.IsTaken(username, "")
		if err != nil {
			log.Printf("profile: uniqueness check failed: %v", err)
			return httperr.Internal()
		}
		if taken {
			return httperr.Conflict("Username already taken")
		}
		user.Username = username
	}
	if bio := c.FormValue("bio"); bio != "" {
		user.Bio = bio
	}
	if file, err := c.FormFile("avatar"); err == nil {
		name, err := h.store.Save(file)
		if err != nil {
			return httperr.BadRequest(err.Error())
		}
		user.AvatarURL = name
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		log.Printf("profile: update failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteAccount deletes the caller's own account; the store cascades away
// owned posts, stories, edges and messages
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if currentUserID != targetID {
		return httperr.Forbidden("You can only delete your own account")
	}

	if err := h.userRepository.DeleteUser(targetID); err != nil {
		log.Printf("profile: delete failed: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Account deleted"})
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, httperr.BadRequest("Invalid " + name)
	}
	return uint(id), nil
}
