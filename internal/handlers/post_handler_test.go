package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/devsocial/backend/internal/models"
	"github.com/devsocial/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostHandler(t *testing.T, db *gorm.DB) *PostHandler {
	t.Helper()
	return NewPostHandler(
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresNotificationRepository(db),
		repositories.NewPostgresUserRepository(db),
		newTestStore(t),
	)
}

func createPost(t *testing.T, db *gorm.DB, userID uint, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: content, MediaType: models.MediaText}
	require.NoError(t, db.Create(post).Error)
	return post
}

func react(t *testing.T, e *echo.Echo, h *PostHandler, postID, userID uint, reactionType string) map[string]interface{} {
	t.Helper()
	c, rec := jsonContext(e, http.MethodPost, "/api/posts/:id/react", models.ReactRequest{Type: reactionType}, userID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(postID)))
	require.NoError(t, h.ReactToPost(c))
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody(t, rec)
}

func TestReactToPostToggleCycle(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createPost(t, db, alice.ID, "hello")

	// No prior reaction: inserted.
	body := react(t, e, h, post.ID, bob.ID, "like")
	assert.Equal(t, ReactionAdded, body["action"])
	assert.Equal(t, float64(1), body["likeCount"])

	// Different type: replaced in place.
	body = react(t, e, h, post.ID, bob.ID, "heart")
	assert.Equal(t, ReactionUpdated, body["action"])
	assert.Equal(t, float64(1), body["likeCount"])

	var likes []models.Like
	require.NoError(t, db.Find(&likes).Error)
	require.Len(t, likes, 1)
	assert.Equal(t, "heart", likes[0].ReactionType)

	// Same type again: removed.
	body = react(t, e, h, post.ID, bob.ID, "heart")
	assert.Equal(t, ReactionRemoved, body["action"])
	assert.Equal(t, float64(0), body["likeCount"])

	require.NoError(t, db.Find(&likes).Error)
	assert.Empty(t, likes)
}

func TestReactNotifiesOwnerOnlyOnInsert(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createPost(t, db, alice.ID, "hello")

	react(t, e, h, post.ID, bob.ID, "like")  // added: notifies
	react(t, e, h, post.ID, bob.ID, "heart") // updated: silent
	react(t, e, h, post.ID, bob.ID, "heart") // removed: silent

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, alice.ID, notifications[0].UserID)
	assert.Equal(t, bob.ID, notifications[0].ActorID)
	assert.Equal(t, models.NotificationLike, notifications[0].Type)
}

func TestReactToOwnPostDoesNotNotify(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")
	post := createPost(t, db, alice.ID, "hello")

	react(t, e, h, post.ID, alice.ID, "like")

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestReactToMissingPost(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	bob := createTestUser(t, db, "bob")

	c, _ := jsonContext(e, http.MethodPost, "/api/posts/:id/react", models.ReactRequest{Type: "like"}, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues("999")
	requireHTTPError(t, h.ReactToPost(c), http.StatusNotFound)
}

func TestCreatePostWithDurationSetsExpiry(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")

	form := url.Values{}
	form.Set("content", "going soon")
	form.Set("duration", "15")
	c, rec := formContext(e, http.MethodPost, "/api/posts", form, alice.ID)
	require.NoError(t, h.CreatePost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var post models.Post
	require.NoError(t, db.First(&post).Error)
	require.NotNil(t, post.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), *post.ExpiresAt, time.Minute)
}

func TestCreatePostWithoutDurationIsPermanent(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")

	form := url.Values{}
	form.Set("content", "evergreen")
	c, rec := formContext(e, http.MethodPost, "/api/posts", form, alice.ID)
	require.NoError(t, h.CreatePost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var post models.Post
	require.NoError(t, db.First(&post).Error)
	assert.Nil(t, post.ExpiresAt)
	assert.Equal(t, models.MediaText, post.MediaType)
}

func TestCreatePostWithSnippetIsCode(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")

	form := url.Values{}
	form.Set("content", "look at this")
	form.Set("code_snippet", "fmt.Println(42)")
	form.Set("code_language", "go")
	c, rec := formContext(e, http.MethodPost, "/api/posts", form, alice.ID)
	require.NoError(t, h.CreatePost(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var post models.Post
	require.NoError(t, db.First(&post).Error)
	assert.Equal(t, models.MediaCode, post.MediaType)
	assert.Equal(t, "go", post.CodeLanguage)
}

func TestGetPostsSentinelCategoriesShowEverything(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")

	golang := createPost(t, db, alice.ID, "channels")
	require.NoError(t, db.Model(golang).Update("category", "golang").Error)
	createPost(t, db, alice.ID, "no category")

	c, rec := jsonContext(e, http.MethodGet, "/api/posts?category="+url.QueryEscape(CategoryForYou), nil, alice.ID)
	require.NoError(t, h.GetPosts(c))
	var all []models.PostWithMeta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	c, rec = jsonContext(e, http.MethodGet, "/api/posts?category=golang", nil, alice.ID)
	require.NoError(t, h.GetPosts(c))
	var filtered []models.PostWithMeta
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &filtered))
	assert.Len(t, filtered, 1)
}

func TestDeletePostForbiddenForNonOwner(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createPost(t, db, alice.ID, "mine")

	c, _ := jsonContext(e, http.MethodDelete, "/api/posts/:id", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(post.ID)))
	requireHTTPError(t, h.DeletePost(c), http.StatusForbidden)

	c, rec := jsonContext(e, http.MethodDelete, "/api/posts/:id", nil, alice.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(post.ID)))
	require.NoError(t, h.DeletePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddAndGetComments(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newPostHandler(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createPost(t, db, alice.ID, "discuss")

	c, rec := jsonContext(e, http.MethodPost, "/api/posts/:id/comments", models.CreateCommentRequest{Content: "first"}, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(post.ID)))
	require.NoError(t, h.AddComment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = jsonContext(e, http.MethodGet, "/api/posts/:id/comments", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(post.ID)))
	require.NoError(t, h.GetComments(c))

	var comments []models.CommentWithAuthor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "bob", comments[0].Username)
}
