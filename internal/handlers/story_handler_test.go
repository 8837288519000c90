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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStoryHandler(t *testing.T, db *gorm.DB) *StoryHandler {
	t.Helper()
	return NewStoryHandler(repositories.NewPostgresStoryRepository(db), newTestStore(t), 24*time.Hour)
}

func TestCreateStoryNeedsMediaOrContent(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newStoryHandler(t, db)
	alice := createTestUser(t, db, "alice")

	form := url.Values{}
	form.Set("content", "   ")
	c, _ := formContext(e, http.MethodPost, "/api/posts/stories", form, alice.ID)
	requireHTTPError(t, h.CreateStory(c), http.StatusBadRequest)
}

func TestCreateTextStorySetsExpiry(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newStoryHandler(t, db)
	alice := createTestUser(t, db, "alice")

	form := url.Values{}
	form.Set("content", "day in the life")
	form.Set("theme", "sunset")
	c, rec := formContext(e, http.MethodPost, "/api/posts/stories", form, alice.ID)
	require.NoError(t, h.CreateStory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var story models.Story
	require.NoError(t, db.First(&story).Error)
	assert.Equal(t, models.MediaText, story.MediaType)
	assert.Equal(t, "sunset", story.Theme)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), story.ExpiresAt, time.Minute)
}

func TestViewThenReactThenListViewers(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newStoryHandler(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	story := &models.Story{UserID: alice.ID, MediaType: models.MediaText, Content: "hi", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(story).Error)
	storyParam := strconv.Itoa(int(story.ID))

	c, rec := jsonContext(e, http.MethodPost, "/api/posts/stories/:id/view", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(storyParam)
	require.NoError(t, h.ViewStory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = jsonContext(e, http.MethodPost, "/api/posts/stories/:id/react", models.ReactToStoryRequest{Reaction: "fire"}, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(storyParam)
	require.NoError(t, h.ReactToStory(c))
	require.Equal(t, http.StatusOK, rec.Code)

	// A replayed view keeps the reaction.
	c, _ = jsonContext(e, http.MethodPost, "/api/posts/stories/:id/view", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(storyParam)
	require.NoError(t, h.ViewStory(c))

	c, rec = jsonContext(e, http.MethodGet, "/api/posts/stories/:id/viewers", nil, alice.ID)
	c.SetParamNames("id")
	c.SetParamValues(storyParam)
	require.NoError(t, h.GetStoryViewers(c))

	var viewers []models.StoryViewer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &viewers))
	require.Len(t, viewers, 1)
	assert.Equal(t, "bob", viewers[0].Username)
	assert.Equal(t, "fire", viewers[0].Reaction)
}

func TestViewAndReactToMissingStory(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newStoryHandler(t, db)
	bob := createTestUser(t, db, "bob")

	c, _ := jsonContext(e, http.MethodPost, "/api/posts/stories/:id/view", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues("999")
	requireHTTPError(t, h.ViewStory(c), http.StatusNotFound)

	c, _ = jsonContext(e, http.MethodPost, "/api/posts/stories/:id/react", models.ReactToStoryRequest{Reaction: "fire"}, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues("999")
	requireHTTPError(t, h.ReactToStory(c), http.StatusNotFound)

	var count int64
	require.NoError(t, db.Model(&models.StoryInteraction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteStoryForbiddenForNonOwner(t *testing.T) {
	e := newTestEcho()
	db := newTestDB(t)
	h := newStoryHandler(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	story := &models.Story{UserID: alice.ID, MediaType: models.MediaText, Content: "hi", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(story).Error)

	c, _ := jsonContext(e, http.MethodDelete, "/api/posts/stories/:id", nil, bob.ID)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(story.ID)))
	requireHTTPError(t, h.DeleteStory(c), http.StatusForbidden)
}
