package repositories

import (
	"testing"

	"github.com/devsocial/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	created, err := repo.CreateFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// Second follow is silently ignored, not an error.
	created, err = repo.CreateFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteFollowMissingIsNoOp(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	require.NoError(t, repo.DeleteFollow(alice.ID, bob.ID))
}

func TestFollowCountsAndDirection(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.CreateFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.CreateFollow(carol.ID, bob.ID)
	require.NoError(t, err)

	followers, err := repo.GetFollowersCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followers)

	following, err := repo.GetFollowingCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), following)

	isFollowing, err := repo.IsFollowing(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isFollowing)

	// The edge is directed.
	isFollowing, err = repo.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, isFollowing)
}

func TestGetFollowingOrderedByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := createTestUser(t, db, "alice")
	zoe := createTestUser(t, db, "zoe")
	bob := createTestUser(t, db, "bob")

	_, err := repo.CreateFollow(alice.ID, zoe.ID)
	require.NoError(t, err)
	_, err = repo.CreateFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	following, err := repo.GetFollowing(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, "bob", following[0].Username)
	assert.Equal(t, "zoe", following[1].Username)
}
