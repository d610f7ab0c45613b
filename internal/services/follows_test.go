package services

import (
	"testing"

	"yatube/internal/apperr"
	"yatube/internal/models"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_FollowIsIdempotent(t *testing.T) {
	e := newEnv(t)
	reader := testutil.CreateUser(t, e.db, "reader")
	testutil.CreateUser(t, e.db, "writer")

	for i := 0; i < 2; i++ {
		author, err := e.follows.Follow(ctx, reader, "writer")
		require.NoError(t, err)
		assert.Equal(t, "writer", author.Username)
	}

	var count int64
	e.db.Model(&models.Follow{}).Count(&count)
	assert.EqualValues(t, 1, count)

	followers, following, err := e.follows.Counts(ctx, reader.ID)
	require.NoError(t, err)
	assert.Zero(t, followers)
	assert.EqualValues(t, 1, following)
}

func TestFollowService_SelfFollowRejected(t *testing.T) {
	e := newEnv(t)
	user := testutil.CreateUser(t, e.db, "narcissus")

	_, err := e.follows.Follow(ctx, user, "narcissus")
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	var count int64
	e.db.Model(&models.Follow{}).Count(&count)
	assert.Zero(t, count)
}

func TestFollowService_UnknownAuthor(t *testing.T) {
	e := newEnv(t)
	user := testutil.CreateUser(t, e.db, "reader")

	_, err := e.follows.Follow(ctx, user, "ghost")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.NoError(t, e.follows.Unfollow(ctx, user, "ghost"))
}

func TestFollowService_Unfollow(t *testing.T) {
	e := newEnv(t)
	reader := testutil.CreateUser(t, e.db, "reader")
	writer := testutil.CreateUser(t, e.db, "writer")

	// not following yet: no-op
	require.NoError(t, e.follows.Unfollow(ctx, reader, "writer"))

	_, err := e.follows.Follow(ctx, reader, "writer")
	require.NoError(t, err)
	ok, err := e.follows.IsFollowing(ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, e.follows.Unfollow(ctx, reader, "writer"))
	ok, err = e.follows.IsFollowing(ctx, reader.ID, writer.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.follows.IsFollowing(ctx, 0, writer.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
