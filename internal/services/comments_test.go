package services

import (
	"testing"

	"yatube/internal/apperr"
	"yatube/internal/models"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	post := testutil.CreatePost(t, e.db, author, nil, "post")

	c, err := e.comments.Create(ctx, post.ID, author, " first! ")
	require.NoError(t, err)
	assert.Equal(t, "first!", c.Text)
	assert.False(t, c.Created.IsZero())

	_, err = e.comments.Create(ctx, 999, author, "lost")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCommentService_EmptyTextStoresNothing(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	post := testutil.CreatePost(t, e.db, author, nil, "post")

	_, err := e.comments.Create(ctx, post.ID, author, "   ")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	var count int64
	e.db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCommentService_ListNewestFirst(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	post := testutil.CreatePost(t, e.db, author, nil, "post")
	for _, text := range []string{"one", "two", "three"} {
		_, err := e.comments.Create(ctx, post.ID, author, text)
		require.NoError(t, err)
	}

	comments, err := e.comments.ListForPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "three", comments[0].Text)
	assert.Equal(t, "one", comments[2].Text)
	require.NotNil(t, comments[0].Author)
	assert.Equal(t, "leo", comments[0].Author.Username)

	counts, err := e.comments.CountsFor(ctx, []uint{post.ID, 777})
	require.NoError(t, err)
	assert.EqualValues(t, 3, counts[post.ID])
	assert.Zero(t, counts[777])
}

func TestCommentService_OwnerOnlyWrites(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	other := testutil.CreateUser(t, e.db, "mia")
	post := testutil.CreatePost(t, e.db, author, nil, "post")
	c, err := e.comments.Create(ctx, post.ID, author, "mine")
	require.NoError(t, err)

	_, err = e.comments.Update(ctx, post.ID, c.ID, other, "theirs")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	assert.True(t, apperr.Is(e.comments.Delete(ctx, post.ID, c.ID, other), apperr.KindForbidden))

	updated, err := e.comments.Update(ctx, post.ID, c.ID, author, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	// comment ids are scoped to their post
	otherPost := testutil.CreatePost(t, e.db, author, nil, "other")
	_, err = e.comments.Get(ctx, otherPost.ID, c.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, e.comments.Delete(ctx, post.ID, c.ID, author))
	_, err = e.comments.Get(ctx, post.ID, c.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
