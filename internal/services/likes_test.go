package services

import (
	"sync"
	"testing"

	"yatube/internal/apperr"
	"yatube/internal/models"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeService_AddLikeTwiceCountsOnce(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	post := testutil.CreatePost(t, e.db, author, nil, "likeable")

	n, err := e.likes.CountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	first, err := e.likes.AddLike(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, first.IsLike)
	n, _ = e.likes.CountLikes(ctx, post.ID)
	assert.EqualValues(t, 1, n)

	second, err := e.likes.AddLike(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	n, _ = e.likes.CountLikes(ctx, post.ID)
	assert.EqualValues(t, 1, n)
}

func TestLikeService_ConcurrentAddKeepsOneRow(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	post := testutil.CreatePost(t, e.db, author, nil, "hot")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.likes.AddLike(ctx, post.ID, author.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	e.db.Model(&models.Like{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLikeService_MissingReferences(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	post := testutil.CreatePost(t, e.db, author, nil, "p")

	_, err := e.likes.AddLike(ctx, 999, author.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = e.likes.AddLike(ctx, post.ID, 999)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	n, err := e.likes.CountLikes(ctx, 999)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLikeService_RemoveLike(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	post := testutil.CreatePost(t, e.db, author, nil, "p")
	like, err := e.likes.AddLike(ctx, post.ID, author.ID)
	require.NoError(t, err)

	id, ok, err := e.likes.LikeID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, like.ID, id)

	require.NoError(t, e.likes.RemoveLike(ctx, like.ID))
	liked, err := e.likes.IsLiked(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, ok, err = e.likes.LikeID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, apperr.Is(e.likes.RemoveLike(ctx, like.ID), apperr.KindNotFound))
}

func TestLikeService_BatchLookups(t *testing.T) {
	e := newEnv(t)
	a := testutil.CreateUser(t, e.db, "a")
	b := testutil.CreateUser(t, e.db, "b")
	p1 := testutil.CreatePost(t, e.db, a, nil, "one")
	p2 := testutil.CreatePost(t, e.db, a, nil, "two")

	_, err := e.likes.AddLike(ctx, p1.ID, a.ID)
	require.NoError(t, err)
	_, err = e.likes.AddLike(ctx, p1.ID, b.ID)
	require.NoError(t, err)
	like, err := e.likes.AddLike(ctx, p2.ID, b.ID)
	require.NoError(t, err)

	counts, err := e.likes.CountsFor(ctx, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts[p1.ID])
	assert.EqualValues(t, 1, counts[p2.ID])

	liked, err := e.likes.LikedBy(ctx, b.ID, []uint{p1.ID, p2.ID})
	require.NoError(t, err)
	assert.Len(t, liked, 2)
	assert.Equal(t, like.ID, liked[p2.ID])

	none, err := e.likes.LikedBy(ctx, 0, []uint{p1.ID})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := e.likes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
