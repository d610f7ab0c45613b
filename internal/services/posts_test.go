package services

import (
	"testing"
	"time"

	"yatube/internal/apperr"
	"yatube/internal/models"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_Create(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	group := testutil.CreateGroup(t, e.db, "cats")

	post, err := e.posts.Create(ctx, author, PostInput{Text: "  hello  ", GroupID: &group.ID})
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Text)
	assert.Equal(t, author.ID, post.AuthorID)
	require.NotNil(t, post.Group)
	assert.Equal(t, "cats", post.Group.Slug)
	assert.False(t, post.PubDate.IsZero())
}

func TestPostService_CreateValidation(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	missing := uint(999)

	_, err := e.posts.Create(ctx, author, PostInput{Text: "   ", GroupID: &missing})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "text")
	assert.Contains(t, appErr.Fields, "group")

	var count int64
	e.db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}

func TestPostService_CreateWithImage(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")

	post, err := e.posts.Create(ctx, author, PostInput{Text: "pic", Image: fileHeader(t, "small.gif", testutil.SmallGIF)})
	require.NoError(t, err)
	assert.Regexp(t, `^posts/[0-9a-f-]+\.gif$`, post.Image)
	assert.True(t, e.images.Exists(post.Image))

	_, err = e.posts.Create(ctx, author, PostInput{Text: "txt", Image: fileHeader(t, "fake.gif", []byte("plain text"))})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestPostService_UpdateKeepsPubDateAndAuthor(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	group := testutil.CreateGroup(t, e.db, "cats")
	post := testutil.CreatePost(t, e.db, author, nil, "before")
	original, err := e.posts.Get(ctx, post.ID)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	updated, err := e.posts.Update(ctx, post.ID, author, PostInput{Text: "after", GroupID: &group.ID})
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Text)
	require.NotNil(t, updated.GroupID)
	assert.Equal(t, group.ID, *updated.GroupID)
	assert.Equal(t, author.ID, updated.AuthorID)
	assert.True(t, original.PubDate.Equal(updated.PubDate))
}

func TestPostService_UpdateByNonAuthorChangesNothing(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	other := testutil.CreateUser(t, e.db, "mia")
	post := testutil.CreatePost(t, e.db, author, nil, "mine")

	_, err := e.posts.Update(ctx, post.ID, other, PostInput{Text: "hijacked"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	stored, err := e.posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", stored.Text)

	_, err = e.posts.Update(ctx, 4242, author, PostInput{Text: "x"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestPostService_UpdateImage(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	post, err := e.posts.Create(ctx, author, PostInput{Text: "pic", Image: fileHeader(t, "a.gif", testutil.SmallGIF)})
	require.NoError(t, err)
	first := post.Image

	// no upload keeps the image
	post, err = e.posts.Update(ctx, post.ID, author, PostInput{Text: "still pic"})
	require.NoError(t, err)
	assert.Equal(t, first, post.Image)

	post, err = e.posts.Update(ctx, post.ID, author, PostInput{Text: "new pic", Image: fileHeader(t, "b.gif", testutil.SmallGIF)})
	require.NoError(t, err)
	assert.NotEqual(t, first, post.Image)
	assert.False(t, e.images.Exists(first))

	second := post.Image
	post, err = e.posts.Update(ctx, post.ID, author, PostInput{Text: "no pic", ClearImage: true})
	require.NoError(t, err)
	assert.Empty(t, post.Image)
	assert.False(t, e.images.Exists(second))
}

func TestPostService_DeleteCascades(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	reader := testutil.CreateUser(t, e.db, "mia")
	post := testutil.CreatePost(t, e.db, author, nil, "bye")
	_, err := e.comments.Create(ctx, post.ID, reader, "nice")
	require.NoError(t, err)
	_, err = e.likes.AddLike(ctx, post.ID, reader.ID)
	require.NoError(t, err)

	assert.True(t, apperr.Is(e.posts.Delete(ctx, post.ID, reader), apperr.KindForbidden))
	require.NoError(t, e.posts.Delete(ctx, post.ID, author))

	var comments, likes int64
	e.db.Model(&models.Comment{}).Count(&comments)
	e.db.Model(&models.Like{}).Count(&likes)
	assert.Zero(t, comments)
	assert.Zero(t, likes)

	_, err = e.posts.Get(ctx, post.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestPostService_CountByAuthor(t *testing.T) {
	e := newEnv(t)
	author := testutil.CreateUser(t, e.db, "leo")
	testutil.CreatePosts(t, e.db, author, nil, 3)

	n, err := e.posts.CountByAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
