package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"
	"time"

	"yatube/internal/cache"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db       *gorm.DB
	cache    cache.FeedCache
	images   *ImageStore
	posts    *PostService
	comments *CommentService
	follows  *FollowService
	likes    *LikeService
	feeds    *FeedService
	users    *UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	conn := testutil.NewDB(t)
	feedCache, err := cache.NewLRU(64, time.Minute)
	require.NoError(t, err)

	images := NewImageStore(t.TempDir(), 1)
	comments := NewCommentService(conn)
	likes := NewLikeService(conn)
	return &env{
		db:       conn,
		cache:    feedCache,
		images:   images,
		posts:    NewPostService(conn, images, feedCache),
		comments: comments,
		follows:  NewFollowService(conn),
		likes:    likes,
		feeds:    NewFeedService(conn, feedCache, likes, comments, 10),
		users:    NewUserService(conn),
	}
}

// fileHeader builds a multipart upload the way gin hands it to handlers.
func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["image"][0]
}

var ctx = context.Background()
