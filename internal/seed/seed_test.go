package seed

import (
	"context"
	"testing"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	conn := testutil.NewDB(t)
	cfg := config.Default()
	cfg.MediaRoot = t.TempDir()
	svc := services.New(conn, cache.Nop{}, cfg)

	res, err := New(svc).Run(context.Background(), Options{Users: 3, Groups: 2, Posts: 5, Comments: 2, Seed: 42})
	require.NoError(t, err)
	assert.Len(t, res.Users, 3)
	assert.Len(t, res.Groups, 2)
	assert.Equal(t, 5, res.Posts)

	var posts, comments, follows int64
	require.NoError(t, conn.Model(&models.Post{}).Count(&posts).Error)
	require.NoError(t, conn.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, conn.Model(&models.Follow{}).Count(&follows).Error)
	assert.Equal(t, int64(5), posts)
	assert.Equal(t, int64(res.Comments), comments)
	assert.Equal(t, int64(res.Follows), follows)

	var selfFollows int64
	require.NoError(t, conn.Model(&models.Follow{}).Where("user_id = author_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)

	_, err = svc.Users.Authenticate(context.Background(), res.Users[0].Username, Password)
	assert.NoError(t, err)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "ice-cream", slugify("ice cream"))
	assert.Equal(t, "dangelo", slugify("d'angelo"))
}
