package db_test

import (
	"testing"
	"time"

	"yatube/internal/db"
	"yatube/internal/models"
	"yatube/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_IsRepeatable(t *testing.T) {
	conn := testutil.NewDB(t)
	require.NoError(t, db.Migrate(conn))

	for _, table := range []string{"users", "post_groups", "posts", "comments", "follows", "likes"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

func TestMigrate_DeletingPostCascades(t *testing.T) {
	conn := testutil.NewDB(t)
	author := testutil.CreateUser(t, conn, "author")
	reader := testutil.CreateUser(t, conn, "reader")
	post := testutil.CreatePost(t, conn, author, nil, "hello")

	require.NoError(t, conn.Create(&models.Like{PostID: post.ID, UserID: reader.ID, IsLike: true, LikeDate: time.Now()}).Error)
	require.NoError(t, conn.Create(&models.Comment{PostID: post.ID, AuthorID: reader.ID, Text: "hi"}).Error)

	require.NoError(t, conn.Delete(&models.Post{}, post.ID).Error)

	var likes, comments int64
	require.NoError(t, conn.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	require.NoError(t, conn.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func TestMigrate_DeletingUserCascadesToLikes(t *testing.T) {
	conn := testutil.NewDB(t)
	author := testutil.CreateUser(t, conn, "author")
	reader := testutil.CreateUser(t, conn, "reader")
	post := testutil.CreatePost(t, conn, author, nil, "hello")
	require.NoError(t, conn.Create(&models.Like{PostID: post.ID, UserID: reader.ID, IsLike: true, LikeDate: time.Now()}).Error)

	require.NoError(t, conn.Delete(&models.User{}, reader.ID).Error)

	var likes int64
	require.NoError(t, conn.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, likes)
}
