package services

import (
	"regexp"
	"testing"

	"yatube/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestLikeService_CountLikes_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	likes := NewLikeService(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "likes" WHERE post_id = $1 AND is_like = $2`)).
		WithArgs(7, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := likes.CountLikes(ctx, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowService_Unfollow_Postgres(t *testing.T) {
	db, mock := setupMockDB(t)
	follows := NewFollowService(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "follows" WHERE user_id = \$1 AND author_id IN \(SELECT .id. FROM "users" WHERE username = \$2\)`).
		WithArgs(1, "writer").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := follows.Unfollow(ctx, &models.User{ID: 1}, "writer")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
