package services

import (
	"context"
	"errors"
	"time"

	"yatube/internal/apperr"
	"yatube/internal/logger"
	"yatube/internal/metrics"
	"yatube/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeService manages per-user likes on posts. A (post, user) pair is either
// unliked (no row) or liked (one row with IsLike set).
type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// AddLike marks postID as liked by userID. Liking an already liked post changes nothing.
func (s *LikeService) AddLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	tx := s.db.WithContext(ctx)
	if err := tx.Select("id").First(&models.Post{}, postID).Error; err != nil {
		return nil, apperr.FromDB(err, "post", postID)
	}
	if err := tx.Select("id").First(&models.User{}, userID).Error; err != nil {
		return nil, apperr.FromDB(err, "user", userID)
	}

	like := &models.Like{PostID: postID, UserID: userID, IsLike: true, LikeDate: time.Now()}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		logger.L().Error("add like failed", zap.Uint("post_id", postID), zap.Uint("user_id", userID), zap.Error(res.Error))
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected > 0 {
		metrics.DomainEvents.WithLabelValues("like_added").Inc()
		logger.L().Info("like added", zap.Uint("post_id", postID), zap.Uint("user_id", userID))
	}

	var stored models.Like
	if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&stored).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return &stored, nil
}

// RemoveLike deletes a like by its id. It does not check who owns the like;
// callers that care must compare Get(id).UserID themselves.
func (s *LikeService) RemoveLike(ctx context.Context, likeID uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Like{}, likeID)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("like", likeID)
	}
	metrics.DomainEvents.WithLabelValues("like_removed").Inc()
	logger.L().Info("like removed", zap.Uint("like_id", likeID))
	return nil
}

func (s *LikeService) Get(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	if err := s.db.WithContext(ctx).First(&like, id).Error; err != nil {
		return nil, apperr.FromDB(err, "like", id)
	}
	return &like, nil
}

// List returns every like, newest first.
func (s *LikeService) List(ctx context.Context) ([]models.Like, error) {
	var likes []models.Like
	if err := s.db.WithContext(ctx).Order(models.LikeOrder).Find(&likes).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return likes, nil
}

// CountLikes counts liked rows for postID. A missing post simply has zero likes.
func (s *LikeService) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND is_like = ?", postID, true).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

// IsLiked reports whether userID likes postID. Anonymous viewers (userID 0) never do.
func (s *LikeService) IsLiked(ctx context.Context, postID, userID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var like models.Like
	err := s.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Internal(err)
	}
	return like.IsLike, nil
}

// LikeID returns the id of userID's like on postID, with ok=false when there is none.
func (s *LikeService) LikeID(ctx context.Context, postID, userID uint) (id uint, ok bool, err error) {
	if userID == 0 {
		return 0, false, nil
	}
	var like models.Like
	err = s.db.WithContext(ctx).Select("id").Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperr.Internal(err)
	}
	return like.ID, true, nil
}

// CountsFor returns like counts for a batch of posts.
func (s *LikeService) CountsFor(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uint
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ? AND is_like = ?", postIDs, true).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}

// LikedBy maps each post in postIDs that userID likes to the like id.
func (s *LikeService) LikedBy(ctx context.Context, userID uint, postIDs []uint) (map[uint]uint, error) {
	liked := make(map[uint]uint)
	if userID == 0 || len(postIDs) == 0 {
		return liked, nil
	}
	var likes []models.Like
	err := s.db.WithContext(ctx).Select("id", "post_id").
		Where("user_id = ? AND is_like = ? AND post_id IN ?", userID, true, postIDs).
		Find(&likes).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	for _, l := range likes {
		liked[l.PostID] = l.ID
	}
	return liked, nil
}
