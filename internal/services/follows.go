package services

import (
	"context"

	"yatube/internal/apperr"
	"yatube/internal/logger"
	"yatube/internal/metrics"
	"yatube/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow subscribes user to the author named authorUsername. Following twice keeps one row;
// following yourself is rejected and stores nothing.
func (s *FollowService) Follow(ctx context.Context, user *models.User, authorUsername string) (*models.User, error) {
	var author models.User
	if err := s.db.WithContext(ctx).Where("username = ?", authorUsername).First(&author).Error; err != nil {
		return nil, apperr.FromDB(err, "user", authorUsername)
	}
	if author.ID == user.ID {
		return nil, apperr.Conflict("cannot follow yourself")
	}

	follow := &models.Follow{UserID: user.ID, AuthorID: author.ID}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
	if res.Error != nil {
		logger.L().Error("create follow failed", zap.Uint("user_id", user.ID), zap.Uint("author_id", author.ID), zap.Error(res.Error))
		return nil, apperr.Internal(res.Error)
	}
	if res.RowsAffected > 0 {
		metrics.DomainEvents.WithLabelValues("follow_created").Inc()
		logger.L().Info("follow created", zap.Uint("user_id", user.ID), zap.Uint("author_id", author.ID))
	}
	return &author, nil
}

// Unfollow removes the subscription if there is one. A missing row or unknown author is not an error.
func (s *FollowService) Unfollow(ctx context.Context, user *models.User, authorUsername string) error {
	authors := s.db.Model(&models.User{}).Select("id").Where("username = ?", authorUsername)
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id IN (?)", user.ID, authors).
		Delete(&models.Follow{})
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected > 0 {
		metrics.DomainEvents.WithLabelValues("follow_deleted").Inc()
		logger.L().Info("follow deleted", zap.Uint("user_id", user.ID), zap.String("author", authorUsername))
	}
	return nil
}

func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal(err)
	}
	return count > 0, nil
}

// Counts returns how many users follow userID and how many authors userID follows.
func (s *FollowService) Counts(ctx context.Context, userID uint) (followers, following int64, err error) {
	if err = s.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, apperr.Internal(err)
	}
	if err = s.db.WithContext(ctx).Model(&models.Follow{}).Where("user_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, apperr.Internal(err)
	}
	return followers, following, nil
}
