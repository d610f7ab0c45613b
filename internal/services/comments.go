package services

import (
	"context"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/logger"
	"yatube/internal/metrics"
	"yatube/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

func (s *CommentService) ensurePost(ctx context.Context, postID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count == 0 {
		return apperr.NotFound("post", postID)
	}
	return nil
}

// Create adds a comment by author under postID. Blank text is rejected and nothing is stored.
func (s *CommentService) Create(ctx context.Context, postID uint, author *models.User, text string) (*models.Comment, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text", "This field is required.")
	}

	comment := &models.Comment{PostID: postID, AuthorID: author.ID, Text: text}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		logger.L().Error("create comment failed", zap.Uint("post_id", postID), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	comment.Author = author

	metrics.DomainEvents.WithLabelValues("comment_created").Inc()
	logger.L().Info("comment created", zap.Uint("comment_id", comment.ID), zap.Uint("post_id", postID))
	return comment, nil
}

// ListForPost returns the comments of a post, newest first.
func (s *CommentService) ListForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	var comments []models.Comment
	err := s.db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order(models.CommentOrder).
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return comments, nil
}

// Get loads a comment that must belong to postID.
func (s *CommentService) Get(ctx context.Context, postID, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.WithContext(ctx).Preload("Author").
		Where("id = ? AND post_id = ?", id, postID).
		First(&comment).Error
	if err != nil {
		return nil, apperr.FromDB(err, "comment", id)
	}
	return &comment, nil
}

// Update replaces the text of a comment. Only its author may do so.
func (s *CommentService) Update(ctx context.Context, postID, id uint, requester *models.User, text string) (*models.Comment, error) {
	comment, err := s.Get(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if requester == nil || comment.AuthorID != requester.ID {
		return nil, apperr.Forbidden("only the author can edit this comment")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperr.Validation("text", "This field is required.")
	}

	if err := s.db.WithContext(ctx).Model(comment).Update("text", text).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	comment.Text = text
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, postID, id uint, requester *models.User) error {
	comment, err := s.Get(ctx, postID, id)
	if err != nil {
		return err
	}
	if requester == nil || comment.AuthorID != requester.ID {
		return apperr.Forbidden("only the author can delete this comment")
	}
	if err := s.db.WithContext(ctx).Delete(&models.Comment{}, comment.ID).Error; err != nil {
		return apperr.Internal(err)
	}
	logger.L().Info("comment deleted", zap.Uint("comment_id", comment.ID))
	return nil
}

// CountsFor returns the number of comments for each of postIDs.
func (s *CommentService) CountsFor(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uint
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
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
