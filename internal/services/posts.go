package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"yatube/internal/apperr"
	"yatube/internal/cache"
	"yatube/internal/logger"
	"yatube/internal/metrics"
	"yatube/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PostInput is the form payload for creating or editing a post.
type PostInput struct {
	Text    string
	GroupID *uint
	Image   *multipart.FileHeader
	// ClearImage drops the current image when no new one is uploaded.
	ClearImage bool
}

type PostService struct {
	db     *gorm.DB
	images *ImageStore
	cache  cache.FeedCache
}

func NewPostService(db *gorm.DB, images *ImageStore, feedCache cache.FeedCache) *PostService {
	if feedCache == nil {
		feedCache = cache.Nop{}
	}
	return &PostService{db: db, images: images, cache: feedCache}
}

// Get returns a post with its author and group loaded.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, apperr.FromDB(err, "post", id)
	}
	return &post, nil
}

func (s *PostService) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, apperr.Internal(err)
	}
	return count, nil
}

// validate trims the text and checks the group reference, collecting every field error.
func (s *PostService) validate(ctx context.Context, in *PostInput) error {
	fields := map[string]string{}
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		fields["text"] = "This field is required."
	}
	if in.GroupID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", *in.GroupID).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count == 0 {
			fields["group"] = "Select a valid choice. That choice is not one of the available choices."
		}
	}
	if len(fields) > 0 {
		return apperr.ValidationFields(fields)
	}
	return nil
}

// Create publishes a new post by author. PubDate is stamped by the store.
func (s *PostService) Create(ctx context.Context, author *models.User, in PostInput) (*models.Post, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	post := &models.Post{Text: in.Text, AuthorID: author.ID, GroupID: in.GroupID}
	if in.Image != nil {
		rel, err := s.images.Save(in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = rel
	}

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		s.images.Remove(post.Image)
		logger.L().Error("create post failed", zap.Uint("author_id", author.ID), zap.Error(err))
		return nil, apperr.Internal(err)
	}

	s.invalidate(ctx, author.Username, post.GroupID)
	metrics.DomainEvents.WithLabelValues("post_created").Inc()
	logger.L().Info("post created", zap.Uint("post_id", post.ID), zap.Uint("author_id", author.ID))
	return s.Get(ctx, post.ID)
}

// Update edits text, group and image. Only the author may edit; PubDate and the author never change.
func (s *PostService) Update(ctx context.Context, postID uint, requester *models.User, in PostInput) (*models.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	if requester == nil || post.AuthorID != requester.ID {
		return nil, apperr.Forbidden("only the author can edit this post")
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	oldImage := post.Image
	image := post.Image
	if in.Image != nil {
		rel, err := s.images.Save(in.Image)
		if err != nil {
			return nil, err
		}
		image = rel
	} else if in.ClearImage {
		image = ""
	}

	updates := map[string]interface{}{
		"text":       in.Text,
		"group_id":   in.GroupID,
		"image":      image,
		"updated_at": time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
		if image != oldImage {
			s.images.Remove(image)
		}
		logger.L().Error("update post failed", zap.Uint("post_id", post.ID), zap.Error(err))
		return nil, apperr.Internal(err)
	}
	if image != oldImage {
		s.images.Remove(oldImage)
	}

	s.invalidate(ctx, post.Author.Username, post.GroupID, in.GroupID)
	metrics.DomainEvents.WithLabelValues("post_updated").Inc()
	logger.L().Info("post updated", zap.Uint("post_id", post.ID))
	return s.Get(ctx, post.ID)
}

// Delete removes a post together with its comments and likes. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, postID uint, requester *models.User) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if requester == nil || post.AuthorID != requester.ID {
		return apperr.Forbidden("only the author can delete this post")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Post{}, post.ID).Error; err != nil {
		logger.L().Error("delete post failed", zap.Uint("post_id", post.ID), zap.Error(err))
		return apperr.Internal(err)
	}
	s.images.Remove(post.Image)

	s.invalidate(ctx, post.Author.Username, post.GroupID)
	metrics.DomainEvents.WithLabelValues("post_deleted").Inc()
	logger.L().Info("post deleted", zap.Uint("post_id", post.ID))
	return nil
}

// invalidate drops every cached feed page a change to an author's post can appear on.
func (s *PostService) invalidate(ctx context.Context, username string, groupIDs ...*uint) {
	s.cache.InvalidatePrefix(ctx, cache.IndexPrefix)
	s.cache.InvalidatePrefix(ctx, cache.ProfilePrefix(username))

	var ids []uint
	for _, id := range groupIDs {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	if len(ids) == 0 {
		return
	}
	var slugs []string
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id IN ?", ids).Pluck("slug", &slugs).Error; err != nil {
		logger.L().Warn("load group slugs for cache invalidation failed", zap.Error(err))
		return
	}
	for _, slug := range slugs {
		s.cache.InvalidatePrefix(ctx, cache.GroupPrefix(slug))
	}
}

// Recent returns the newest posts without relations, for the sitemap.
func (s *PostService) Recent(ctx context.Context, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Select("id", "pub_date", "updated_at").
		Order(models.PostOrder).Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return posts, nil
}

// List returns every post with its author, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Preload("Author").Order(models.PostOrder).Find(&posts).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return posts, nil
}
