package services

import (
	"context"
	"regexp"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/logger"
	"yatube/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// GroupService manages topic groups. Groups are only created by administrators.
type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// GroupWithCount is a group plus the number of posts in it.
type GroupWithCount struct {
	models.Group
	PostCount int64 `json:"post_count"`
}

func (s *GroupService) List(ctx context.Context) ([]GroupWithCount, error) {
	var groups []GroupWithCount
	err := s.db.WithContext(ctx).Model(&models.Group{}).
		Select("post_groups.*, (SELECT count(*) FROM posts WHERE posts.group_id = post_groups.id) AS post_count").
		Order("post_groups.title ASC").
		Scan(&groups).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return groups, nil
}

func (s *GroupService) Get(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, apperr.FromDB(err, "group", id)
	}
	return &group, nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, apperr.FromDB(err, "group", slug)
	}
	return &group, nil
}

// Create adds a group. Titles are limited to 200 characters, slugs to 50.
func (s *GroupService) Create(ctx context.Context, title, slug, description string) (*models.Group, error) {
	title = strings.TrimSpace(title)
	slug = strings.TrimSpace(slug)

	fields := map[string]string{}
	if title == "" {
		fields["title"] = "This field is required."
	} else if len([]rune(title)) > 200 {
		fields["title"] = "Ensure this value has at most 200 characters."
	}
	if slug == "" || len(slug) > 50 || !slugRe.MatchString(slug) {
		fields["slug"] = "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	}
	if len(fields) > 0 {
		return nil, apperr.ValidationFields(fields)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if count > 0 {
		return nil, apperr.Validation("slug", "Group with this slug already exists.")
	}

	group := &models.Group{Title: title, Slug: slug, Description: description}
	if err := s.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	logger.L().Info("group created", zap.Uint("group_id", group.ID), zap.String("slug", slug))
	return group, nil
}
