package services

import (
	"context"

	"yatube/internal/apperr"
	"yatube/internal/cache"
	"yatube/internal/models"
	"yatube/internal/utils"

	"gorm.io/gorm"
)

// Feed is one page of posts.
type Feed struct {
	Page  utils.Page
	Posts []models.Post
}

// FeedService assembles the paginated post listings.
type FeedService struct {
	db       *gorm.DB
	cache    cache.FeedCache
	likes    *LikeService
	comments *CommentService
	perPage  int
}

func NewFeedService(db *gorm.DB, feedCache cache.FeedCache, likes *LikeService, comments *CommentService, perPage int) *FeedService {
	if feedCache == nil {
		feedCache = cache.Nop{}
	}
	return &FeedService{db: db, cache: feedCache, likes: likes, comments: comments, perPage: perPage}
}

// Index is the site-wide feed. Pages are cached until a post is created, edited or deleted.
func (s *FeedService) Index(ctx context.Context, rawPage string, viewerID uint) (*Feed, error) {
	return s.cached(ctx, s.db.Model(&models.Post{}), rawPage, viewerID, cache.IndexKey)
}

// Group lists the posts of the group with the given slug.
func (s *FeedService) Group(ctx context.Context, slug, rawPage string, viewerID uint) (*models.Group, *Feed, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, nil, apperr.FromDB(err, "group", slug)
	}
	q := s.db.Model(&models.Post{}).Where("group_id = ?", group.ID)
	feed, err := s.cached(ctx, q, rawPage, viewerID, func(n int) string { return cache.GroupKey(slug, n) })
	if err != nil {
		return nil, nil, err
	}
	return &group, feed, nil
}

// Profile lists the posts written by username.
func (s *FeedService) Profile(ctx context.Context, username, rawPage string, viewerID uint) (*models.User, *Feed, error) {
	var author models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&author).Error; err != nil {
		return nil, nil, apperr.FromDB(err, "user", username)
	}
	q := s.db.Model(&models.Post{}).Where("author_id = ?", author.ID)
	feed, err := s.cached(ctx, q, rawPage, viewerID, func(n int) string { return cache.ProfileKey(username, n) })
	if err != nil {
		return nil, nil, err
	}
	return &author, feed, nil
}

// Follow lists posts by the authors viewerID follows. It is never cached since it is per user.
func (s *FeedService) Follow(ctx context.Context, viewerID uint, rawPage string) (*Feed, error) {
	if viewerID == 0 {
		return nil, apperr.Unauthorized("login required")
	}
	following := s.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", viewerID)
	q := s.db.Model(&models.Post{}).Where("author_id IN (?)", following)
	feed, err := s.load(ctx, q, rawPage)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, feed.Posts, viewerID); err != nil {
		return nil, err
	}
	return feed, nil
}

// cached serves a page from the feed cache, loading and storing it on a miss.
// Counts and like state change without touching the post list, so they are filled in after the cache read.
func (s *FeedService) cached(ctx context.Context, q *gorm.DB, rawPage string, viewerID uint, key func(int) string) (*Feed, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	page := utils.Paginate(total, s.perPage, rawPage)

	var feed Feed
	if !s.cache.Get(ctx, key(page.Number), &feed) || feed.Page != page {
		loaded, err := s.fetch(ctx, q, page)
		if err != nil {
			return nil, err
		}
		feed = *loaded
		s.cache.Set(ctx, key(page.Number), feed)
	}

	if err := s.decorate(ctx, feed.Posts, viewerID); err != nil {
		return nil, err
	}
	return &feed, nil
}

func (s *FeedService) load(ctx context.Context, q *gorm.DB, rawPage string) (*Feed, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).WithContext(ctx).Count(&total).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return s.fetch(ctx, q, utils.Paginate(total, s.perPage, rawPage))
}

// fetch loads one page of posts with author and group.
func (s *FeedService) fetch(ctx context.Context, q *gorm.DB, page utils.Page) (*Feed, error) {
	var posts []models.Post
	err := q.Session(&gorm.Session{}).WithContext(ctx).
		Preload("Author").Preload("Group").
		Order(models.PostOrder).
		Offset(page.Offset()).Limit(page.Limit()).
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Feed{Page: page, Posts: posts}, nil
}

// decorate fills comment and like counts and the viewer's like state.
func (s *FeedService) decorate(ctx context.Context, posts []models.Post, viewerID uint) error {
	ids := postIDs(posts)
	comments, err := s.comments.CountsFor(ctx, ids)
	if err != nil {
		return err
	}
	counts, err := s.likes.CountsFor(ctx, ids)
	if err != nil {
		return err
	}
	liked, err := s.likes.LikedBy(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].CommentCount = comments[posts[i].ID]
		posts[i].LikeCount = counts[posts[i].ID]
		posts[i].LikeID, posts[i].Liked = liked[posts[i].ID]
	}
	return nil
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
