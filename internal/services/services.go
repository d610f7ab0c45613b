package services

import (
	"yatube/internal/cache"
	"yatube/internal/config"

	"gorm.io/gorm"
)

// Services bundles every domain service the transports need.
type Services struct {
	Users    *UserService
	Groups   *GroupService
	Posts    *PostService
	Comments *CommentService
	Follows  *FollowService
	Likes    *LikeService
	Feeds    *FeedService
	Tokens   *TokenService
	Captcha  *CaptchaService
	Images   *ImageStore
}

func New(db *gorm.DB, feedCache cache.FeedCache, cfg *config.Config) *Services {
	images := NewImageStore(cfg.MediaRoot, cfg.MaxUploadMB)
	comments := NewCommentService(db)
	likes := NewLikeService(db)
	return &Services{
		Users:    NewUserService(db),
		Groups:   NewGroupService(db),
		Posts:    NewPostService(db, images, feedCache),
		Comments: comments,
		Follows:  NewFollowService(db),
		Likes:    likes,
		Feeds:    NewFeedService(db, feedCache, likes, comments, cfg.PostsPerPage),
		Tokens:   NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		Captcha:  NewCaptchaService(),
		Images:   images,
	}
}
