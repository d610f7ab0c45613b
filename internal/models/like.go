package models

import (
	"time"
)

// Like is the per-user, per-post preference. A row with IsLike=true is the Liked state;
// no row is Unliked. The unique index keeps at most one row per (post, user).
type Like struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"not null;index;uniqueIndex:idx_like_post_user" json:"post_id"`
	Post     *Post     `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	UserID   uint      `gorm:"not null;index;uniqueIndex:idx_like_post_user" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
	IsLike   bool      `gorm:"not null;default:false" json:"is_like"`
	LikeDate time.Time `gorm:"not null;index" json:"like_date"`
}

const LikeOrder = "like_date DESC, id DESC"
