package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	PubDate   time.Time `gorm:"autoCreateTime;not null;index" json:"pub_date"` // set once on insert
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    *User     `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitempty"`
	GroupID   *uint     `gorm:"index" json:"group_id"` // Optional
	Group     *Group    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"group,omitempty"`
	Image     string    `gorm:"size:255" json:"image"` // path relative to MEDIA_ROOT
	UpdatedAt time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	CommentCount int64 `gorm:"-" json:"comment_count"`
	LikeCount    int64 `gorm:"-" json:"like_count"`
	Liked        bool  `gorm:"-" json:"liked"`
	LikeID       uint  `gorm:"-" json:"like_id,omitempty"` // the viewer's like, when Liked
}

// PostOrder is the default newest-first ordering.
const PostOrder = "pub_date DESC, id DESC"
