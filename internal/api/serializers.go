package api

import (
	"path"
	"time"

	"yatube/internal/models"
)

type groupJSON struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type postJSON struct {
	ID      uint      `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Image   *string   `json:"image"`
	Group   *uint     `json:"group"`
	PubDate time.Time `json:"pub_date"`
}

type commentJSON struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Post    uint      `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type likeJSON struct {
	ID         uint  `json:"id"`
	Post       uint  `json:"post"`
	CountLikes int64 `json:"count_likes"`
}

func toGroup(g *models.Group) groupJSON {
	return groupJSON{ID: g.ID, Title: g.Title, Slug: g.Slug, Description: g.Description}
}

func (h *Handler) toPost(p *models.Post) postJSON {
	out := postJSON{ID: p.ID, Text: p.Text, Group: p.GroupID, PubDate: p.PubDate}
	if p.Author != nil {
		out.Author = p.Author.Username
	}
	if p.Image != "" {
		url := path.Join(h.mediaURL, p.Image)
		out.Image = &url
	}
	return out
}

func toComment(c *models.Comment) commentJSON {
	out := commentJSON{ID: c.ID, Post: c.PostID, Text: c.Text, Created: c.Created}
	if c.Author != nil {
		out.Author = c.Author.Username
	}
	return out
}
