package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

// postPayload is a decoded write request. Nil fields were absent.
type postPayload struct {
	Text     *string
	GroupSet bool
	Group    *uint
	input    services.PostInput
}

// bindPost reads a post from JSON or from a (multipart) form, the latter allowing an image.
func bindPost(c *gin.Context) (*postPayload, error) {
	p := &postPayload{}
	if strings.HasPrefix(c.ContentType(), "multipart/") || c.ContentType() == "application/x-www-form-urlencoded" {
		if text, ok := c.GetPostForm("text"); ok {
			p.Text = &text
		}
		if raw, ok := c.GetPostForm("group"); ok {
			p.GroupSet = true
			if strings.TrimSpace(raw) != "" {
				id, ok := utils.ParseID(raw)
				if !ok {
					return nil, apperr.Validation("group", "Incorrect type. Expected pk value.")
				}
				p.Group = &id
			}
		}
		if fh, err := c.FormFile("image"); err == nil {
			p.input.Image = fh
		}
		return p, nil
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, apperr.Validation("non_field_errors", "Invalid data. Expected a dictionary.")
	}
	if v, ok := raw["text"]; ok {
		var text string
		if err := json.Unmarshal(v, &text); err != nil {
			return nil, apperr.Validation("text", "Not a valid string.")
		}
		p.Text = &text
	}
	if v, ok := raw["group"]; ok {
		p.GroupSet = true
		if err := json.Unmarshal(v, &p.Group); err != nil {
			return nil, apperr.Validation("group", "Incorrect type. Expected pk value.")
		}
	}
	return p, nil
}

// merge builds the service input. For partial updates absent fields keep the current values.
func (p *postPayload) merge(current *models.Post, partial bool) services.PostInput {
	in := p.input
	switch {
	case p.Text != nil:
		in.Text = *p.Text
	case partial && current != nil:
		in.Text = current.Text
	}
	switch {
	case p.GroupSet:
		in.GroupID = p.Group
	case partial && current != nil:
		in.GroupID = current.GroupID
	}
	return in
}

func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.svc.Posts.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]postJSON, 0, len(posts))
	for i := range posts {
		out = append(out, h.toPost(&posts[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreatePost(c *gin.Context) {
	payload, err := bindPost(c)
	if err != nil {
		writeError(c, err)
		return
	}
	post, err := h.svc.Posts.Create(c.Request.Context(), middleware.CurrentUser(c), payload.merge(nil, false))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toPost(post))
}

func (h *Handler) postFromPath(c *gin.Context) (*models.Post, bool) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		writeError(c, apperr.NotFound("post", c.Param("post_id")))
		return nil, false
	}
	post, err := h.svc.Posts.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return post, true
}

func (h *Handler) GetPost(c *gin.Context) {
	post, ok := h.postFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.toPost(post))
}

func (h *Handler) UpdatePost(c *gin.Context) {
	h.updatePost(c, false)
}

func (h *Handler) PartialUpdatePost(c *gin.Context) {
	h.updatePost(c, true)
}

// updatePost checks ownership before looking at the payload, so strangers get 403 rather than 400.
func (h *Handler) updatePost(c *gin.Context, partial bool) {
	post, ok := h.postFromPath(c)
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	if post.AuthorID != user.ID {
		writeError(c, apperr.Forbidden("not the author"))
		return
	}
	payload, err := bindPost(c)
	if err != nil {
		writeError(c, err)
		return
	}
	updated, err := h.svc.Posts.Update(c.Request.Context(), post.ID, user, payload.merge(post, partial))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toPost(updated))
}

func (h *Handler) DeletePost(c *gin.Context) {
	post, ok := h.postFromPath(c)
	if !ok {
		return
	}
	if err := h.svc.Posts.Delete(c.Request.Context(), post.ID, middleware.CurrentUser(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
