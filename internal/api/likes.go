package api

import (
	"net/http"

	"yatube/internal/apperr"
	"yatube/internal/models"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

// likesJSON serializes likes with the like count of each like's post.
func (h *Handler) likesJSON(c *gin.Context, likes []models.Like) ([]likeJSON, error) {
	ids := make([]uint, 0, len(likes))
	for _, l := range likes {
		ids = append(ids, l.PostID)
	}
	counts, err := h.svc.Likes.CountsFor(c.Request.Context(), ids)
	if err != nil {
		return nil, err
	}
	out := make([]likeJSON, 0, len(likes))
	for _, l := range likes {
		out = append(out, likeJSON{ID: l.ID, Post: l.PostID, CountLikes: counts[l.PostID]})
	}
	return out, nil
}

func (h *Handler) ListLikes(c *gin.Context) {
	likes, err := h.svc.Likes.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out, err := h.likesJSON(c, likes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetLike(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		writeError(c, apperr.NotFound("like", c.Param("id")))
		return
	}
	like, err := h.svc.Likes.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	out, err := h.likesJSON(c, []models.Like{*like})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out[0])
}
