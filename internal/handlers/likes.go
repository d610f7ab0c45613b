package handlers

import (
	"net/http"
	"strings"

	"yatube/internal/logger"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LikeHandler handles the like buttons on feed and detail pages.
type LikeHandler struct {
	svc *services.Services
}

func NewLikeHandler(svc *services.Services) *LikeHandler {
	return &LikeHandler{svc: svc}
}

// Add likes post_id as the session user. An explicit user_id must be that same user.
func (h *LikeHandler) Add(c *gin.Context) {
	user := mustUser(c)
	postID, ok := utils.ParseID(c.PostForm("post_id"))
	if !ok {
		NotFound(c)
		return
	}
	if raw := strings.TrimSpace(c.PostForm("user_id")); raw != "" {
		if id, ok := utils.ParseID(raw); !ok || id != user.ID {
			RenderError(c, http.StatusForbidden, "You can only like posts as yourself")
			return
		}
	}

	if _, err := h.svc.Likes.AddLike(c.Request.Context(), postID, user.ID); err != nil {
		handleError(c, err)
		return
	}
	redirectBack(c, c.PostForm("url_from"), postURL(postID))
}

// Remove deletes a like by id. Ownership is not enforced; a mismatch is only logged.
func (h *LikeHandler) Remove(c *gin.Context) {
	raw := c.PostForm("like_id")
	if raw == "" {
		raw = c.PostForm("post_likes_id")
	}
	likeID, ok := utils.ParseID(raw)
	if !ok {
		NotFound(c)
		return
	}
	ctx := c.Request.Context()

	like, err := h.svc.Likes.Get(ctx, likeID)
	if err != nil {
		handleError(c, err)
		return
	}
	if user := mustUser(c); like.UserID != user.ID {
		logger.L().Warn("like removed by non-owner",
			zap.Uint("like_id", like.ID), zap.Uint("owner_id", like.UserID), zap.Uint("user_id", user.ID))
	}
	if err := h.svc.Likes.RemoveLike(ctx, likeID); err != nil {
		handleError(c, err)
		return
	}
	redirectBack(c, c.PostForm("url_from"), postURL(like.PostID))
}
