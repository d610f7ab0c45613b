package handlers

import (
	"net/http"

	"yatube/internal/apperr"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

// FollowHandler 关注 / 取消关注
type FollowHandler struct {
	svc *services.Services
}

func NewFollowHandler(svc *services.Services) *FollowHandler {
	return &FollowHandler{svc: svc}
}

func profileURL(username string) string {
	return "/profile/" + username + "/"
}

func (h *FollowHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	_, err := h.svc.Follows.Follow(c.Request.Context(), mustUser(c), username)
	switch {
	case apperr.Is(err, apperr.KindConflict):
		Flash(c, "You cannot follow yourself.")
	case err != nil:
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(username))
}

// Unfollow is a no-op when there is nothing to undo.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	if err := h.svc.Follows.Unfollow(c.Request.Context(), mustUser(c), username); err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, profileURL(username))
}
