package handlers

import (
	"net/http"

	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *services.Services
}

func NewUserHandler(svc *services.Services) *UserHandler {
	return &UserHandler{svc: svc}
}

// Profile 用户主页: 帖子列表, 关注状态, 粉丝数
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := viewerID(c)

	author, feed, err := h.svc.Feeds.Profile(ctx, c.Param("username"), c.Query("page"), viewer)
	if err != nil {
		handleError(c, err)
		return
	}
	following, err := h.svc.Follows.IsFollowing(ctx, viewer, author.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	followers, followingCount, err := h.svc.Follows.Counts(ctx, author.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Title":          author.DisplayName(),
		"Profile":        author,
		"PageObj":        feed.Page,
		"Posts":          feed.Posts,
		"PostCount":      feed.Page.Total,
		"Following":      following,
		"IsSelf":         viewer == author.ID,
		"Followers":      followers,
		"FollowingCount": followingCount,
		"DaysSince":      utils.GetDaysSinceJoined(author.CreatedAt),
		"ShowGroup":      true,
	})
}
