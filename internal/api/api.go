// Package api serves the JSON REST interface under /api/v1.
package api

import (
	"yatube/internal/middleware"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc      *services.Services
	mediaURL string
}

func NewHandler(svc *services.Services, mediaURL string) *Handler {
	return &Handler{svc: svc, mediaURL: mediaURL}
}

// Register mounts the API on rg. Everything except token issuance requires a token.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/api-token-auth/", h.ObtainToken)

	auth := rg.Group("")
	auth.Use(middleware.TokenAuth(h.svc.Tokens, h.svc.Users))
	{
		auth.GET("/groups/", h.ListGroups)
		auth.GET("/groups/:id/", h.GetGroup)

		auth.GET("/posts/", h.ListPosts)
		auth.POST("/posts/", h.CreatePost)
		auth.GET("/posts/:post_id/", h.GetPost)
		auth.PUT("/posts/:post_id/", h.UpdatePost)
		auth.PATCH("/posts/:post_id/", h.PartialUpdatePost)
		auth.DELETE("/posts/:post_id/", h.DeletePost)

		auth.GET("/posts/:post_id/comments/", h.ListComments)
		auth.POST("/posts/:post_id/comments/", h.CreateComment)
		auth.GET("/posts/:post_id/comments/:id/", h.GetComment)
		auth.PUT("/posts/:post_id/comments/:id/", h.UpdateComment)
		auth.PATCH("/posts/:post_id/comments/:id/", h.UpdateComment)
		auth.DELETE("/posts/:post_id/comments/:id/", h.DeleteComment)

		auth.GET("/likes/", h.ListLikes)
		auth.GET("/likes/:id/", h.GetLike)
	}
}
