package api

import (
	"net/http"

	"yatube/internal/apperr"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

type commentPayload struct {
	Text *string `json:"text" form:"text"`
}

func postID(c *gin.Context) (uint, bool) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		writeError(c, apperr.NotFound("post", c.Param("post_id")))
	}
	return id, ok
}

func (h *Handler) ListComments(c *gin.Context) {
	pid, ok := postID(c)
	if !ok {
		return
	}
	comments, err := h.svc.Comments.ListForPost(c.Request.Context(), pid)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]commentJSON, 0, len(comments))
	for i := range comments {
		out = append(out, toComment(&comments[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateComment(c *gin.Context) {
	pid, ok := postID(c)
	if !ok {
		return
	}
	var in commentPayload
	if err := c.ShouldBind(&in); err != nil {
		writeError(c, apperr.Validation("non_field_errors", "Invalid data."))
		return
	}
	text := ""
	if in.Text != nil {
		text = *in.Text
	}
	comment, err := h.svc.Comments.Create(c.Request.Context(), pid, middleware.CurrentUser(c), text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toComment(comment))
}

func (h *Handler) commentFromPath(c *gin.Context) (*models.Comment, bool) {
	pid, ok := postID(c)
	if !ok {
		return nil, false
	}
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		writeError(c, apperr.NotFound("comment", c.Param("id")))
		return nil, false
	}
	comment, err := h.svc.Comments.Get(c.Request.Context(), pid, id)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return comment, true
}

func (h *Handler) GetComment(c *gin.Context) {
	comment, ok := h.commentFromPath(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toComment(comment))
}

// UpdateComment serves both PUT and PATCH; text is the only writable field.
func (h *Handler) UpdateComment(c *gin.Context) {
	comment, ok := h.commentFromPath(c)
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)
	if comment.AuthorID != user.ID {
		writeError(c, apperr.Forbidden("not the author"))
		return
	}
	var in commentPayload
	if err := c.ShouldBind(&in); err != nil {
		writeError(c, apperr.Validation("non_field_errors", "Invalid data."))
		return
	}
	text := comment.Text
	if in.Text != nil {
		text = *in.Text
	} else if c.Request.Method == http.MethodPut {
		text = ""
	}

	updated, err := h.svc.Comments.Update(c.Request.Context(), comment.PostID, comment.ID, user, text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toComment(updated))
}

func (h *Handler) DeleteComment(c *gin.Context) {
	comment, ok := h.commentFromPath(c)
	if !ok {
		return
	}
	if err := h.svc.Comments.Delete(c.Request.Context(), comment.PostID, comment.ID, middleware.CurrentUser(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
