package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"yatube/internal/apperr"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

// PostHandler serves the feeds, post pages and the post form.
type PostHandler struct {
	svc *services.Services
}

func NewPostHandler(svc *services.Services) *PostHandler {
	return &PostHandler{svc: svc}
}

func postURL(id uint) string {
	return fmt.Sprintf("/posts/%d/", id)
}

// Index 首页 - 所有帖子
func (h *PostHandler) Index(c *gin.Context) {
	feed, err := h.svc.Feeds.Index(c.Request.Context(), c.Query("page"), viewerID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/index.html", gin.H{
		"Title":     "Latest posts",
		"PageObj":   feed.Page,
		"Posts":     feed.Posts,
		"ShowGroup": true,
	})
}

// GroupPosts 分组下的帖子列表
func (h *PostHandler) GroupPosts(c *gin.Context) {
	group, feed, err := h.svc.Feeds.Group(c.Request.Context(), c.Param("slug"), c.Query("page"), viewerID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Title":   group.Title,
		"Group":   group,
		"PageObj": feed.Page,
		"Posts":   feed.Posts,
	})
}

// FollowIndex lists posts by the authors the current user follows.
func (h *PostHandler) FollowIndex(c *gin.Context) {
	feed, err := h.svc.Feeds.Follow(c.Request.Context(), viewerID(c), c.Query("page"))
	if err != nil {
		handleError(c, err)
		return
	}
	Render(c, http.StatusOK, "posts/follow.html", gin.H{
		"Title":     "Following",
		"PageObj":   feed.Page,
		"Posts":     feed.Posts,
		"ShowGroup": true,
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return
	}
	ctx := c.Request.Context()

	post, err := h.svc.Posts.Get(ctx, id)
	if err != nil {
		handleError(c, err)
		return
	}
	h.renderDetail(c, post)
}

// renderDetail 渲染帖子详情: 评论, 作者帖子数, 点赞状态
func (h *PostHandler) renderDetail(c *gin.Context, post *models.Post) {
	ctx := c.Request.Context()
	viewer := viewerID(c)

	comments, err := h.svc.Comments.ListForPost(ctx, post.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	authorPosts, err := h.svc.Posts.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		handleError(c, err)
		return
	}
	likeCount, err := h.svc.Likes.CountLikes(ctx, post.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	likeID, liked, err := h.svc.Likes.LikeID(ctx, post.ID, viewer)
	if err != nil {
		handleError(c, err)
		return
	}
	post.LikeCount = likeCount
	post.Liked = liked
	post.LikeID = likeID
	post.CommentCount = int64(len(comments))

	Render(c, http.StatusOK, "posts/post_detail.html", gin.H{
		"Title":       utils.Excerpt(post.Text, 30),
		"Post":        post,
		"Comments":    comments,
		"AuthorPosts": authorPosts,
		"IsAuthor":    viewer != 0 && viewer == post.AuthorID,
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	h.renderForm(c, http.StatusOK, nil, services.PostInput{}, nil)
}

func (h *PostHandler) Create(c *gin.Context) {
	user := mustUser(c)
	in := bindPostForm(c)

	_, err := h.svc.Posts.Create(c.Request.Context(), user, in)
	if fields, ok := fieldErrors(err); ok {
		h.renderForm(c, http.StatusBadRequest, nil, in, fields)
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// ShowEdit 编辑页面; 非作者直接跳回详情页
func (h *PostHandler) ShowEdit(c *gin.Context) {
	post, ok := h.editablePost(c)
	if !ok {
		return
	}
	h.renderForm(c, http.StatusOK, post, services.PostInput{Text: post.Text, GroupID: post.GroupID}, nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	post, ok := h.editablePost(c)
	if !ok {
		return
	}
	in := bindPostForm(c)

	_, err := h.svc.Posts.Update(c.Request.Context(), post.ID, mustUser(c), in)
	if fields, ok := fieldErrors(err); ok {
		h.renderForm(c, http.StatusBadRequest, post, in, fields)
		return
	}
	if apperr.Is(err, apperr.KindForbidden) {
		c.Redirect(http.StatusFound, postURL(post.ID))
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}

// Delete removes a post and returns to the author's profile.
func (h *PostHandler) Delete(c *gin.Context) {
	post, ok := h.editablePost(c)
	if !ok {
		return
	}
	user := mustUser(c)
	if err := h.svc.Posts.Delete(c.Request.Context(), post.ID, user); err != nil {
		handleError(c, err)
		return
	}
	Flash(c, "Post deleted.")
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// editablePost loads the post from the URL and makes sure the current user wrote it.
// Anyone else is sent to the read-only page.
func (h *PostHandler) editablePost(c *gin.Context) (*models.Post, bool) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return nil, false
	}
	post, err := h.svc.Posts.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	if post.AuthorID != mustUser(c).ID {
		c.Redirect(http.StatusFound, postURL(post.ID))
		return nil, false
	}
	return post, true
}

func (h *PostHandler) renderForm(c *gin.Context, code int, post *models.Post, in services.PostInput, formErrors map[string]string) {
	groups, err := h.svc.Groups.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	var selected uint
	if in.GroupID != nil {
		selected = *in.GroupID
	}
	title := "New post"
	if post != nil {
		title = "Edit post"
	}
	Render(c, code, "posts/create_post.html", gin.H{
		"Title":      title,
		"IsEdit":     post != nil,
		"Post":       post,
		"Text":       in.Text,
		"GroupID":    selected,
		"Groups":     groups,
		"FormErrors": formErrors,
	})
}

// bindPostForm reads text, group, image and image-clear from a multipart or urlencoded form.
func bindPostForm(c *gin.Context) services.PostInput {
	in := services.PostInput{
		Text:       c.PostForm("text"),
		ClearImage: c.PostForm("image-clear") != "",
	}
	if raw := strings.TrimSpace(c.PostForm("group")); raw != "" {
		// 非法 id 交给 service 报 "group" 字段错误
		id, _ := utils.ParseID(raw)
		in.GroupID = &id
	}
	if fh, err := c.FormFile("image"); err == nil && fh.Size > 0 {
		in.Image = fh
	}
	return in
}

// CommentForm sends GET requests for the comment action to the post, where the form lives.
func (h *PostHandler) CommentForm(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return
	}
	c.Redirect(http.StatusFound, postURL(id))
}

// AddComment stores a comment. Blank comments are dropped silently and the post is shown again.
func (h *PostHandler) AddComment(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("post_id"))
	if !ok {
		NotFound(c)
		return
	}
	_, err := h.svc.Comments.Create(c.Request.Context(), id, mustUser(c), c.PostForm("text"))
	if err != nil && !apperr.Is(err, apperr.KindValidation) {
		handleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, postURL(id))
}
