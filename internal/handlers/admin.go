package handlers

import (
	"net/http"

	"yatube/internal/models"
	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler is the staff-only group management page.
type AdminHandler struct {
	svc *services.Services
}

func NewAdminHandler(svc *services.Services) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// checkAdmin returns the current user when they are staff.
func (h *AdminHandler) checkAdmin(c *gin.Context) *models.User {
	user := mustUser(c)
	if user == nil || !user.IsStaff {
		return nil
	}
	return user
}

func (h *AdminHandler) render(c *gin.Context, code int, obj gin.H) {
	groups, err := h.svc.Groups.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	if obj == nil {
		obj = gin.H{}
	}
	obj["Title"] = "Manage groups"
	obj["Groups"] = groups
	Render(c, code, "admin/groups.html", obj)
}

func (h *AdminHandler) ListGroups(c *gin.Context) {
	if h.checkAdmin(c) == nil {
		RenderError(c, http.StatusForbidden, "Staff only")
		return
	}
	h.render(c, http.StatusOK, nil)
}

// CreateGroup 新建分组
func (h *AdminHandler) CreateGroup(c *gin.Context) {
	if h.checkAdmin(c) == nil {
		RenderError(c, http.StatusForbidden, "Staff only")
		return
	}
	title, slug, description := c.PostForm("title"), c.PostForm("slug"), c.PostForm("description")

	group, err := h.svc.Groups.Create(c.Request.Context(), title, slug, description)
	if fields, ok := fieldErrors(err); ok {
		h.render(c, http.StatusBadRequest, gin.H{
			"FormErrors":  fields,
			"FormTitle":   title,
			"Slug":        slug,
			"Description": description,
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}
	Flash(c, "Group \""+group.Title+"\" created.")
	c.Redirect(http.StatusFound, "/admin/groups/")
}
