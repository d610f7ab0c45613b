package api

import (
	"net/http"

	"yatube/internal/apperr"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.svc.Groups.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]groupJSON, 0, len(groups))
	for i := range groups {
		out = append(out, toGroup(&groups[i].Group))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetGroup(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		writeError(c, apperr.NotFound("group", c.Param("id")))
		return
	}
	group, err := h.svc.Groups.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroup(group))
}
