package api

import (
	"net/http"

	"yatube/internal/apperr"

	"github.com/gin-gonic/gin"
)

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// ObtainToken exchanges a username and password for an API token.
func (h *Handler) ObtainToken(c *gin.Context) {
	var in credentials
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "JSON parse error."})
		return
	}

	missing := map[string][]string{}
	if in.Username == "" {
		missing["username"] = []string{"This field is required."}
	}
	if in.Password == "" {
		missing["password"] = []string{"This field is required."}
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, missing)
		return
	}

	user, err := h.svc.Users.Authenticate(c.Request.Context(), in.Username, in.Password)
	if apperr.Is(err, apperr.KindUnauthorized) {
		c.JSON(http.StatusBadRequest, gin.H{"non_field_errors": []string{"Unable to log in with provided credentials."}})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.svc.Tokens.Issue(user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
