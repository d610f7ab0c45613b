package handlers

import (
	"errors"
	"net/http"

	"yatube/internal/apperr"
	"yatube/internal/logger"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["CurrentPath"] = c.Request.URL.Path

	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		obj["Flashes"] = flashes
		_ = session.Save()
	}

	c.HTML(code, name, obj)
}

// Flash queues a one-off message for the next rendered page.
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	_ = session.Save()
}

// RenderError renders the error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message, "Code": code})
}

// NotFound is the NoRoute handler.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found")
}

// handleError maps service errors to pages. Validation errors are handled by the caller.
func handleError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		RenderError(c, http.StatusNotFound, "Page not found")
	case apperr.KindUnauthorized:
		redirectToLogin(c)
	case apperr.KindForbidden:
		RenderError(c, http.StatusForbidden, "You do not have permission to do that")
	case apperr.KindValidation, apperr.KindConflict:
		RenderError(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		logger.L().Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		RenderError(c, http.StatusInternalServerError, "Something went wrong")
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.LoginRedirectURL(c.Request.URL.RequestURI()))
}

func viewerID(c *gin.Context) uint {
	if user := middleware.CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// mustUser is only called behind AuthRequired.
func mustUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}

// fieldErrors extracts per-field messages from a validation error.
func fieldErrors(err error) (map[string]string, bool) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		return nil, false
	}
	return appErr.Fields, true
}

// redirectBack sends the user to target when it is a local path, else to the referer, else fallback.
func redirectBack(c *gin.Context, target, fallback string) {
	switch {
	case utils.IsLocalPath(target):
		c.Redirect(http.StatusFound, target)
	case utils.IsLocalPath(middleware.RefererPath(c)):
		c.Redirect(http.StatusFound, middleware.RefererPath(c))
	default:
		c.Redirect(http.StatusFound, fallback)
	}
}
