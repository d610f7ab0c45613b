package api

import (
	"errors"
	"net/http"

	"yatube/internal/apperr"
	"yatube/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError renders err in the REST error format: {"detail": ...} or field -> messages.
func writeError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal(err)
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		if len(appErr.Fields) > 0 {
			c.JSON(http.StatusBadRequest, appErr.FieldErrors())
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"detail": appErr.Message})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
	case apperr.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"detail": appErr.Message})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"detail": "You do not have permission to perform this action."})
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"detail": appErr.Message})
	default:
		_ = c.Error(err)
		logger.L().Error("api request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
	}
}
