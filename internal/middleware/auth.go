package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	CheckUserKey   = "user"
	SessionUserKey = "user_id"
	LoginURL       = "/auth/login/"
)

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(CheckUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// LoadUser retrieves user from session and sets to context
func LoadUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id, ok := session.Get(SessionUserKey).(uint); ok && id != 0 {
			user, err := users.GetByID(c.Request.Context(), id)
			if err == nil {
				c.Set(CheckUserKey, user)
			} else {
				// 用户已被删除, 清理失效的会话
				session.Delete(SessionUserKey)
				_ = session.Save()
			}
		}
		c.Next()
	}
}

// LoginRedirectURL builds the login URL carrying next. Slashes stay readable: /auth/login/?next=/follow/
func LoginRedirectURL(next string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// AuthRequired sends anonymous visitors to the login page, remembering where they were going.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginRedirectURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthRequiredBack guards form actions that have no page of their own, such as the
// like buttons. After login the visitor returns to the form's url_from or the page
// the form was posted from, never to the action itself.
func AuthRequiredBack() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			next := c.PostForm("url_from")
			if !utils.IsLocalPath(next) {
				next = RefererPath(c)
			}
			if !utils.IsLocalPath(next) {
				next = "/"
			}
			c.Redirect(http.StatusFound, LoginRedirectURL(next))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RefererPath returns the path of a same-host Referer header.
func RefererPath(c *gin.Context) string {
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Path == "" {
		return ""
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return ""
	}
	return ref.RequestURI()
}

// TokenAuth authenticates API requests with "Authorization: Bearer <jwt>" (or "Token <jwt>").
// Every API resource requires authentication.
func TokenAuth(tokens *services.TokenService, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, raw, found := strings.Cut(header, " ")
		if !found || (!strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token")) || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
			return
		}

		id, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token."})
			return
		}
		user, err := users.GetByID(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "User not found."})
			return
		}
		c.Set(CheckUserKey, user)
		c.Next()
	}
}
