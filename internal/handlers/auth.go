package handlers

import (
	"net/http"

	"yatube/internal/apperr"
	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const captchaKey = "captcha_answer"

type AuthHandler struct {
	svc *services.Services
}

func NewAuthHandler(svc *services.Services) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// renderSignup issues a fresh captcha each time the form is shown.
func (h *AuthHandler) renderSignup(c *gin.Context, code int, obj gin.H) {
	question, answer := h.svc.Captcha.GenerateMathProblem()
	session := sessions.Default(c)
	session.Set(captchaKey, answer)
	_ = session.Save()

	if obj == nil {
		obj = gin.H{}
	}
	obj["Title"] = "Sign up"
	obj["Captcha"] = question
	Render(c, code, "auth/signup.html", obj)
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	h.renderSignup(c, http.StatusOK, nil)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	in := services.SignupInput{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
	}
	form := gin.H{"Username": in.Username, "Email": in.Email, "FirstName": in.FirstName, "LastName": in.LastName}

	// Validate Captcha
	session := sessions.Default(c)
	expected, ok := session.Get(captchaKey).(int)
	if !ok || utils.StringToInt(c.PostForm("captcha")) != expected {
		form["FormErrors"] = map[string]string{"captcha": "Wrong answer."}
		h.renderSignup(c, http.StatusBadRequest, form)
		return
	}
	session.Delete(captchaKey)

	user, err := h.svc.Users.Register(c.Request.Context(), in)
	if fields, ok := fieldErrors(err); ok {
		form["FormErrors"] = fields
		h.renderSignup(c, http.StatusBadRequest, form)
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	session.Set(middleware.SessionUserKey, user.ID)
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Log in", "Next": c.Query("next")})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	next := c.PostForm("next")

	user, err := h.svc.Users.Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if apperr.Is(err, apperr.KindUnauthorized) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title":    "Log in",
			"Error":    "Please enter a correct username and password.",
			"Username": username,
			"Next":     next,
		})
		return
	}
	if err != nil {
		handleError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	_ = session.Save()

	if utils.IsLocalPath(next) {
		c.Redirect(http.StatusFound, next)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Set(middleware.CheckUserKey, nil)
	Render(c, http.StatusOK, "auth/logged_out.html", gin.H{"Title": "Logged out"})
}
