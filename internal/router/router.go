package router

import (
	"io/fs"
	"net/http"
	"strings"

	"yatube/internal/api"
	"yatube/internal/config"
	"yatube/internal/handlers"
	"yatube/internal/metrics"
	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/web"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "yatube_session"

// New builds the engine with templates, sessions and every route.
func New(cfg *config.Config, svc *services.Services) (*gin.Engine, error) {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger(), metrics.Middleware())
	// 图片已经是压缩格式, /metrics 由 prometheus 自行协商
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{"^" + strings.TrimSuffix(cfg.MediaURL, "/") + "/", "^/metrics"})))

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 14 * 24 * 3600, HttpOnly: true, Secure: cfg.IsProduction()})
	r.Use(sessions.Sessions(sessionName, store))

	renderer, err := loadTemplates(web.FS, funcMap(cfg))
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))

	imageHandler := handlers.NewImageHandler(cfg.MediaRoot)
	r.GET(strings.TrimSuffix(cfg.MediaURL, "/")+"/*filepath", imageHandler.Serve)

	r.GET("/metrics", metrics.Handler())
	api.NewHandler(svc, cfg.MediaURL).Register(r.Group("/api/v1"))

	pages := r.Group("/")
	pages.Use(middleware.LoadUser(svc.Users))
	registerRoutes(pages, svc)
	r.NoRoute(middleware.LoadUser(svc.Users), handlers.NotFound)

	return r, nil
}

func registerRoutes(r *gin.RouterGroup, svc *services.Services) {
	// Handlers
	authHandler := handlers.NewAuthHandler(svc)
	postHandler := handlers.NewPostHandler(svc)
	userHandler := handlers.NewUserHandler(svc)
	groupHandler := handlers.NewGroupHandler(svc)
	followHandler := handlers.NewFollowHandler(svc)
	likeHandler := handlers.NewLikeHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc)
	seoHandler := handlers.NewSEOHandler(svc)

	// 公共路由 (Public Routes)
	r.GET("/", postHandler.Index)                     // 首页 - 最新帖子
	r.GET("/group/:slug/", postHandler.GroupPosts)    // 分组下的帖子
	r.GET("/groups/", groupHandler.List)              // 所有分组
	r.GET("/profile/:username/", userHandler.Profile) // 用户主页
	r.GET("/posts/:post_id/", postHandler.Detail)     // 帖子详情页
	r.GET("/about/author/", handlers.AboutAuthor)
	r.GET("/about/tech/", handlers.AboutTech)
	r.GET("/robots.txt", seoHandler.RobotsTxt)
	r.GET("/sitemap.xml", seoHandler.SitemapXML)

	r.GET("/auth/signup/", authHandler.ShowSignup) // 注册页面
	r.POST("/auth/signup/", authHandler.Signup)    // 提交注册
	r.GET("/auth/login/", authHandler.ShowLogin)   // 登录页面
	r.POST("/auth/login/", authHandler.Login)      // 提交登录
	r.GET("/auth/logout/", authHandler.Logout)     // 退出登录
	r.POST("/auth/logout/", authHandler.Logout)

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create/", postHandler.ShowCreate)                  // 发帖页面
		authorized.POST("/create/", postHandler.Create)                     // 提交新帖
		authorized.GET("/posts/:post_id/edit/", postHandler.ShowEdit)       // 编辑页面
		authorized.POST("/posts/:post_id/edit/", postHandler.Update)        // 提交编辑
		authorized.POST("/posts/:post_id/delete/", postHandler.Delete)      // 删除帖子
		authorized.GET("/posts/:post_id/comment/", postHandler.CommentForm) // 评论表单在详情页
		authorized.POST("/posts/:post_id/comment/", postHandler.AddComment) // 发表评论

		authorized.GET("/follow/", postHandler.FollowIndex) // 关注的作者的帖子
		authorized.GET("/profile/:username/follow/", followHandler.Follow)
		authorized.POST("/profile/:username/follow/", followHandler.Follow)
		authorized.GET("/profile/:username/unfollow/", followHandler.Unfollow)
		authorized.POST("/profile/:username/unfollow/", followHandler.Unfollow)

		authorized.GET("/admin/groups/", adminHandler.ListGroups)
		authorized.POST("/admin/groups/", adminHandler.CreateGroup)
	}

	likes := r.Group("/likes")
	likes.Use(middleware.AuthRequiredBack())
	{
		likes.POST("/add/", likeHandler.Add)       // 点赞
		likes.POST("/remove/", likeHandler.Remove) // 取消点赞
	}
}