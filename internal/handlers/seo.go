package handlers

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"yatube/internal/services"

	"github.com/gin-gonic/gin"
)

const sitemapPostLimit = 1000

type SEOHandler struct {
	svc *services.Services
}

func NewSEOHandler(svc *services.Services) *SEOHandler {
	return &SEOHandler{svc: svc}
}

// siteURL 根据请求推断站点地址
func siteURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /auth/
Disallow: /create/
Disallow: /follow/
Disallow: /likes/
Disallow: /api/

Sitemap: %s/sitemap.xml
`, siteURL(c))

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML lists the home page, every group and the newest posts.
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	ctx := c.Request.Context()
	base := siteURL(c)

	groups, err := h.svc.Groups.List(ctx)
	if err != nil {
		handleError(c, err)
		return
	}
	posts, err := h.svc.Posts.Recent(ctx, sitemapPostLimit)
	if err != nil {
		handleError(c, err)
		return
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	writeURL := func(loc string, lastmod time.Time, freq, priority string) {
		b.WriteString("  <url>\n")
		fmt.Fprintf(&b, "    <loc>%s</loc>\n", html.EscapeString(base+loc))
		if !lastmod.IsZero() {
			fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", lastmod.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "    <changefreq>%s</changefreq>\n    <priority>%s</priority>\n  </url>\n", freq, priority)
	}

	writeURL("/", time.Now(), "hourly", "1.0")
	writeURL("/groups/", time.Time{}, "weekly", "0.8")
	for _, g := range groups {
		writeURL("/group/"+g.Slug+"/", time.Time{}, "daily", "0.7")
	}
	for _, p := range posts {
		writeURL(postURL(p.ID), p.UpdatedAt, "weekly", "0.6")
	}
	b.WriteString("</urlset>\n")

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, b.String())
}
