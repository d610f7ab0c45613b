package handlers

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// 盗链提醒 SVG 图片
const hotlinkSVG = `<svg width="200" height="200" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%" height="100%" fill="#f8f9fa"/>
  <text x="50%" y="50%" font-family="Arial" font-size="14" fill="#6c757d" text-anchor="middle">
    Images are for Yatube pages only
  </text>
</svg>`

// ImageHandler serves uploaded post images from the media root.
type ImageHandler struct {
	mediaRoot string
}

func NewImageHandler(mediaRoot string) *ImageHandler {
	return &ImageHandler{mediaRoot: mediaRoot}
}

// Serve handles GET <MEDIA_URL>*filepath.
func (h *ImageHandler) Serve(c *gin.Context) {
	rel := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")
	if rel == "" || !strings.HasPrefix(rel, "posts/") {
		c.Status(http.StatusNotFound)
		return
	}

	if !isAllowedRequest(c) {
		c.Header("Content-Type", "image/svg+xml")
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.String(http.StatusOK, hotlinkSVG)
		return
	}

	// 文件名是 uuid, 内容不会变, 缓存 7 天
	c.Header("Cache-Control", "public, max-age=604800")
	c.Header("Vary", "Sec-Fetch-Site, Sec-Fetch-Mode")
	c.File(filepath.Join(h.mediaRoot, filepath.FromSlash(rel)))
}

// isAllowedRequest 使用 Sec-Fetch-* 头部检测是否为合法请求
func isAllowedRequest(c *gin.Context) bool {
	switch c.GetHeader("Sec-Fetch-Site") {
	// 旧浏览器或直接访问 / 同源 / 同站 / 地址栏
	case "", "same-origin", "same-site", "none":
		return true
	}
	// 允许在新标签页打开图片
	return c.GetHeader("Sec-Fetch-Mode") == "navigate"
}
