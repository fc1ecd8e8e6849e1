package router

import (
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/yi-nology/s3_media_storage/biz/handler"
)

// RegisterMediaRoutes mounts the public media route under basePath and the
// management API under /api/v1/media.
func RegisterMediaRoutes(r *route.Engine, basePath string, h *handler.MediaHandler) {
	if h == nil {
		return
	}

	// Objects the adapter cannot serve fall through to the host's 404 page.
	r.GET(basePath+"/*filepath", h.Serve(), handler.NotFound)

	media := r.Group("/api/v1/media")
	media.GET("", h.ListAssets)
	media.GET("/exists", h.Exists)
	media.GET("/info", h.Info)
	media.POST("/upload", h.UploadFile)
	media.DELETE("/*filepath", h.DeleteFile)

	r.GET("/ping", handler.Ping)
	r.NoRoute(handler.NotFound)
}
