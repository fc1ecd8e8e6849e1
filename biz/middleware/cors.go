package middleware

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/s3_media_storage/pkg/config"
)

// exposedHeaders lets browser clients read media metadata.
const exposedHeaders = "Content-Length,Content-Type,ETag,Last-Modified," + RequestIDHeader

// CORS returns a middleware that handles Cross-Origin Resource Sharing.
// AllowOrigin may be "*" or a comma separated list of origins.
func CORS(cfg *config.CORSConfig) app.HandlerFunc {
	allowMethods := "GET,POST,DELETE,OPTIONS"
	allowHeaders := "*"
	allowCredentials := false
	var origins []string

	if cfg != nil {
		for _, o := range strings.Split(cfg.AllowOrigin, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if cfg.AllowMethods != "" {
			allowMethods = cfg.AllowMethods
		}
		if cfg.AllowHeaders != "" {
			allowHeaders = cfg.AllowHeaders
		}
		allowCredentials = cfg.AllowCredentials
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return func(ctx context.Context, c *app.RequestContext) {
		origin := allowedOrigin(origins, string(c.GetHeader("Origin")))
		if origin != "" {
			h := &c.Response.Header
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Expose-Headers", exposedHeaders)
			if allowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			if origin != "*" {
				h.Add("Vary", "Origin")
			}
		}

		if string(c.Request.Method()) == consts.MethodOptions {
			c.AbortWithStatus(consts.StatusNoContent)
			return
		}

		c.Next(ctx)
	}
}

func allowedOrigin(origins []string, requestOrigin string) string {
	for _, o := range origins {
		if o == "*" {
			return "*"
		}
		if requestOrigin != "" && strings.EqualFold(o, requestOrigin) {
			return requestOrigin
		}
	}
	return ""
}
