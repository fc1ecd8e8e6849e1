package middleware

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/yi-nology/s3_media_storage/pkg/common"
)

// Recovery returns a middleware that recovers from panics and logs the error.
// Register it after Logging so the log line carries the request ID.
func Recovery() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				hlog.CtxErrorf(ctx, "[%s] panic recovered: %v\n%s", common.GetRequestID(ctx), err, string(stack))

				c.AbortWithStatusJSON(consts.StatusInternalServerError, common.CommonResponse{
					Code:  consts.StatusInternalServerError,
					Msg:   "internal error",
					Error: fmt.Sprintf("%v", err),
				})
			}
		}()

		c.Next(ctx)
	}
}
