package s3

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

// PathParam is the wildcard route parameter holding the object key, as in
// "/content/images/*filepath". Without it the full request path is used.
const PathParam = "filepath"

// Serve returns the middleware streaming stored objects to clients. The same
// handler serves every request; each request is an independent pipe.
func (s *Storage) Serve() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		key := requestKey(c)

		out, err := s.getObject(ctx, key)
		if err != nil {
			if IsNotFound(err) {
				hlog.CtxWarnf(ctx, "[s3] serve %s: object not found", key)
			} else {
				hlog.CtxErrorf(ctx, "[s3] serve %s: %v", key, err)
			}
			c.SetStatusCode(consts.StatusNotFound)
			c.Next(ctx)
			return
		}

		// Metadata is final before the first body byte goes out.
		copyHeaders(c, out)
		size := -1
		if out.ContentLength != nil {
			size = int(*out.ContentLength)
		}
		c.SetStatusCode(consts.StatusOK)
		c.SetBodyStream(&streamBody{ctx: ctx, key: key, body: out.Body}, size)
		c.Abort()
	}
}

func (s *Storage) getObject(ctx context.Context, key string) (*s3.GetObjectOutput, error) {
	client, err := s.configuredClient()
	if err != nil {
		return nil, err
	}
	return client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
}

// requestKey strips one leading and one trailing slash from the request path.
func requestKey(c *app.RequestContext) string {
	p, ok := c.Params.Get(PathParam)
	if !ok {
		p = string(c.Request.URI().Path())
	}
	p = strings.TrimPrefix(p, "/")
	return strings.TrimSuffix(p, "/")
}

func copyHeaders(c *app.RequestContext, out *s3.GetObjectOutput) {
	h := &c.Response.Header
	if out.ContentType != nil {
		h.SetContentType(*out.ContentType)
	}
	set := func(name string, v *string) {
		if v != nil && *v != "" {
			h.Set(name, *v)
		}
	}
	set("Cache-Control", out.CacheControl)
	set("Content-Encoding", out.ContentEncoding)
	set("Content-Disposition", out.ContentDisposition)
	set("Content-Language", out.ContentLanguage)
	set("Content-Range", out.ContentRange)
	set("Accept-Ranges", out.AcceptRanges)
	set("ETag", out.ETag)
	if out.LastModified != nil {
		h.Set("Last-Modified", out.LastModified.UTC().Format(http.TimeFormat))
	}
	for k, v := range out.Metadata {
		h.Set("X-Amz-Meta-"+k, v)
	}
}

// streamBody logs a broken backend stream and closes it exactly once.
type streamBody struct {
	ctx  context.Context
	key  string
	body io.ReadCloser
	read int64
	once sync.Once
}

func (b *streamBody) Read(p []byte) (int, error) {
	n, err := b.body.Read(p)
	b.read += int64(n)
	if err != nil && !errors.Is(err, io.EOF) {
		hlog.CtxErrorf(b.ctx, "[s3] stream %s aborted after %d bytes: %v", b.key, b.read, err)
	}
	return n, err
}

func (b *streamBody) Close() error {
	var err error
	b.once.Do(func() {
		err = b.body.Close()
		hlog.CtxDebugf(b.ctx, "[s3] stream %s closed after %d bytes", b.key, b.read)
	})
	return err
}
