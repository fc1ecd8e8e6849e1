package handler

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/s3_media_storage/biz/service"
	"github.com/yi-nology/s3_media_storage/pkg/storage/s3"
	"github.com/yi-nology/s3_media_storage/pkg/validator"
)

// MediaHandler exposes upload, delete and lookup endpoints around the adapter.
type MediaHandler struct {
	service *service.Service
}

func NewMediaHandler(svc *service.Service) *MediaHandler {
	return &MediaHandler{service: svc}
}

// Serve is the media middleware registered on the public media route.
func (h *MediaHandler) Serve() app.HandlerFunc {
	return h.service.Adapter().Serve()
}

// UploadFile spools the multipart "file" field to a temp file, stores it and
// always removes the temp file afterwards.
func (h *MediaHandler) UploadFile(ctx context.Context, c *app.RequestContext) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		WriteBadRequest(c, err)
		return
	}

	tmp, err := os.CreateTemp("", "media-upload-*")
	if err != nil {
		WriteInternalError(c, err)
		return
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer func() {
		if err := os.Remove(tmpPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			hlog.CtxWarnf(ctx, "remove temp upload %s: %v", tmpPath, err)
		}
	}()

	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		WriteInternalError(c, err)
		return
	}

	asset, err := h.service.UploadMedia(ctx, &service.UploadInput{
		TempPath:    tmpPath,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		TargetDir:   string(c.FormValue("target_dir")),
	})
	if err != nil {
		writeMediaError(c, err)
		return
	}

	WriteOK(c, map[string]any{
		"asset": asset,
		"url":   asset.URL,
	})
}

// DeleteFile removes the object addressed by the media route wildcard.
func (h *MediaHandler) DeleteFile(ctx context.Context, c *app.RequestContext) {
	ref := c.Param(s3.PathParam)
	if ref == "" {
		ref = c.Query("ref")
	}
	if err := h.service.DeleteMedia(ctx, ref); err != nil {
		writeMediaError(c, err)
		return
	}
	WriteOK(c, map[string]any{"deleted": ref})
}

// Exists reports whether ?ref= (object key or public URL) is stored.
func (h *MediaHandler) Exists(ctx context.Context, c *app.RequestContext) {
	ref := c.Query("ref")
	ok, err := h.service.MediaExists(ctx, ref)
	if err != nil {
		writeMediaError(c, err)
		return
	}
	WriteOK(c, map[string]any{"ref": ref, "exists": ok})
}

// Info returns the ledger entry for ?ref= (object key or public URL).
func (h *MediaHandler) Info(ctx context.Context, c *app.RequestContext) {
	asset, err := h.service.GetMedia(ctx, c.Query("ref"))
	if err != nil {
		writeMediaError(c, err)
		return
	}
	WriteOK(c, map[string]any{"asset": asset})
}

// ListAssets returns the most recent ledger entries.
func (h *MediaHandler) ListAssets(ctx context.Context, c *app.RequestContext) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	assets, err := h.service.ListMedia(ctx, limit)
	if err != nil {
		WriteInternalError(c, err)
		return
	}
	WriteOK(c, map[string]any{"assets": assets})
}

func writeMediaError(c *app.RequestContext, err error) {
	switch {
	case errors.Is(err, service.ErrInputRequired),
		errors.Is(err, validator.ErrEmptyFile),
		errors.Is(err, validator.ErrFileTooLarge),
		errors.Is(err, validator.ErrMissingType),
		errors.Is(err, validator.ErrUnsupportedType):
		WriteBadRequest(c, err)
	case errors.Is(err, service.ErrAssetNotFound):
		WriteNotFound(c, err)
	default:
		WriteInternalError(c, err)
	}
}
