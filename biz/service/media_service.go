package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/yi-nology/s3_media_storage/biz/dal/model"
	"github.com/yi-nology/s3_media_storage/pkg/common"
	"github.com/yi-nology/s3_media_storage/pkg/storage"
)

// UploadInput describes a file the host has already spooled to disk.
type UploadInput struct {
	TempPath    string
	FileName    string
	ContentType string
	Size        int64
	TargetDir   string
}

// UploadMedia validates the spooled file, stores it and records it in the
// ledger. The temp file is left for the caller to remove.
func (s *Service) UploadMedia(ctx context.Context, input *UploadInput) (*model.Asset, error) {
	if input == nil {
		return nil, ErrInputRequired
	}

	head, err := readHead(input.TempPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnreadableFile, err)
	}
	contentType, err := s.upload.Validate(input.Size, input.ContentType, head)
	if err != nil {
		return nil, err
	}

	url, err := s.adapter.Save(ctx, &storage.UploadRequest{
		Path:        input.TempPath,
		Name:        input.FileName,
		ContentType: contentType,
		TargetDir:   input.TargetDir,
	})
	if err != nil {
		return nil, err
	}

	asset := &model.Asset{
		ObjectKey:   s.keyOf(url),
		FileName:    input.FileName,
		ContentType: contentType,
		FileSize:    input.Size,
		URL:         url,
	}
	if err := s.logic.CreateAsset(ctx, asset); err != nil {
		// Rollback: delete uploaded object
		if delErr := s.adapter.Delete(ctx, asset.ObjectKey); delErr != nil {
			hlog.CtxWarnf(ctx, "[%s] rollback of %s failed: %v", common.GetRequestID(ctx), asset.ObjectKey, delErr)
		}
		return nil, fmt.Errorf("record asset: %w", err)
	}
	return asset, nil
}

// DeleteMedia removes the object and its ledger row. Objects stored before
// the ledger existed have no row; that is not an error.
func (s *Service) DeleteMedia(ctx context.Context, ref string) error {
	if ref == "" {
		return ErrInputRequired
	}
	key := s.keyOf(ref)
	if err := s.adapter.Delete(ctx, key); err != nil {
		return err
	}
	if err := s.logic.DeleteAsset(ctx, key); err != nil && !errors.Is(err, ErrAssetNotFound) {
		return fmt.Errorf("delete asset record: %w", err)
	}
	return nil
}

// GetMedia returns the ledger row for a key or public URL.
func (s *Service) GetMedia(ctx context.Context, ref string) (*model.Asset, error) {
	if ref == "" {
		return nil, ErrInputRequired
	}
	return s.logic.GetAsset(ctx, s.keyOf(ref))
}

// MediaExists asks the backend, not the ledger.
func (s *Service) MediaExists(ctx context.Context, ref string) (bool, error) {
	if ref == "" {
		return false, ErrInputRequired
	}
	return s.adapter.Exists(ctx, ref)
}

func (s *Service) ListMedia(ctx context.Context, limit int) ([]model.Asset, error) {
	return s.logic.ListRecentAssets(ctx, limit)
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
