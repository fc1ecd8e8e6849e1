package service

import (
	"errors"

	"github.com/yi-nology/s3_media_storage/pkg/storage"
	"github.com/yi-nology/s3_media_storage/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrInputRequired = errors.New("input required")
)

// KeyFunc maps an object key or public URL to the object key.
type KeyFunc func(ref string) string

// Service orchestrates media operations: the storage adapter persists
// bytes, Logic keeps the ledger in step.
type Service struct {
	adapter storage.Adapter
	keyOf   KeyFunc
	upload  *validator.UploadConfig
	logic   *Logic
}

func NewService(db *gorm.DB, adapter storage.Adapter, keyOf KeyFunc, upload *validator.UploadConfig) *Service {
	if upload == nil {
		upload = validator.DefaultUploadConfig()
	}
	return &Service{
		adapter: adapter,
		keyOf:   keyOf,
		upload:  upload,
		logic:   NewLogic(db),
	}
}

// Adapter exposes the storage adapter for route registration.
func (s *Service) Adapter() storage.Adapter {
	return s.adapter
}
