package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yi-nology/s3_media_storage/biz/dal/model"

	"gorm.io/gorm"
)

// AssetDAO handles CRUD operations for the media ledger.
type AssetDAO struct{}

func NewAssetDAO() *AssetDAO { return &AssetDAO{} }

func (dao *AssetDAO) Create(ctx context.Context, db *gorm.DB, asset *model.Asset) error {
	if asset == nil {
		return errors.New("asset must not be nil")
	}
	if asset.ObjectKey == "" {
		return errors.New("object_key is required")
	}
	if asset.FileID == "" {
		asset.FileID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(asset).Error
}

func (dao *AssetDAO) GetByObjectKey(ctx context.Context, db *gorm.DB, key string) (*model.Asset, error) {
	var asset model.Asset
	if err := db.WithContext(ctx).Where("object_key = ?", key).First(&asset).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (dao *AssetDAO) DeleteByObjectKey(ctx context.Context, db *gorm.DB, key string) error {
	result := db.WithContext(ctx).Unscoped().Where("object_key = ?", key).Delete(&model.Asset{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListRecent returns the newest assets first; limit <= 0 means 50.
func (dao *AssetDAO) ListRecent(ctx context.Context, db *gorm.DB, limit int) ([]model.Asset, error) {
	if limit <= 0 {
		limit = 50
	}
	var assets []model.Asset
	if err := db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}
