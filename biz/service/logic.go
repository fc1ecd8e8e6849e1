package service

import (
	"context"
	"errors"

	"github.com/yi-nology/s3_media_storage/biz/dal/db"
	"github.com/yi-nology/s3_media_storage/biz/dal/model"
	"gorm.io/gorm"
)

// Logic contains ledger rules on top of data persistence.
type Logic struct {
	db       *gorm.DB
	assetDAO *db.AssetDAO
}

func NewLogic(dbConn *gorm.DB) *Logic {
	return &Logic{
		db:       dbConn,
		assetDAO: db.NewAssetDAO(),
	}
}

func (l *Logic) CreateAsset(ctx context.Context, asset *model.Asset) error {
	return l.assetDAO.Create(ctx, l.db, asset)
}

func (l *Logic) GetAsset(ctx context.Context, key string) (*model.Asset, error) {
	asset, err := l.assetDAO.GetByObjectKey(ctx, l.db, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	return asset, err
}

func (l *Logic) DeleteAsset(ctx context.Context, key string) error {
	err := l.assetDAO.DeleteByObjectKey(ctx, l.db, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAssetNotFound
	}
	return err
}

func (l *Logic) ListRecentAssets(ctx context.Context, limit int) ([]model.Asset, error) {
	return l.assetDAO.ListRecent(ctx, l.db, limit)
}
