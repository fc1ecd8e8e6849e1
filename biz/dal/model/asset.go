package model

import (
	"time"

	"gorm.io/gorm"
)

// Asset records one object stored through the media adapter.
type Asset struct {
	ID          uint           `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt   time.Time      `json:"created_at,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at,omitempty"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	FileID      string         `gorm:"column:file_id;uniqueIndex:idx_asset_file" json:"file_id,omitempty"`
	ObjectKey   string         `gorm:"column:object_key;type:varchar(1024);uniqueIndex:idx_asset_key" json:"object_key,omitempty"`
	FileName    string         `gorm:"column:file_name" json:"file_name,omitempty"`
	ContentType string         `gorm:"column:content_type" json:"content_type,omitempty"`
	FileSize    int64          `gorm:"column:file_size" json:"file_size,omitempty"`
	URL         string         `gorm:"column:url;type:text" json:"url,omitempty"`
}

// TableName overrides gorm to use asset table.
func (Asset) TableName() string {
	return "asset"
}
