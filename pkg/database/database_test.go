package database

import (
	"path/filepath"
	"testing"

	"github.com/yi-nology/s3_media_storage/pkg/config"
)

type probe struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "media.db")
	db, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		SQLite: config.SQLiteConfig{Path: path},
	}, &probe{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !db.Migrator().HasTable(&probe{}) {
		t.Fatalf("expected probe table to be migrated")
	}
	sqlDB, _ := db.DB()
	_ = sqlDB.Close()
}

func TestOpenRejectsBadConfig(t *testing.T) {
	cases := map[string]config.DatabaseConfig{
		"unknown driver":  {Driver: "oracle"},
		"sqlite no path":  {Driver: "sqlite"},
		"mysql no dsn":    {Driver: "mysql"},
		"postgres no dsn": {Driver: "postgres"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Open(cfg); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
