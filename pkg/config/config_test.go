package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load("non-existent-config.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	assertDefaultConfig(t, cfg)
}

func TestLoadWithPartialConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  address: ":9090"
storage:
  access_key_id: AKID
  secret_access_key: secret
  bucket: blog-media
  region: eu-west-1
  asset_host: https://cdn.example.com
  path_prefix: blog
media:
  base_path: "assets/"
database:
  driver: ""
  sqlite: {}
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Address != ":9090" {
		t.Fatalf("expected server address :9090, got %s", cfg.Server.Address)
	}
	if cfg.Media.BasePath != "/assets" {
		t.Fatalf("expected media base path /assets, got %s", cfg.Media.BasePath)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected database driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Database.SQLite.Path != "data/media.db" {
		t.Fatalf("expected sqlite path data/media.db, got %s", cfg.Database.SQLite.Path)
	}

	s3cfg := cfg.Storage.S3()
	if err := s3cfg.Validate(); err != nil {
		t.Fatalf("expected complete storage config, got %v", err)
	}
	if s3cfg.Bucket != "blog-media" || s3cfg.Region != "eu-west-1" || s3cfg.PathPrefix != "blog" {
		t.Fatalf("unexpected storage config %+v", s3cfg)
	}
	if s3cfg.AssetHost != "https://cdn.example.com" {
		t.Fatalf("unexpected asset host %s", s3cfg.AssetHost)
	}
}

func TestLoadLeavesStorageRegionUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "storage:\n  access_key_id: AKID\n  secret_access_key: secret\n  bucket: blog-media\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	fromFile, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	defaults, err := Load("non-existent-config.yaml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	for name, cfg := range map[string]*Config{"file": fromFile, "defaults": defaults} {
		if cfg.Storage.Region != "" {
			t.Fatalf("%s: expected empty region, got %q", name, cfg.Storage.Region)
		}
		if err := cfg.Storage.S3().Validate(); err == nil || !strings.Contains(err.Error(), "region") {
			t.Fatalf("%s: expected missing region error, got %v", name, err)
		}
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  buckett: typo\n"), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"/":                "",
		" .":               "",
		"content/images":   "/content/images",
		"/content/images/": "/content/images",
	}
	for in, want := range cases {
		if got := NormalizeBasePath(in); got != want {
			t.Errorf("NormalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func assertDefaultConfig(t *testing.T, cfg *Config) {
	t.Helper()
	if cfg == nil {
		t.Fatalf("config is nil")
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("expected default address :8080, got %s", cfg.Server.Address)
	}
	if cfg.Media.BasePath != "/content/images" {
		t.Fatalf("expected default media path /content/images, got %s", cfg.Media.BasePath)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("expected default driver sqlite, got %s", cfg.Database.Driver)
	}
	if cfg.Storage.Region != "" {
		t.Fatalf("expected no default region, got %s", cfg.Storage.Region)
	}
}
