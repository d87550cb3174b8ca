package config_test

import (
	"path/filepath"
	"testing"

	"github.com/camden-git/photocatalog/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CATALOG_ROOT", t.TempDir())
	for _, key := range []string{"DATABASE_PATH", "IMAGES_SUBDIR", "CONVERTED_SUBDIR", "JPEG_QUALITY", "CORS_ORIGIN", "PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.DatabasePath != "catalog.db" {
		t.Fatalf("DatabasePath = %q, want %q", cfg.DatabasePath, "catalog.db")
	}
	if filepath.Base(cfg.ImagesPath) != config.DefaultImagesSubDir {
		t.Fatalf("ImagesPath = %q, want to end in %q", cfg.ImagesPath, config.DefaultImagesSubDir)
	}
	if filepath.Base(cfg.ConvertedPath) != config.DefaultConvertedSubDir {
		t.Fatalf("ConvertedPath = %q, want to end in %q", cfg.ConvertedPath, config.DefaultConvertedSubDir)
	}
	if cfg.JpegQuality != 90 {
		t.Fatalf("JpegQuality = %d, want 90", cfg.JpegQuality)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "8080")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CATALOG_ROOT", root)
	t.Setenv("IMAGES_SUBDIR", "originals")
	t.Setenv("JPEG_QUALITY", "75")
	t.Setenv("PORT", "9090")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.ImagesPath != filepath.Join(root, "originals") {
		t.Fatalf("ImagesPath = %q, want %q", cfg.ImagesPath, filepath.Join(root, "originals"))
	}
	if cfg.JpegQuality != 75 {
		t.Fatalf("JpegQuality = %d, want 75", cfg.JpegQuality)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "9090")
	}
}

func TestLoadConfigRejectsBadQuality(t *testing.T) {
	t.Setenv("CATALOG_ROOT", t.TempDir())
	t.Setenv("JPEG_QUALITY", "not-a-number")

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	// invalid values fall back to the default rather than failing startup
	if cfg.JpegQuality != 90 {
		t.Fatalf("JpegQuality = %d, want default 90", cfg.JpegQuality)
	}
}
