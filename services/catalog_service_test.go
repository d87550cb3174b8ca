package services_test

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/photocatalog/database"
	"github.com/camden-git/photocatalog/media"
	"github.com/camden-git/photocatalog/repository"
	"github.com/camden-git/photocatalog/services"
)

func newTestCatalog(t *testing.T) (*services.CatalogService, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	storeRoot := t.TempDir()
	store, err := media.NewLocalStorage(storeRoot)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}

	catalog := services.NewCatalogService(
		repository.NewImageRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewSubCategoryRepository(db),
		repository.NewLocationRepository(db),
		store,
		media.NewConverter(90),
	)
	return catalog, storeRoot
}

func sampleMetadata() *media.Metadata {
	return &media.Metadata{
		Camera:       "NIKON D7100",
		ISO:          200,
		FStop:        4,
		ExposureTime: 8,
		FocalLength:  35,
		SizeMB:       0.002,
		TakenAt:      time.Unix(1685620800, 0),
	}
}

func TestAddImageWritesRowAndFile(t *testing.T) {
	catalog, storeRoot := newTestCatalog(t)

	payload := []byte("jpeg bytes")
	image, err := catalog.AddImage(sampleMetadata(), "a.jpg", "2023-06", media.FormatJPEG, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("AddImage returned error: %v", err)
	}
	if image.ID == 0 {
		t.Fatal("expected non-zero image id")
	}
	if image.Name != "a.jpg" || image.FileName != "a.jpg" {
		t.Fatalf("new image should start with file name as display name: %+v", image)
	}
	if image.DateTaken != 1685620800 {
		t.Fatalf("date taken = %d, want 1685620800", image.DateTaken)
	}

	written, err := os.ReadFile(filepath.Join(storeRoot, "2023-06", "a.jpg"))
	if err != nil {
		t.Fatalf("managed copy missing: %v", err)
	}
	if !bytes.Equal(written, payload) {
		t.Fatal("managed copy does not match source bytes")
	}
}

func TestAddImageOverwritesExistingFile(t *testing.T) {
	catalog, storeRoot := newTestCatalog(t)

	if _, err := catalog.AddImage(sampleMetadata(), "a.jpg", "x", media.FormatJPEG, bytes.NewReader([]byte("first"))); err != nil {
		t.Fatalf("first AddImage returned error: %v", err)
	}
	if _, err := catalog.AddImage(sampleMetadata(), "a.jpg", "x", media.FormatJPEG, bytes.NewReader([]byte("second"))); err != nil {
		t.Fatalf("second AddImage returned error: %v", err)
	}

	written, err := os.ReadFile(filepath.Join(storeRoot, "x", "a.jpg"))
	if err != nil {
		t.Fatalf("managed copy missing: %v", err)
	}
	if string(written) != "second" {
		t.Fatalf("managed copy = %q, want the later write", written)
	}
}

func TestDeleteImageRemovesFile(t *testing.T) {
	catalog, storeRoot := newTestCatalog(t)

	image, err := catalog.AddImage(sampleMetadata(), "a.jpg", "2023-06", media.FormatJPEG, bytes.NewReader([]byte("data")))
	if err != nil {
		t.Fatalf("AddImage returned error: %v", err)
	}

	if err := catalog.DeleteImage(image.ID); err != nil {
		t.Fatalf("DeleteImage returned error: %v", err)
	}

	if _, err := catalog.GetImage(image.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found after delete, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(storeRoot, "2023-06", "a.jpg")); !os.IsNotExist(err) {
		t.Fatalf("managed copy should be gone, stat err = %v", err)
	}
}

func TestConvertImageUsesDisplayName(t *testing.T) {
	catalog, _ := newTestCatalog(t)

	var source bytes.Buffer
	fixture := imaging.New(8, 8, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := imaging.Encode(&source, fixture, imaging.JPEG); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}

	image, err := catalog.AddImage(sampleMetadata(), "dsc_0042.jpg", "2023-06", media.FormatJPEG, &source)
	if err != nil {
		t.Fatalf("AddImage returned error: %v", err)
	}
	if _, err := catalog.CommitRename(image.ID, "sunset over harbor.jpg"); err != nil {
		t.Fatalf("CommitRename returned error: %v", err)
	}

	targetDir := t.TempDir()
	produced, err := catalog.ConvertImage(image.ID, targetDir, media.FormatPNG)
	if err != nil {
		t.Fatalf("ConvertImage returned error: %v", err)
	}
	if !produced {
		t.Fatal("expected conversion to produce output")
	}
	if _, err := os.Stat(filepath.Join(targetDir, "sunset over harbor.png")); err != nil {
		t.Fatalf("converted file missing: %v", err)
	}
}

func TestConvertImageRefusesRawTarget(t *testing.T) {
	catalog, _ := newTestCatalog(t)

	image, err := catalog.AddImage(sampleMetadata(), "a.jpg", "x", media.FormatJPEG, bytes.NewReader([]byte("data")))
	if err != nil {
		t.Fatalf("AddImage returned error: %v", err)
	}

	targetDir := t.TempDir()
	produced, err := catalog.ConvertImage(image.ID, targetDir, media.FormatRawNEF)
	if err != nil {
		t.Fatalf("ConvertImage returned error: %v", err)
	}
	if produced {
		t.Fatal("raw target must be refused without output")
	}
	entries, err := os.ReadDir(targetDir)
	if err != nil {
		t.Fatalf("failed to read target dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty target dir, found %d entries", len(entries))
	}
}
