package database_test

import (
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/photocatalog/database"
	"github.com/camden-git/photocatalog/models"
)

func TestOpenIsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := database.Open(path)
	if err != nil {
		t.Fatalf("first Open returned error: %v", err)
	}
	if db == nil {
		t.Fatal("first Open returned nil handle")
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.Open(path); !errors.Is(err, database.ErrAlreadyOpen) {
		t.Fatalf("second Open error = %v, want ErrAlreadyOpen", err)
	}

	if err := database.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	// closing releases the slot for a fresh Open
	db, err = database.Open(path)
	if err != nil {
		t.Fatalf("reopen after Close returned error: %v", err)
	}
	if db == nil {
		t.Fatal("reopen returned nil handle")
	}
}

func TestCloseWithoutOpenIsNoop(t *testing.T) {
	if err := database.Close(); err != nil {
		t.Fatalf("Close with nothing open returned error: %v", err)
	}
}

func TestMigrateSeedsSentinels(t *testing.T) {
	db := openThrowaway(t)

	var category models.Category
	if err := db.First(&category, models.SentinelCategoryID).Error; err != nil {
		t.Fatalf("sentinel category missing: %v", err)
	}
	if category.Name != "All" {
		t.Fatalf("sentinel category name = %q, want %q", category.Name, "All")
	}

	var location models.Location
	if err := db.First(&location, models.SentinelLocationID).Error; err != nil {
		t.Fatalf("sentinel location missing: %v", err)
	}
	if location.Name != "None" {
		t.Fatalf("sentinel location name = %q, want %q", location.Name, "None")
	}

	// migrating again must not duplicate the sentinels
	if err := database.Migrate(db); err != nil {
		t.Fatalf("second Migrate returned error: %v", err)
	}
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 category after re-migrate, got %d", count)
	}
}

func TestMigrateLinkTableColumnNames(t *testing.T) {
	db := openThrowaway(t)

	// the raw link-table queries name this column without an underscore, so
	// the migrated schema must carry it that way too
	migrator := db.Migrator()
	if !migrator.HasColumn(&models.ImageSubCategory{}, "subcategory_id") {
		t.Fatal("images_subcategories is missing column subcategory_id")
	}
	if !migrator.HasColumn(&models.CategorySubCategory{}, "subcategory_id") {
		t.Fatal("categories_subcategories is missing column subcategory_id")
	}
}

func TestCollectStats(t *testing.T) {
	db := openThrowaway(t)

	travel := models.Category{Name: "Travel"}
	if err := db.Create(&travel).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	harbor := models.Location{Name: "Harbor"}
	if err := db.Create(&harbor).Error; err != nil {
		t.Fatalf("failed to create location: %v", err)
	}

	images := []models.Image{
		{Name: "a.jpg", FileName: "a.jpg", FileType: "JPEG", CategoryID: travel.ID},
		{Name: "b.nef", FileName: "b.nef", FileType: "RAW-NEF", CategoryID: travel.ID},
		{Name: "c.nef", FileName: "c.nef", FileType: "RAW-NEF", CategoryID: models.SentinelCategoryID},
	}
	for i := range images {
		if err := db.Create(&images[i]).Error; err != nil {
			t.Fatalf("failed to create image: %v", err)
		}
	}
	links := []models.ImageLocation{
		{ImageID: images[0].ID, LocationID: harbor.ID},
		{ImageID: images[1].ID, LocationID: models.SentinelLocationID},
		{ImageID: images[2].ID, LocationID: models.SentinelLocationID},
	}
	for i := range links {
		if err := db.Create(&links[i]).Error; err != nil {
			t.Fatalf("failed to create location link: %v", err)
		}
	}

	stats, err := database.CollectStats(db)
	if err != nil {
		t.Fatalf("CollectStats returned error: %v", err)
	}

	if stats.TotalImages != 3 {
		t.Fatalf("total images = %d, want 3", stats.TotalImages)
	}
	if stats.ByFormat["JPEG"] != 1 || stats.ByFormat["RAW-NEF"] != 2 {
		t.Fatalf("unexpected format counts: %v", stats.ByFormat)
	}

	perCategory := make(map[string]int64, len(stats.ImagesPerGroup))
	for _, group := range stats.ImagesPerGroup {
		perCategory[group.Name] = group.Count
	}
	if perCategory["Travel"] != 2 || perCategory["All"] != 1 {
		t.Fatalf("unexpected category counts: %v", perCategory)
	}

	perLocation := make(map[string]int64, len(stats.ImagesPerPlace))
	for _, place := range stats.ImagesPerPlace {
		perLocation[place.Name] = place.Count
	}
	if perLocation["Harbor"] != 1 || perLocation["None"] != 2 {
		t.Fatalf("unexpected location counts: %v", perLocation)
	}
}

func openThrowaway(t *testing.T) *gorm.DB {
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
	return db
}
