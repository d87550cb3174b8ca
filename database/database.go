package database

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/camden-git/photocatalog/models"
)

// ErrAlreadyOpen is returned by Open when a catalog connection is already
// active. The storage endpoint has a single logical owner; a second Open
// without an intervening Close is a programming error, not something to
// queue or retry.
var ErrAlreadyOpen = errors.New("database: catalog connection already open")

var (
	openMu     sync.Mutex
	openHandle *gorm.DB
)

// Open initializes the catalog database, migrates the schema and seeds the
// sentinel rows. At most one connection may be open process-wide; callers
// must pair every successful Open with a Close.
func Open(dataSourceName string) (*gorm.DB, error) {
	openMu.Lock()
	defer openMu.Unlock()

	if openHandle != nil {
		return nil, ErrAlreadyOpen
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	// the catalog is single-owner; keep the pool at one connection so
	// sqlite never sees interleaved writers
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	openHandle = db
	log.Println("database: catalog initialized at", dataSourceName)
	return db, nil
}

// Close releases the active catalog connection. Closing when nothing is
// open is a no-op.
func Close() error {
	openMu.Lock()
	defer openMu.Unlock()

	if openHandle == nil {
		return nil
	}

	sqlDB, err := openHandle.DB()
	openHandle = nil
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB for close: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close catalog database: %w", err)
	}
	return nil
}

// Migrate creates the catalog schema and seeds the sentinel rows. Open
// calls it automatically; it is exported for callers that construct their
// own short-lived databases.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Image{},
		&models.Category{},
		&models.SubCategory{},
		&models.Location{},
		&models.CategorySubCategory{},
		&models.ImageSubCategory{},
		&models.ImageLocation{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}
	return seedSentinels(db)
}

// seedSentinels inserts the protected default rows once. Mutation paths
// check identity against the well-known ids, never against load order.
func seedSentinels(db *gorm.DB) error {
	defaultCategory := models.Category{ID: models.SentinelCategoryID, Name: "All"}
	if err := db.Where(models.Category{ID: models.SentinelCategoryID}).
		FirstOrCreate(&defaultCategory).Error; err != nil {
		return fmt.Errorf("failed to seed default category: %w", err)
	}

	defaultLocation := models.Location{ID: models.SentinelLocationID, Name: "None"}
	if err := db.Where(models.Location{ID: models.SentinelLocationID}).
		FirstOrCreate(&defaultLocation).Error; err != nil {
		return fmt.Errorf("failed to seed default location: %w", err)
	}

	return nil
}
