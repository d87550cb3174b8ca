package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultImagesSubDir    = "images"
	DefaultConvertedSubDir = "converted"
)

const defaultJpegQuality = 90

type Config struct {
	// catalog root (managed folder tree that ingested files are copied into)
	RootDirectory string

	// database path
	DatabasePath string

	// managed storage configuration
	ImagesPath    string // full-calculated path for ingested originals
	ConvertedPath string // full-calculated default output path for conversions

	// conversion settings
	JpegQuality int

	// allowed CORS origin for the API frontend
	CORSOrigin string

	// HTTP listen port
	Port string
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val <= 0 {
		log.Printf("Warning: Invalid %s '%s'. Using default %d. Error: %v", envVar, valStr, defaultVal, err)
		return defaultVal
	}
	return val
}

func LoadConfig() (Config, error) {
	root := getEnvOrDefault("CATALOG_ROOT", ".")
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute path for catalog root '%s': %w", root, err)
	}

	dbPath := getEnvOrDefault("DATABASE_PATH", "catalog.db")

	imagesSubDir := getEnvOrDefault("IMAGES_SUBDIR", DefaultImagesSubDir)
	absImagesPath := filepath.Join(absRoot, imagesSubDir)

	convertedSubDir := getEnvOrDefault("CONVERTED_SUBDIR", DefaultConvertedSubDir)
	absConvertedPath := filepath.Join(absRoot, convertedSubDir)

	jpegQuality := getEnvIntOrDefault("JPEG_QUALITY", defaultJpegQuality)

	corsOrigin := getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173")

	port := getEnvOrDefault("PORT", "8080")

	cfg := Config{
		RootDirectory: absRoot,
		DatabasePath:  dbPath,
		ImagesPath:    absImagesPath,
		ConvertedPath: absConvertedPath,
		JpegQuality:   jpegQuality,
		CORSOrigin:    corsOrigin,
		Port:          port,
	}

	return cfg, nil
}
