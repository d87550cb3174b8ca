package media

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store defines the interface for the managed image tree that ingested
// originals are copied into.
type Store interface {
	// Save copies data to <root>/<subfolder>/<filename>, overwriting any
	// existing file at that path. Returns the absolute path written.
	Save(subfolder, filename string, data io.Reader) (string, error)
	// Open retrieves a reader for a managed file
	Open(subfolder, filename string) (io.ReadCloser, os.FileInfo, error)
	// Delete removes a managed file
	Delete(subfolder, filename string) error
	// AbsolutePath resolves a managed file's absolute path with a
	// traversal check; the file need not exist
	AbsolutePath(subfolder, filename string) (string, error)
}

// LocalStorage implements the Store interface on the local filesystem.
type LocalStorage struct {
	basePath string // absolute path to the managed images directory
}

// NewLocalStorage creates a local filesystem store rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absBasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base storage directory '%s': %w", absBasePath, err)
	}

	log.Printf("media.store: initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{basePath: absBasePath}, nil
}

// AbsolutePath calculates the absolute path and performs a security check
func (ls *LocalStorage) AbsolutePath(subfolder, filename string) (string, error) {
	cleanRelative := filepath.Clean(filepath.Join(subfolder, filename))
	fullPath := filepath.Join(ls.basePath, cleanRelative)

	absFullPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s/%s': %w", subfolder, filename, err)
	}

	if !strings.HasPrefix(absFullPath, ls.basePath) {
		return "", fmt.Errorf("invalid path: access denied for '%s/%s'", subfolder, filename)
	}

	return absFullPath, nil
}

// Save writes the data to a temporary file in the destination directory
// and renames it into place, so a half-written copy never lands at the
// final path. Overwriting an existing same-named file is allowed.
func (ls *LocalStorage) Save(subfolder, filename string, data io.Reader) (string, error) {
	fullPath, err := ls.AbsolutePath(subfolder, filename)
	if err != nil {
		return "", err
	}

	targetDir := filepath.Dir(fullPath)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination directory '%s': %w", targetDir, err)
	}

	tempName, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate temp name: %w", err)
	}
	tempPath := filepath.Join(targetDir, "."+tempName.String()+".tmp")

	outFile, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file '%s': %w", tempPath, err)
	}

	if _, err := io.Copy(outFile, data); err != nil {
		outFile.Close()
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to write data to '%s': %w", tempPath, err)
	}
	if err := outFile.Close(); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to flush data to '%s': %w", tempPath, err)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to move file into place at '%s': %w", fullPath, err)
	}

	log.Printf("media.store: saved %s", fullPath)
	return fullPath, nil
}

func (ls *LocalStorage) Open(subfolder, filename string) (io.ReadCloser, os.FileInfo, error) {
	fullPath, err := ls.AbsolutePath(subfolder, filename)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("managed file not found at '%s/%s': %w", subfolder, filename, err)
		}
		return nil, nil, fmt.Errorf("failed to open managed file '%s/%s': %w", subfolder, filename, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat managed file '%s/%s': %w", subfolder, filename, err)
	}

	return file, info, nil
}

// Delete removes a managed file. A missing file is not an error.
func (ls *LocalStorage) Delete(subfolder, filename string) error {
	fullPath, err := ls.AbsolutePath(subfolder, filename)
	if err != nil {
		return err
	}

	err = os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete managed file '%s': %w", fullPath, err)
	}
	if err == nil {
		log.Printf("media.store: deleted %s", fullPath)
	}
	return nil
}
