package services

import (
	"fmt"
	"io"
	"log"

	"github.com/camden-git/photocatalog/media"
	"github.com/camden-git/photocatalog/models"
	"github.com/camden-git/photocatalog/repository"
)

// IngestWriteError reports that an image row was persisted but the source
// file could not be copied into the managed tree.
type IngestWriteError struct {
	FileName string
	Err      error
}

func (e *IngestWriteError) Error() string {
	return fmt.Sprintf("failed to store ingested file %s: %v", e.FileName, e.Err)
}

func (e *IngestWriteError) Unwrap() error { return e.Err }

// CatalogService provides high-level catalog operations over the entity
// repositories and the managed file store. Every commit operation persists
// its change before returning the updated entity; callers must treat the
// returned record as the current state.
type CatalogService struct {
	images        repository.ImageRepositoryInterface
	categories    repository.CategoryRepositoryInterface
	subCategories repository.SubCategoryRepositoryInterface
	locations     repository.LocationRepositoryInterface
	store         media.Store
	converter     *media.Converter
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	images repository.ImageRepositoryInterface,
	categories repository.CategoryRepositoryInterface,
	subCategories repository.SubCategoryRepositoryInterface,
	locations repository.LocationRepositoryInterface,
	store media.Store,
	converter *media.Converter,
) *CatalogService {
	return &CatalogService{
		images:        images,
		categories:    categories,
		subCategories: subCategories,
		locations:     locations,
		store:         store,
		converter:     converter,
	}
}

// AddImage assigns a new identifier, persists the catalog row and copies
// the source data into the managed subfolder. Overwriting a same-named
// file at the destination is allowed.
//
// Known limitation: if the copy fails after the row is committed there is
// no compensating transaction; the returned IngestWriteError must be
// surfaced, not retried.
func (s *CatalogService) AddImage(meta *media.Metadata, fileName, subfolder string, format media.FormatClass, source io.Reader) (*models.Image, error) {
	image := &models.Image{
		Name:         fileName,
		FileName:     fileName,
		Subfolder:    subfolder,
		FileType:     string(format),
		DateTaken:    meta.TakenAt.Unix(),
		Size:         meta.SizeMB,
		Camera:       meta.Camera,
		ISO:          meta.ISO,
		FStop:        meta.FStop,
		ExposureTime: meta.ExposureTime,
		ExposureBias: meta.ExposureBias,
		FocalLength:  meta.FocalLength,
	}

	if err := s.images.Create(image, 0); err != nil {
		return nil, err
	}

	if _, err := s.store.Save(subfolder, fileName, source); err != nil {
		return nil, &IngestWriteError{FileName: fileName, Err: err}
	}

	log.Printf("catalog: added image %d (%s/%s)", image.ID, subfolder, fileName)
	return image, nil
}

// CommitRename changes an image's display name. The on-disk file keeps
// its original name.
func (s *CatalogService) CommitRename(imageID uint, name string) (*models.Image, error) {
	if err := s.images.UpdateName(imageID, name); err != nil {
		return nil, err
	}
	return s.images.GetByID(imageID)
}

// CommitNotes changes an image's notes
func (s *CatalogService) CommitNotes(imageID uint, notes string) (*models.Image, error) {
	if err := s.images.UpdateNotes(imageID, notes); err != nil {
		return nil, err
	}
	return s.images.GetByID(imageID)
}

// CommitLocation re-points an image's location link
func (s *CatalogService) CommitLocation(imageID, locationID uint) (*models.Image, error) {
	if err := s.images.SetLocation(imageID, locationID); err != nil {
		return nil, err
	}
	return s.images.GetByID(imageID)
}

// CommitCategory re-points an image's category reference
func (s *CatalogService) CommitCategory(imageID, categoryID uint) (*models.Image, error) {
	if err := s.images.SetCategory(imageID, categoryID); err != nil {
		return nil, err
	}
	return s.images.GetByID(imageID)
}

// CommitSubCategoryChange replaces one of an image's sub-category links:
// the link row for oldID is removed before the row for newID is inserted.
// The image's other slot must not already hold newID.
func (s *CatalogService) CommitSubCategoryChange(imageID, newID, oldID uint) (*models.Image, error) {
	if err := s.images.ReplaceSubCategory(imageID, newID, oldID); err != nil {
		return nil, err
	}
	return s.images.GetByID(imageID)
}

// DeleteImage removes the image's link rows, its catalog row, and its
// managed file copy.
//
// Known limitation: a file delete failure after the rows are gone leaves
// the catalog and the disk inconsistent. There is no compensating
// transaction; the error is fatal for this image and must be surfaced.
func (s *CatalogService) DeleteImage(imageID uint) error {
	image, err := s.images.GetByID(imageID)
	if err != nil {
		return err
	}
	if err := s.images.Delete(imageID); err != nil {
		return err
	}
	if err := s.store.Delete(image.Subfolder, image.FileName); err != nil {
		return fmt.Errorf("image %d rows removed but file delete failed: %w", imageID, err)
	}
	return nil
}

// ConvertImage transcodes a cataloged image into targetFormat inside
// targetFolder per the converter's format-pair policy. The output name is
// the image's display name. The catalog rows are not touched.
func (s *CatalogService) ConvertImage(imageID uint, targetFolder string, targetFormat media.FormatClass) (bool, error) {
	image, err := s.images.GetByID(imageID)
	if err != nil {
		return false, err
	}
	sourcePath, err := s.store.AbsolutePath(image.Subfolder, image.FileName)
	if err != nil {
		return false, err
	}
	displayName := image.Name
	if displayName == "" {
		displayName = image.FileName
	}
	return s.converter.Convert(sourcePath, media.FormatClass(image.FileType), targetFolder, targetFormat, displayName)
}

// read-only projections; these query the same rows the mutations write,
// with no cache layer in between

func (s *CatalogService) GetImage(imageID uint) (*models.Image, error) {
	return s.images.GetByID(imageID)
}

func (s *CatalogService) ListImages() ([]models.Image, error) {
	return s.images.ListAll()
}

func (s *CatalogService) ListImagesByCategory(categoryID uint) ([]models.Image, error) {
	return s.images.ListByCategory(categoryID)
}

func (s *CatalogService) ListImagesBySubCategory(subCategoryID uint) ([]models.Image, error) {
	return s.images.ListBySubCategory(subCategoryID)
}

func (s *CatalogService) ListImagesByLocation(locationID uint) ([]models.Image, error) {
	return s.images.ListByLocation(locationID)
}

// ImageLocationID returns the id of the location an image is linked to
func (s *CatalogService) ImageLocationID(imageID uint) (uint, error) {
	return s.images.GetLocationID(imageID)
}

// ImageSubCategoryIDs returns an image's sub-category ids in slot order
func (s *CatalogService) ImageSubCategoryIDs(imageID uint) ([]uint, error) {
	return s.images.ListSubCategoryIDs(imageID)
}
