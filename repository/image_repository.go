package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/photocatalog/models"
)

// ImageRepository handles database operations for Image entities and their
// link rows.
type ImageRepository struct {
	DB *gorm.DB
}

// NewImageRepository creates a new instance of ImageRepository
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{DB: db}
}

// Create persists a new image row together with its location link.
// Unset category and location references fall back to the sentinel rows so
// no image is ever without them.
func (r *ImageRepository) Create(image *models.Image, locationID uint) error {
	if image.CategoryID == 0 {
		image.CategoryID = models.SentinelCategoryID
	}
	if locationID == 0 {
		locationID = models.SentinelLocationID
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Category{}, image.CategoryID); err != nil {
			return err
		}
		if err := requireRow(tx, &models.Location{}, locationID); err != nil {
			return err
		}
		if err := tx.Create(image).Error; err != nil {
			return fmt.Errorf("failed to create image %s: %w", image.Name, err)
		}
		link := models.ImageLocation{ImageID: image.ID, LocationID: locationID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to create location link for image %d: %w", image.ID, err)
		}
		return nil
	})
}

// GetByID retrieves an image by its identifier
func (r *ImageRepository) GetByID(id uint) (*models.Image, error) {
	var image models.Image
	err := r.DB.First(&image, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get image by ID %d: %w", id, err)
	}
	return &image, nil
}

// ListAll retrieves every cataloged image, ordered by identifier
func (r *ImageRepository) ListAll() ([]models.Image, error) {
	var images []models.Image
	err := r.DB.Order("id ASC").Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// ListByCategory retrieves the images assigned to a category
func (r *ImageRepository) ListByCategory(categoryID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.DB.Where("category_id = ?", categoryID).Order("id ASC").Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images for category %d: %w", categoryID, err)
	}
	return images, nil
}

// ListBySubCategory retrieves the images linked to a sub-category
func (r *ImageRepository) ListBySubCategory(subCategoryID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.DB.
		Joins("JOIN images_subcategories isc ON isc.image_id = images.id").
		Where("isc.subcategory_id = ?", subCategoryID).
		Order("images.id ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images for sub-category %d: %w", subCategoryID, err)
	}
	return images, nil
}

// ListByLocation retrieves the images linked to a location
func (r *ImageRepository) ListByLocation(locationID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.DB.
		Joins("JOIN images_locations il ON il.image_id = images.id").
		Where("il.location_id = ?", locationID).
		Order("images.id ASC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images for location %d: %w", locationID, err)
	}
	return images, nil
}

// GetLocationID returns the location the image is linked to; images
// without an explicit location report the sentinel.
func (r *ImageRepository) GetLocationID(imageID uint) (uint, error) {
	var link models.ImageLocation
	err := r.DB.Where("image_id = ?", imageID).First(&link).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return models.SentinelLocationID, nil
		}
		return 0, fmt.Errorf("failed to get location link for image %d: %w", imageID, err)
	}
	return link.LocationID, nil
}

// ListSubCategoryIDs returns the image's sub-category ids in slot order
// (link-row insertion order).
func (r *ImageRepository) ListSubCategoryIDs(imageID uint) ([]uint, error) {
	var links []models.ImageSubCategory
	err := r.DB.Where("image_id = ?", imageID).Order("id ASC").Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-category links for image %d: %w", imageID, err)
	}
	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.SubCategoryID)
	}
	return ids, nil
}

// UpdateName changes the display name of an image. The on-disk filename is
// untouched.
func (r *ImageRepository) UpdateName(imageID uint, name string) error {
	return r.updateColumn(imageID, "name", name)
}

// UpdateNotes changes the free-text notes of an image
func (r *ImageRepository) UpdateNotes(imageID uint, notes string) error {
	return r.updateColumn(imageID, "notes", notes)
}

// SetCategory re-points the image's category reference. The category must
// exist; sqlite enforces no foreign keys here, so the reference is checked
// before the write.
func (r *ImageRepository) SetCategory(imageID, categoryID uint) error {
	if categoryID == 0 {
		categoryID = models.SentinelCategoryID
	}
	if err := requireRow(r.DB, &models.Category{}, categoryID); err != nil {
		return err
	}
	return r.updateColumn(imageID, "category_id", categoryID)
}

// SetLocation re-points the image's location link row. The row is updated
// in place so the image always holds exactly one. The location must exist.
func (r *ImageRepository) SetLocation(imageID, locationID uint) error {
	if locationID == 0 {
		locationID = models.SentinelLocationID
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Location{}, locationID); err != nil {
			return err
		}
		result := tx.Model(&models.ImageLocation{}).
			Where("image_id = ?", imageID).
			Update("location_id", locationID)
		if result.Error != nil {
			return fmt.Errorf("failed to set location for image %d: %w", imageID, result.Error)
		}
		if result.RowsAffected == 0 {
			link := models.ImageLocation{ImageID: imageID, LocationID: locationID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to create location link for image %d: %w", imageID, err)
			}
		}
		return nil
	})
}

// ReplaceSubCategory swaps one of the image's sub-category links: the row
// for oldID (if any) is removed before the row for newID is inserted, so
// no duplicate or stale link survives. Passing newID 0 clears the slot.
// The image's remaining slot must not already hold newID.
func (r *ImageRepository) ReplaceSubCategory(imageID, newID, oldID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if oldID != 0 {
			if err := tx.Where("image_id = ? AND subcategory_id = ?", imageID, oldID).
				Delete(&models.ImageSubCategory{}).Error; err != nil {
				return fmt.Errorf("failed to unlink sub-category %d from image %d: %w", oldID, imageID, err)
			}
		}

		if newID == 0 {
			return nil
		}

		if err := requireRow(tx, &models.SubCategory{}, newID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.ImageSubCategory{}).
			Where("image_id = ? AND subcategory_id = ?", imageID, newID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check sub-category links for image %d: %w", imageID, err)
		}
		if existing > 0 {
			return ErrSubCategoryDuplicate
		}

		var total int64
		if err := tx.Model(&models.ImageSubCategory{}).
			Where("image_id = ?", imageID).
			Count(&total).Error; err != nil {
			return fmt.Errorf("failed to count sub-category links for image %d: %w", imageID, err)
		}
		if total >= models.MaxSubCategoriesPerImage {
			return ErrSubCategorySlotsFull
		}

		link := models.ImageSubCategory{ImageID: imageID, SubCategoryID: newID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link sub-category %d to image %d: %w", newID, imageID, err)
		}
		return nil
	})
}

// Delete removes the image row and every link row referencing it.
// The on-disk file is the caller's responsibility.
func (r *ImageRepository) Delete(imageID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", imageID).Delete(&models.ImageSubCategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete sub-category links for image %d: %w", imageID, err)
		}
		if err := tx.Where("image_id = ?", imageID).Delete(&models.ImageLocation{}).Error; err != nil {
			return fmt.Errorf("failed to delete location link for image %d: %w", imageID, err)
		}
		result := tx.Delete(&models.Image{}, imageID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete image %d: %w", imageID, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// requireRow verifies the referenced entity row exists before a link or
// reference column is written to it. The schema carries no foreign key
// constraints, so this check is the only thing standing between an id typo
// and a dangling reference.
func requireRow(tx *gorm.DB, model interface{}, id uint) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check referenced row %d: %w", id, err)
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ImageRepository) updateColumn(imageID uint, column string, value interface{}) error {
	result := r.DB.Model(&models.Image{}).Where("id = ?", imageID).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s for image %d: %w", column, imageID, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		r.DB.Model(&models.Image{}).Where("id = ?", imageID).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}
