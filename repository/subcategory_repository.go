package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/photocatalog/models"
)

// SubCategoryRepository handles database operations for SubCategory
// entities.
type SubCategoryRepository struct {
	DB *gorm.DB
}

// NewSubCategoryRepository creates a new instance of SubCategoryRepository
func NewSubCategoryRepository(db *gorm.DB) *SubCategoryRepository {
	return &SubCategoryRepository{DB: db}
}

// Create creates a new sub-category record, optionally linked to a
// category (categoryID 0 creates it unattached).
func (r *SubCategoryRepository) Create(sub *models.SubCategory, categoryID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if categoryID != 0 {
			if err := requireRow(tx, &models.Category{}, categoryID); err != nil {
				return err
			}
		}
		if err := tx.Create(sub).Error; err != nil {
			return fmt.Errorf("failed to create sub-category %s: %w", sub.Name, err)
		}
		if categoryID != 0 {
			link := models.CategorySubCategory{CategoryID: categoryID, SubCategoryID: sub.ID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link sub-category %s to category %d: %w", sub.Name, categoryID, err)
			}
		}
		return nil
	})
}

// GetByID retrieves a sub-category by its identifier
func (r *SubCategoryRepository) GetByID(id uint) (*models.SubCategory, error) {
	var sub models.SubCategory
	err := r.DB.First(&sub, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get sub-category by ID %d: %w", id, err)
	}
	return &sub, nil
}

// ListAll retrieves all sub-categories, ordered by name
func (r *SubCategoryRepository) ListAll() ([]models.SubCategory, error) {
	var subs []models.SubCategory
	err := r.DB.Order("name ASC").Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-categories: %w", err)
	}
	return subs, nil
}

// Update changes a sub-category's name and notes
func (r *SubCategoryRepository) Update(subCategoryID uint, name, notes string) error {
	result := r.DB.Model(&models.SubCategory{}).Where("id = ?", subCategoryID).
		Updates(map[string]interface{}{"name": name, "notes": notes})
	if result.Error != nil {
		return fmt.Errorf("failed to update sub-category %d: %w", subCategoryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a sub-category and its link rows in both link tables.
// Images and categories that referenced it keep their own rows; they just
// lose the link.
func (r *SubCategoryRepository) Delete(subCategoryID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subcategory_id = ?", subCategoryID).
			Delete(&models.CategorySubCategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete category links for sub-category %d: %w", subCategoryID, err)
		}
		if err := tx.Where("subcategory_id = ?", subCategoryID).
			Delete(&models.ImageSubCategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete image links for sub-category %d: %w", subCategoryID, err)
		}
		result := tx.Delete(&models.SubCategory{}, subCategoryID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete sub-category %d: %w", subCategoryID, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
