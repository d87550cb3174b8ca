package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/photocatalog/models"
)

// CategoryRepository handles database operations for Category entities and
// the category/sub-category link table.
type CategoryRepository struct {
	DB *gorm.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// Create creates a new category record
func (r *CategoryRepository) Create(category *models.Category) error {
	if err := r.DB.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category %s: %w", category.Name, err)
	}
	return nil
}

// GetByID retrieves a category with its sub-categories attached in
// link-row insertion order.
func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.DB.First(&category, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get category by ID %d: %w", id, err)
	}

	subs, err := r.ListSubCategories(id)
	if err != nil {
		return nil, err
	}
	category.SubCategories = subs
	return &category, nil
}

// ListAll retrieves all categories, ordered by name
func (r *CategoryRepository) ListAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListSubCategories returns the sub-categories linked to a category in
// link-row insertion order. The order carries no meaning beyond display.
func (r *CategoryRepository) ListSubCategories(categoryID uint) ([]models.SubCategory, error) {
	var subs []models.SubCategory
	err := r.DB.
		Joins("JOIN categories_subcategories csc ON csc.subcategory_id = subcategories.id").
		Where("csc.category_id = ?", categoryID).
		Order("csc.id ASC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sub-categories for category %d: %w", categoryID, err)
	}
	return subs, nil
}

// AttachSubCategory links a sub-category to a category. Linking the same
// pair twice is a no-op.
func (r *CategoryRepository) AttachSubCategory(categoryID, subCategoryID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireRow(tx, &models.Category{}, categoryID); err != nil {
			return err
		}
		if err := requireRow(tx, &models.SubCategory{}, subCategoryID); err != nil {
			return err
		}

		var existing int64
		err := tx.Model(&models.CategorySubCategory{}).
			Where("category_id = ? AND subcategory_id = ?", categoryID, subCategoryID).
			Count(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to check category link %d/%d: %w", categoryID, subCategoryID, err)
		}
		if existing > 0 {
			return nil
		}

		link := models.CategorySubCategory{CategoryID: categoryID, SubCategoryID: subCategoryID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link sub-category %d to category %d: %w", subCategoryID, categoryID, err)
		}
		return nil
	})
}

// DetachSubCategory removes the link between a category and a sub-category
func (r *CategoryRepository) DetachSubCategory(categoryID, subCategoryID uint) error {
	err := r.DB.Where("category_id = ? AND subcategory_id = ?", categoryID, subCategoryID).
		Delete(&models.CategorySubCategory{}).Error
	if err != nil {
		return fmt.Errorf("failed to unlink sub-category %d from category %d: %w", subCategoryID, categoryID, err)
	}
	return nil
}

// Update changes a category's name and notes. The sentinel category is
// protected.
func (r *CategoryRepository) Update(categoryID uint, name, notes string) error {
	if categoryID == models.SentinelCategoryID {
		return ErrProtectedEntity
	}
	result := r.DB.Model(&models.Category{}).Where("id = ?", categoryID).
		Updates(map[string]interface{}{"name": name, "notes": notes})
	if result.Error != nil {
		return fmt.Errorf("failed to update category %d: %w", categoryID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a category, its link rows, and re-points images that
// referenced it back to the sentinel category. Image rows are never
// deleted by this path.
func (r *CategoryRepository) Delete(categoryID uint) error {
	if categoryID == models.SentinelCategoryID {
		return ErrProtectedEntity
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).
			Delete(&models.CategorySubCategory{}).Error; err != nil {
			return fmt.Errorf("failed to delete sub-category links for category %d: %w", categoryID, err)
		}
		if err := tx.Model(&models.Image{}).Where("category_id = ?", categoryID).
			Update("category_id", models.SentinelCategoryID).Error; err != nil {
			return fmt.Errorf("failed to reset images for category %d: %w", categoryID, err)
		}
		result := tx.Delete(&models.Category{}, categoryID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete category %d: %w", categoryID, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
