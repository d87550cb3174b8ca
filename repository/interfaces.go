package repository

import (
	"github.com/camden-git/photocatalog/models"
)

// ImageRepositoryInterface defines the methods for image data operations
type ImageRepositoryInterface interface {
	Create(image *models.Image, locationID uint) error
	GetByID(id uint) (*models.Image, error)
	ListAll() ([]models.Image, error)
	ListByCategory(categoryID uint) ([]models.Image, error)
	ListBySubCategory(subCategoryID uint) ([]models.Image, error)
	ListByLocation(locationID uint) ([]models.Image, error)
	GetLocationID(imageID uint) (uint, error)
	ListSubCategoryIDs(imageID uint) ([]uint, error)
	UpdateName(imageID uint, name string) error
	UpdateNotes(imageID uint, notes string) error
	SetCategory(imageID, categoryID uint) error
	SetLocation(imageID, locationID uint) error
	ReplaceSubCategory(imageID, newID, oldID uint) error
	Delete(imageID uint) error
}

// CategoryRepositoryInterface defines the methods for category data
// operations
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	ListAll() ([]models.Category, error)
	ListSubCategories(categoryID uint) ([]models.SubCategory, error)
	AttachSubCategory(categoryID, subCategoryID uint) error
	DetachSubCategory(categoryID, subCategoryID uint) error
	Update(categoryID uint, name, notes string) error
	Delete(categoryID uint) error
}

// SubCategoryRepositoryInterface defines the methods for sub-category data
// operations
type SubCategoryRepositoryInterface interface {
	Create(sub *models.SubCategory, categoryID uint) error
	GetByID(id uint) (*models.SubCategory, error)
	ListAll() ([]models.SubCategory, error)
	Update(subCategoryID uint, name, notes string) error
	Delete(subCategoryID uint) error
}

// LocationRepositoryInterface defines the methods for location data
// operations
type LocationRepositoryInterface interface {
	Create(location *models.Location) error
	GetByID(id uint) (*models.Location, error)
	ListAll() ([]models.Location, error)
	Update(locationID uint, name, geoTag, notes string) error
	Delete(locationID uint) error
}
