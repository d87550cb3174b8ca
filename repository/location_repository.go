package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/camden-git/photocatalog/models"
)

// LocationRepository handles database operations for Location entities.
type LocationRepository struct {
	DB *gorm.DB
}

// NewLocationRepository creates a new instance of LocationRepository
func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{DB: db}
}

// Create creates a new location record
func (r *LocationRepository) Create(location *models.Location) error {
	if err := r.DB.Create(location).Error; err != nil {
		return fmt.Errorf("failed to create location %s: %w", location.Name, err)
	}
	return nil
}

// GetByID retrieves a location by its identifier
func (r *LocationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	err := r.DB.First(&location, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get location by ID %d: %w", id, err)
	}
	return &location, nil
}

// ListAll retrieves all locations, ordered by name
func (r *LocationRepository) ListAll() ([]models.Location, error) {
	var locations []models.Location
	err := r.DB.Order("name ASC").Find(&locations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// Update changes a location's name, geo tag and notes. The sentinel
// location is protected.
func (r *LocationRepository) Update(locationID uint, name, geoTag, notes string) error {
	if locationID == models.SentinelLocationID {
		return ErrProtectedEntity
	}
	result := r.DB.Model(&models.Location{}).Where("id = ?", locationID).
		Updates(map[string]interface{}{"name": name, "geo_tag": geoTag, "notes": notes})
	if result.Error != nil {
		return fmt.Errorf("failed to update location %d: %w", locationID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a location and re-points images that referenced it back
// to the sentinel "None" location, so every image keeps exactly one
// location link and nothing dangles. Image rows are never deleted by this
// path.
func (r *LocationRepository) Delete(locationID uint) error {
	if locationID == models.SentinelLocationID {
		return ErrProtectedEntity
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ImageLocation{}).Where("location_id = ?", locationID).
			Update("location_id", models.SentinelLocationID).Error; err != nil {
			return fmt.Errorf("failed to reset image links for location %d: %w", locationID, err)
		}
		result := tx.Delete(&models.Location{}, locationID)
		if result.Error != nil {
			return fmt.Errorf("failed to delete location %d: %w", locationID, result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
