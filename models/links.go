package models

// Link tables are modeled explicitly (rather than via GORM's many2many
// tags) because each join row carries its own identifier and the image
// side enforces slot semantics that a plain join table cannot express.

// CategorySubCategory relates a category to one of its sub-categories.
// It corresponds to the 'categories_subcategories' table.
type CategorySubCategory struct {
	ID            uint `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID    uint `gorm:"not null;index" json:"category_id"`
	SubCategoryID uint `gorm:"column:subcategory_id;not null;index" json:"subcategory_id"`
}

// TableName explicitly sets the table name for GORM.
func (CategorySubCategory) TableName() string {
	return "categories_subcategories"
}

// MaxSubCategoriesPerImage caps the images_subcategories rows an image may
// hold. The two slots an image exposes map onto its rows in link-id order.
const MaxSubCategoriesPerImage = 2

// ImageSubCategory relates an image to one of its (at most two)
// sub-categories. It corresponds to the 'images_subcategories' table.
type ImageSubCategory struct {
	ID            uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageID       uint `gorm:"not null;index" json:"image_id"`
	SubCategoryID uint `gorm:"column:subcategory_id;not null;index" json:"subcategory_id"`
}

// TableName explicitly sets the table name for GORM.
func (ImageSubCategory) TableName() string {
	return "images_subcategories"
}

// ImageLocation relates an image to its location. Every image has exactly
// one row here, pointing at the sentinel "None" location when unset.
// It corresponds to the 'images_locations' table.
type ImageLocation struct {
	ID         uint `gorm:"primaryKey;autoIncrement" json:"id"`
	ImageID    uint `gorm:"not null;uniqueIndex" json:"image_id"`
	LocationID uint `gorm:"not null;index" json:"location_id"`
}

// TableName explicitly sets the table name for GORM.
func (ImageLocation) TableName() string {
	return "images_locations"
}
