package models

// Category represents a top-level grouping in the database using GORM.
// It corresponds to the 'categories' table. The id-1 "All" row is a
// protected sentinel seeded at migration time.
type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null;unique" json:"name"`
	Notes string `gorm:"" json:"notes"`

	// SubCategories is populated from the categories_subcategories link
	// table when preloaded; ordering follows link-row insertion order.
	SubCategories []SubCategory `gorm:"-" json:"subcategories,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// SubCategory represents a second-level grouping. A sub-category can be
// linked to any number of categories and to at most two slots per image.
type SubCategory struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Notes string `gorm:"" json:"notes"`
}

// TableName explicitly sets the table name for GORM.
func (SubCategory) TableName() string {
	return "subcategories"
}
