package models

// Location represents a shooting location in the database using GORM.
// It corresponds to the 'locations' table. The id-1 "None" row is a
// protected sentinel seeded at migration time; it can never be edited
// or deleted.
type Location struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string `gorm:"not null;unique" json:"name"`
	GeoTag string `gorm:"" json:"geo_tag"` // free text, e.g. coordinate string
	Notes  string `gorm:"" json:"notes"`
}

// TableName explicitly sets the table name for GORM.
func (Location) TableName() string {
	return "locations"
}
