package models

// SentinelCategoryID and SentinelLocationID identify the protected default
// rows seeded during storage initialization. Images that have not been
// assigned a category or location reference these, never NULL.
const (
	SentinelCategoryID uint = 1
	SentinelLocationID uint = 1
)

// Image represents a cataloged photograph in the database using GORM.
// It corresponds to the 'images' table.
type Image struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null" json:"name"` // display name, independent of the on-disk file

	// FileName and Subfolder locate the managed copy under the catalog
	// root; both are fixed at ingestion time. name may diverge from
	// file_name after a rename, the disk file is never moved.
	FileName  string `gorm:"not null" json:"file_name"`
	Subfolder string `gorm:"not null" json:"subfolder"`

	FileType  string  `gorm:"not null" json:"file_type"` // format class, e.g. "RAW-NEF"
	DateTaken int64   `gorm:"index" json:"date_taken"`   // Unix timestamp (file modification time)
	Size      float64 `gorm:"" json:"size"`              // megabytes, rounded to 3 decimals

	Camera       string  `gorm:"" json:"camera"`
	ISO          int     `gorm:"column:iso" json:"iso"`
	FStop        float64 `gorm:"column:fstop" json:"fstop"`
	ExposureTime int     `gorm:"" json:"exposure_time"` // milliseconds
	ExposureBias float64 `gorm:"" json:"exposure_bias"` // EV steps
	FocalLength  float64 `gorm:"" json:"focal_length"`  // mm

	Notes string `gorm:"" json:"notes"`

	// CategoryID always references a categories row; defaults to the
	// sentinel "All" category rather than NULL.
	CategoryID uint `gorm:"not null;default:1" json:"category_id"`
}

// TableName explicitly sets the table name for GORM.
func (Image) TableName() string {
	return "images"
}
