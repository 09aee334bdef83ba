package models

// Image is a machinery photo identified by its URL
type Image struct {
	URL         string     `gorm:"primaryKey" json:"url"`
	MachineryID uint       `gorm:"not null;index" json:"machinery_id"`
	Machinery   *Machinery `gorm:"foreignKey:MachineryID" json:"-"`
}

// TableName specifies the table name for the Image model
func (Image) TableName() string {
	return "images"
}

// Key returns the primary key
func (i Image) Key() string {
	return i.URL
}
