package models

import "time"

// Category groups machinery listings (tractors, excavators, ...)
type Category struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Name        string      `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string      `gorm:"index;not null" json:"slug"` // derived from Name, may repeat
	Machineries []Machinery `gorm:"many2many:category_machineries;constraint:OnDelete:CASCADE" json:"machineries,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Key returns the primary key
func (c Category) Key() uint {
	return c.ID
}
