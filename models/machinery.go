package models

import "time"

// Machinery represents a rentable machine listed by a seller
type Machinery struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	AddressLine string     `gorm:"not null" json:"address_line"`
	Price       string     `gorm:"not null" json:"price"` // opaque, e.g. "300$"; never parsed
	SellerID    uint       `gorm:"not null;index" json:"seller_id"`
	Seller      *Seller    `gorm:"foreignKey:SellerID" json:"-"`
	Images      []Image    `gorm:"foreignKey:MachineryID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Categories  []Category `gorm:"many2many:category_machineries;constraint:OnDelete:CASCADE" json:"-"`
	Orders      []Order    `gorm:"many2many:order_machineries;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the table name for the Machinery model
func (Machinery) TableName() string {
	return "machineries"
}

// Key returns the primary key
func (m Machinery) Key() uint {
	return m.ID
}
