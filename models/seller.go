package models

import (
	"time"

	"gorm.io/gorm"
)

// Seller represents a company or person listing machinery for rent
type Seller struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Account
	AddressLine string      `gorm:"not null" json:"address_line"`
	LogoURL     *string     `json:"logo_url"` // nullable
	Machineries []Machinery `gorm:"foreignKey:SellerID;constraint:OnDelete:CASCADE" json:"machineries,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Seller model
func (Seller) TableName() string {
	return "sellers"
}

// Key returns the primary key
func (s Seller) Key() uint {
	return s.ID
}

// BeforeSave keeps the normalized identity columns in sync
func (s *Seller) BeforeSave(tx *gorm.DB) error {
	s.Account.Normalize()
	return nil
}
