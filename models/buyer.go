package models

import (
	"time"

	"gorm.io/gorm"
)

// Buyer represents a customer who rents machinery through orders
type Buyer struct {
	ID uint `gorm:"primaryKey" json:"id"`
	Account
	Name        string    `gorm:"not null" json:"name"`
	Surname     string    `json:"surname"`
	AddressLine string    `json:"address_line"`
	Orders      []Order   `gorm:"foreignKey:BuyerID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Buyer model
func (Buyer) TableName() string {
	return "buyers"
}

// Key returns the primary key
func (b Buyer) Key() uint {
	return b.ID
}

// BeforeSave keeps the normalized identity columns in sync
func (b *Buyer) BeforeSave(tx *gorm.DB) error {
	b.Account.Normalize()
	return nil
}
