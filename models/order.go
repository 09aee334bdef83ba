package models

import "time"

// Order represents a buyer's rental request covering one or more machineries
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Status      string      `gorm:"not null" json:"status"` // free-form
	BuyerID     uint        `gorm:"not null;index" json:"buyer_id"`
	Buyer       *Buyer      `gorm:"foreignKey:BuyerID" json:"-"`
	Machineries []Machinery `gorm:"many2many:order_machineries;constraint:OnDelete:CASCADE" json:"machineries,omitempty"`
	CreatedAt   time.Time   `gorm:"<-:create" json:"created_at"` // written once on insert
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Key returns the primary key
func (o Order) Key() uint {
	return o.ID
}
