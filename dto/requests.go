package dto

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// AccountRequest holds the identity fields shared by buyer and seller payloads
type AccountRequest struct {
	UserName             string `json:"username" binding:"required,max=256"`
	Email                string `json:"email" binding:"required,email,max=256"`
	Password             string `json:"password" binding:"omitempty,min=8,max=72"` // plain text, hashed before storage
	PhoneNumber          string `json:"phone_number" binding:"required,max=32"`
	EmailConfirmed       bool   `json:"email_confirmed"`
	PhoneNumberConfirmed bool   `json:"phone_number_confirmed"`
	TwoFactorEnabled     bool   `json:"two_factor_enabled"`
	LockoutEnabled       bool   `json:"lockout_enabled"`
	AccessFailedCount    int    `json:"access_failed_count" binding:"gte=0"`
}

// BuyerRequest represents the request body for creating or replacing a buyer
type BuyerRequest struct {
	AccountRequest
	Name        string `json:"name" binding:"required"`
	Surname     string `json:"surname"`
	AddressLine string `json:"address_line"`
}

// SellerRequest represents the request body for creating or replacing a seller
type SellerRequest struct {
	AccountRequest
	AddressLine string  `json:"address_line" binding:"required"`
	LogoURL     *string `json:"logo_url" binding:"omitempty,url"`
}

// CategoryRequest represents the request body for creating or updating a
// category. machinery_ids is the complete desired membership.
type CategoryRequest struct {
	Name         string `json:"name" binding:"required,max=128"`
	MachineryIDs []uint `json:"machinery_ids" binding:"required"`
}

// CreateMachineryRequest represents the request body for listing a machinery
type CreateMachineryRequest struct {
	Name        string `json:"name" binding:"required"`
	AddressLine string `json:"address_line" binding:"required"`
	Price       string `json:"price" binding:"required"`
	SellerID    uint   `json:"seller_id" binding:"required"`
	CategoryIDs []uint `json:"category_ids"`
}

// UpdateMachineryRequest represents the request body for updating a machinery.
// The seller cannot change. A nil category_ids leaves categories untouched.
type UpdateMachineryRequest struct {
	Name        string `json:"name" binding:"required"`
	AddressLine string `json:"address_line" binding:"required"`
	Price       string `json:"price" binding:"required"`
	CategoryIDs []uint `json:"category_ids"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	Status       string `json:"status" binding:"required"`
	BuyerID      uint   `json:"buyer_id" binding:"required"`
	MachineryIDs []uint `json:"machinery_ids" binding:"required"`
}

// UpdateOrderRequest represents the request body for updating an order.
// machinery_ids is the complete desired set.
type UpdateOrderRequest struct {
	Status       string `json:"status" binding:"required"`
	MachineryIDs []uint `json:"machinery_ids" binding:"required"`
}

// ImageRequest represents the request body for registering an image URL
type ImageRequest struct {
	URL         string `json:"url" binding:"required,url"`
	MachineryID uint   `json:"machinery_id" binding:"required"`
}

// DeleteRangeRequest represents the request body for bulk deletes
type DeleteRangeRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks a request struct against its binding tags. Gin runs the
// same rules on ShouldBindJSON; services call this for requests that did
// not come through gin (seed files, tests).
func Validate(request interface{}) error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
		// report JSON names, not Go field names
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate.Struct(request)
}
