package dto

import (
	"time"

	"github.com/heavydutyrent/machinery-api/models"
)

// ImageResponse is the public view of an image
type ImageResponse struct {
	URL         string `json:"url"`
	MachineryID uint   `json:"machinery_id"`
}

// MachinerySummary is a machinery as embedded in a category or an order.
// It never carries its categories, orders or seller.
type MachinerySummary struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	AddressLine string          `json:"address_line"`
	Price       string          `json:"price"`
	SellerID    uint            `json:"seller_id"`
	Images      []ImageResponse `json:"images"`
}

// MachineryResponse is the full view of a machinery
type MachineryResponse struct {
	MachinerySummary
	Categories []CategorySummary `json:"categories"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// CategorySummary names a category without its members
type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryResponse is a category with its machineries
type CategoryResponse struct {
	CategorySummary
	Machineries []MachinerySummary `json:"machineries"`
}

// OrderResponse is an order with its machineries
type OrderResponse struct {
	ID          uint               `json:"id"`
	Status      string             `json:"status"`
	BuyerID     uint               `json:"buyer_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Machineries []MachinerySummary `json:"machineries"`
}

// AccountResponse is the public part of an account. The password hash and
// normalized lookup columns are never exposed.
type AccountResponse struct {
	UserName             string `json:"username"`
	Email                string `json:"email"`
	EmailConfirmed       bool   `json:"email_confirmed"`
	PhoneNumber          string `json:"phone_number"`
	PhoneNumberConfirmed bool   `json:"phone_number_confirmed"`
	TwoFactorEnabled     bool   `json:"two_factor_enabled"`
	LockoutEnabled       bool   `json:"lockout_enabled"`
	AccessFailedCount    int    `json:"access_failed_count"`
}

// BuyerResponse is the public view of a buyer
type BuyerResponse struct {
	ID uint `json:"id"`
	AccountResponse
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	AddressLine string    `json:"address_line"`
	OrderIDs    []uint    `json:"order_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

// SellerResponse is the public view of a seller
type SellerResponse struct {
	ID uint `json:"id"`
	AccountResponse
	AddressLine  string    `json:"address_line"`
	LogoURL      *string   `json:"logo_url"`
	MachineryIDs []uint    `json:"machinery_ids"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewImageResponse maps an image
func NewImageResponse(image models.Image) ImageResponse {
	return ImageResponse{URL: image.URL, MachineryID: image.MachineryID}
}

// NewImageResponses maps a slice of images; nil maps to an empty slice
func NewImageResponses(images []models.Image) []ImageResponse {
	return mapSlice(images, NewImageResponse)
}

// NewMachinerySummary maps a machinery without back-references
func NewMachinerySummary(m models.Machinery) MachinerySummary {
	return MachinerySummary{
		ID:          m.ID,
		Name:        m.Name,
		AddressLine: m.AddressLine,
		Price:       m.Price,
		SellerID:    m.SellerID,
		Images:      NewImageResponses(m.Images),
	}
}

// NewMachinerySummaries maps a slice of machineries
func NewMachinerySummaries(machineries []models.Machinery) []MachinerySummary {
	return mapSlice(machineries, NewMachinerySummary)
}

// NewMachineryResponse maps a machinery with its images and categories
func NewMachineryResponse(m models.Machinery) MachineryResponse {
	return MachineryResponse{
		MachinerySummary: NewMachinerySummary(m),
		Categories:       mapSlice(m.Categories, NewCategorySummary),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// NewMachineryResponses maps a slice of machineries
func NewMachineryResponses(machineries []models.Machinery) []MachineryResponse {
	return mapSlice(machineries, NewMachineryResponse)
}

// NewCategorySummary maps a category without its members
func NewCategorySummary(c models.Category) CategorySummary {
	return CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// NewCategoryResponse maps a category with its machineries
func NewCategoryResponse(c models.Category) CategoryResponse {
	return CategoryResponse{
		CategorySummary: NewCategorySummary(c),
		Machineries:     NewMachinerySummaries(c.Machineries),
	}
}

// NewCategoryResponses maps a slice of categories
func NewCategoryResponses(categories []models.Category) []CategoryResponse {
	return mapSlice(categories, NewCategoryResponse)
}

// NewOrderResponse maps an order with its machineries
func NewOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		Status:      o.Status,
		BuyerID:     o.BuyerID,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Machineries: NewMachinerySummaries(o.Machineries),
	}
}

// NewOrderResponses maps a slice of orders
func NewOrderResponses(orders []models.Order) []OrderResponse {
	return mapSlice(orders, NewOrderResponse)
}

func newAccountResponse(a models.Account) AccountResponse {
	return AccountResponse{
		UserName:             a.UserName,
		Email:                a.Email,
		EmailConfirmed:       a.EmailConfirmed,
		PhoneNumber:          a.PhoneNumber,
		PhoneNumberConfirmed: a.PhoneNumberConfirmed,
		TwoFactorEnabled:     a.TwoFactorEnabled,
		LockoutEnabled:       a.LockoutEnabled,
		AccessFailedCount:    a.AccessFailedCount,
	}
}

// NewBuyerResponse maps a buyer; orders are referenced by id only
func NewBuyerResponse(b models.Buyer) BuyerResponse {
	return BuyerResponse{
		ID:              b.ID,
		AccountResponse: newAccountResponse(b.Account),
		Name:            b.Name,
		Surname:         b.Surname,
		AddressLine:     b.AddressLine,
		OrderIDs:        mapSlice(b.Orders, func(o models.Order) uint { return o.ID }),
		CreatedAt:       b.CreatedAt,
	}
}

// NewBuyerResponses maps a slice of buyers
func NewBuyerResponses(buyers []models.Buyer) []BuyerResponse {
	return mapSlice(buyers, NewBuyerResponse)
}

// NewSellerResponse maps a seller; machineries are referenced by id only
func NewSellerResponse(s models.Seller) SellerResponse {
	return SellerResponse{
		ID:              s.ID,
		AccountResponse: newAccountResponse(s.Account),
		AddressLine:     s.AddressLine,
		LogoURL:         s.LogoURL,
		MachineryIDs:    mapSlice(s.Machineries, func(m models.Machinery) uint { return m.ID }),
		CreatedAt:       s.CreatedAt,
	}
}

// NewSellerResponses maps a slice of sellers
func NewSellerResponses(sellers []models.Seller) []SellerResponse {
	return mapSlice(sellers, NewSellerResponse)
}

func mapSlice[S any, D any](in []S, fn func(S) D) []D {
	out := make([]D, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
