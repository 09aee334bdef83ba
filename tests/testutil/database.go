package testutil

import (
	"testing"

	"github.com/heavydutyrent/machinery-api/config"
	"github.com/heavydutyrent/machinery-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewTestDB opens a migrated in-memory SQLite database with foreign keys
// enforced. The pool is pinned to one connection so every query sees the
// same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), config.GormConfig("silent"))
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CreateSeller inserts a seller with unique identity fields derived from name
func CreateSeller(t *testing.T, db *gorm.DB, name string) models.Seller {
	t.Helper()

	seller := models.Seller{
		Account:     testAccount(t, name),
		AddressLine: name + " street 1",
	}
	mustCreate(t, db, &seller)
	return seller
}

// CreateBuyer inserts a buyer with unique identity fields derived from name
func CreateBuyer(t *testing.T, db *gorm.DB, name string) models.Buyer {
	t.Helper()

	buyer := models.Buyer{
		Account: testAccount(t, name),
		Name:    name,
	}
	mustCreate(t, db, &buyer)
	return buyer
}

// CreateMachinery inserts a machinery owned by sellerID
func CreateMachinery(t *testing.T, db *gorm.DB, sellerID uint, name string) models.Machinery {
	t.Helper()

	machinery := models.Machinery{
		Name:        name,
		AddressLine: "Depot 7",
		Price:       "300$",
		SellerID:    sellerID,
	}
	mustCreate(t, db, &machinery)
	return machinery
}

// CreateImage inserts an image for machineryID
func CreateImage(t *testing.T, db *gorm.DB, machineryID uint, url string) models.Image {
	t.Helper()

	image := models.Image{URL: url, MachineryID: machineryID}
	mustCreate(t, db, &image)
	return image
}

// CreateCategory inserts a category linked to machineries
func CreateCategory(t *testing.T, db *gorm.DB, name string, machineries ...models.Machinery) models.Category {
	t.Helper()

	category := models.Category{Name: name, Slug: name}
	mustCreate(t, db, &category)
	if len(machineries) > 0 {
		if err := db.Model(&category).Association("Machineries").Append(machineries); err != nil {
			t.Fatalf("Failed to link category machineries: %v", err)
		}
	}
	return category
}

// CreateOrder inserts an order for buyerID linked to machineries
func CreateOrder(t *testing.T, db *gorm.DB, buyerID uint, status string, machineries ...models.Machinery) models.Order {
	t.Helper()

	order := models.Order{Status: status, BuyerID: buyerID}
	mustCreate(t, db, &order)
	if len(machineries) > 0 {
		if err := db.Model(&order).Association("Machineries").Append(machineries); err != nil {
			t.Fatalf("Failed to link order machineries: %v", err)
		}
	}
	return order
}

func testAccount(t *testing.T, name string) models.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password-"+name), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return models.Account{
		UserName:     name,
		Email:        name + "@example.com",
		PasswordHash: string(hash),
		PhoneNumber:  "+380" + name,
	}
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()

	if err := db.Omit(clause.Associations).Create(value).Error; err != nil {
		t.Fatalf("Failed to create %T: %v", value, err)
	}
}
