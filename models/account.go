package models

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Account holds the identity fields shared by buyers and sellers
type Account struct {
	UserName             string `gorm:"not null;index" json:"username"`
	NormalizedUserName   string `gorm:"uniqueIndex;not null" json:"-"` // lookup key for uniqueness checks
	Email                string `gorm:"not null" json:"email"`
	NormalizedEmail      string `gorm:"uniqueIndex;not null" json:"-"`
	EmailConfirmed       bool   `gorm:"not null" json:"email_confirmed"`
	PasswordHash         string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	PhoneNumber          string `gorm:"uniqueIndex;not null" json:"phone_number"`
	PhoneNumberConfirmed bool   `gorm:"not null" json:"phone_number_confirmed"`
	TwoFactorEnabled     bool   `gorm:"not null" json:"two_factor_enabled"`
	LockoutEnabled       bool   `gorm:"not null" json:"lockout_enabled"`
	AccessFailedCount    int    `gorm:"not null" json:"access_failed_count"`
}

// Normalize refreshes the normalized lookup columns from the raw values
func (a *Account) Normalize() {
	a.NormalizedUserName = NormalizeIdentity(a.UserName)
	a.NormalizedEmail = NormalizeIdentity(a.Email)
}

// NormalizeIdentity folds a username or email to the form used for
// uniqueness: trimmed, NFKC-composed and upper-cased.
func NormalizeIdentity(value string) string {
	// a Caser keeps state, so each call gets its own
	return cases.Upper(language.Und).String(norm.NFKC.String(strings.TrimSpace(value)))
}
