package services

import (
	"errors"
	"strings"

	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/uniqueness"
	"golang.org/x/crypto/bcrypt"
)

// passwordHashCost is lowered by tests
var passwordHashCost = bcrypt.DefaultCost

// applyAccount copies the identity fields of req onto account. The password
// is only replaced when one is given; requirePassword makes it mandatory.
func applyAccount(account *models.Account, req dto.AccountRequest, requirePassword bool) error {
	account.UserName = strings.TrimSpace(req.UserName)
	account.Email = strings.TrimSpace(req.Email)
	account.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	account.EmailConfirmed = req.EmailConfirmed
	account.PhoneNumberConfirmed = req.PhoneNumberConfirmed
	account.TwoFactorEnabled = req.TwoFactorEnabled
	account.LockoutEnabled = req.LockoutEnabled
	account.AccessFailedCount = req.AccessFailedCount
	account.Normalize()

	if req.Password == "" {
		if requirePassword {
			return &ValidationError{Field: "password", Message: "is required"}
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordHashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return &ValidationError{Field: "password", Message: "must be at most 72 bytes"}
	}
	if err != nil {
		return err
	}
	account.PasswordHash = string(hash)

	return nil
}

// accountFields declares the unique identity fields of an account holder in
// check order: username, email, phone number
func accountFields[T any](account func(*T) *models.Account) []uniqueness.Field[T] {
	return []uniqueness.Field[T]{
		{
			Name:      "username",
			Column:    "normalized_user_name",
			Value:     func(e *T) string { return account(e).UserName },
			Normalize: models.NormalizeIdentity,
		},
		{
			Name:      "email",
			Column:    "normalized_email",
			Value:     func(e *T) string { return account(e).Email },
			Normalize: models.NormalizeIdentity,
		},
		{
			Name:   "phone_number",
			Column: "phone_number",
			Value:  func(e *T) string { return account(e).PhoneNumber },
		},
	}
}

// abort drops whatever the failed operation staged and returns err
func abort(uow *repository.UnitOfWork, err error) error {
	uow.Discard()
	return err
}
