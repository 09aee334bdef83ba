package services

import (
	"context"
	"errors"
	"testing"

	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type BuyerServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	uow     *repository.UnitOfWork
	service *BuyerService
	ctx     context.Context
}

func (s *BuyerServiceTestSuite) SetupTest() {
	s.db, s.uow = newUnitOfWork(s.T())
	s.service = NewBuyerService(s.uow)
	s.ctx = context.Background()
}

func (s *BuyerServiceTestSuite) create(name string) *models.Buyer {
	buyer, err := s.service.Create(s.ctx, dto.BuyerRequest{AccountRequest: accountRequest(name), Name: name})
	s.Require().NoError(err)
	return buyer
}

func (s *BuyerServiceTestSuite) TestCreateHashesPassword() {
	buyer := s.create("alice")

	s.NotEqual("password-alice", buyer.PasswordHash)
	s.True(passwordMatches(buyer.Account, "password-alice"))
	s.False(passwordMatches(buyer.Account, "wrong"))
	s.Equal("ALICE@EXAMPLE.COM", buyer.NormalizedEmail)
	s.Equal("ALICE", buyer.NormalizedUserName)
}

func (s *BuyerServiceTestSuite) TestStoreConflictNamesRequestField() {
	// staged but not yet committed, so the uniqueness checks cannot see it
	rival := &models.Buyer{
		Account: models.Account{UserName: "rival", Email: "Alice@example.com", PhoneNumber: "+1", PasswordHash: "x"},
		Name:    "Rival",
	}
	rival.Normalize()
	repository.New[models.Buyer, uint](s.uow).Add(rival)

	_, err := s.service.Create(s.ctx, dto.BuyerRequest{AccountRequest: accountRequest("alice"), Name: "Alice"})

	var conflict *repository.ConflictError
	s.Require().True(errors.As(err, &conflict), "got %v", err)
	s.Equal("email", conflict.Field)
	s.Equal("Buyer", conflict.Entity)
}

func (s *BuyerServiceTestSuite) TestCreateRequiresPassword() {
	req := dto.BuyerRequest{AccountRequest: accountRequest("alice"), Name: "Alice"}
	req.Password = ""

	_, err := s.service.Create(s.ctx, req)

	var validationErr *ValidationError
	s.Require().True(errors.As(err, &validationErr))
	s.Equal("password", validationErr.Field)
}

func (s *BuyerServiceTestSuite) TestCreateEmailConflict() {
	s.create("alice")

	req := dto.BuyerRequest{AccountRequest: accountRequest("bob"), Name: "Bob"}
	req.Email = "Alice@Example.com"
	_, err := s.service.Create(s.ctx, req)

	var conflict *repository.ConflictError
	s.Require().True(errors.As(err, &conflict))
	s.Equal("email", conflict.Field)
	s.Equal("Buyer", conflict.Entity)

	var count int64
	s.db.Model(&models.Buyer{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *BuyerServiceTestSuite) TestUpdateExcludesSelfAndKeepsPassword() {
	alice := s.create("alice")
	originalHash := alice.PasswordHash

	req := dto.BuyerRequest{AccountRequest: accountRequest("alice"), Name: "Alice", Surname: "Liddell"}
	req.Password = ""
	updated, err := s.service.Update(s.ctx, alice.ID, req)
	s.Require().NoError(err)

	s.Equal("Liddell", updated.Surname)
	s.Equal(originalHash, updated.PasswordHash)
}

func (s *BuyerServiceTestSuite) TestUpdateConflictsWithOtherBuyer() {
	s.create("alice")
	bob := s.create("bob")

	req := dto.BuyerRequest{AccountRequest: accountRequest("bob"), Name: "Bob"}
	req.UserName = "ALICE"
	_, err := s.service.Update(s.ctx, bob.ID, req)

	var conflict *repository.ConflictError
	s.Require().True(errors.As(err, &conflict))
	s.Equal("username", conflict.Field)
}

func (s *BuyerServiceTestSuite) TestDeleteRemovesOrders() {
	alice := s.create("alice")
	seller := testutil.CreateSeller(s.T(), s.db, "acme")
	tractor := testutil.CreateMachinery(s.T(), s.db, seller.ID, "Tractor")
	testutil.CreateOrder(s.T(), s.db, alice.ID, "new", tractor)
	testutil.CreateOrder(s.T(), s.db, alice.ID, "done", tractor)

	s.Require().NoError(s.service.Delete(s.ctx, alice.ID))

	var count int64
	s.db.Model(&models.Order{}).Count(&count)
	s.Equal(int64(0), count)
	s.db.Table("order_machineries").Count(&count)
	s.Equal(int64(0), count)
	s.db.Model(&models.Machinery{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *BuyerServiceTestSuite) TestDeleteRange() {
	alice := s.create("alice")
	bob := s.create("bob")
	carol := s.create("carol")
	testutil.CreateOrder(s.T(), s.db, bob.ID, "new")

	removed, err := s.service.DeleteRange(s.ctx, dto.DeleteRangeRequest{IDs: []uint{alice.ID, bob.ID, 404}})
	s.Require().NoError(err)
	s.Equal(2, removed)

	buyers, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal([]uint{carol.ID}, repository.Keys[models.Buyer, uint](buyers))
}

func TestBuyerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BuyerServiceTestSuite))
}

func TestSellerUniquenessIsPerEntityType(t *testing.T) {
	_, uow := newUnitOfWork(t)
	ctx := context.Background()

	_, err := NewBuyerService(uow).Create(ctx, dto.BuyerRequest{AccountRequest: accountRequest("acme"), Name: "Acme"})
	require.NoError(t, err)

	// the same identity may exist once as a buyer and once as a seller
	seller, err := NewSellerService(uow).Create(ctx, dto.SellerRequest{AccountRequest: accountRequest("acme"), AddressLine: "Kyiv"})
	require.NoError(t, err)

	_, err = NewSellerService(uow).Create(ctx, dto.SellerRequest{AccountRequest: accountRequest("acme"), AddressLine: "Lviv"})
	assert.True(t, repository.IsConflict(err))

	logo := "https://cdn.example.com/acme.png"
	req := dto.SellerRequest{AccountRequest: accountRequest("acme"), AddressLine: "Odesa", LogoURL: &logo}
	updated, err := NewSellerService(uow).Update(ctx, seller.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Odesa", updated.AddressLine)
	require.NotNil(t, updated.LogoURL)
	assert.Equal(t, logo, *updated.LogoURL)
}

func TestSellerDeleteCascades(t *testing.T) {
	db, uow := newUnitOfWork(t)
	ctx := context.Background()
	s3 := NewMockS3Service()
	withImageStorage(t, NewS3ImageStorage(s3))

	seller := testutil.CreateSeller(t, db, "acme")
	other := testutil.CreateSeller(t, db, "other")
	buyer := testutil.CreateBuyer(t, db, "bob")
	tractor := testutil.CreateMachinery(t, db, seller.ID, "Tractor")
	kept := testutil.CreateMachinery(t, db, other.ID, "Kept")
	category := testutil.CreateCategory(t, db, "farm", tractor, kept)
	order := testutil.CreateOrder(t, db, buyer.ID, "new", tractor, kept)

	image, err := NewImageService(uow).Upload(ctx, tractor.ID, createTestFileHeader(t, "tractor.png", []byte("png")))
	require.NoError(t, err)
	require.Len(t, s3.GetUploadedFiles(), 1)

	require.NoError(t, NewSellerService(uow).Delete(ctx, seller.ID))

	assert.Empty(t, s3.GetUploadedFiles(), "stored file removed after commit")
	assert.Len(t, s3.DeletedKeys(), 1)
	_, err = NewImageService(uow).Lookup(ctx, tractor.ID, image.URL)
	assert.True(t, repository.IsNotFound(err))

	machineries, err := NewMachineryService(uow).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{kept.ID}, repository.Keys[models.Machinery, uint](machineries))

	gotCategory, err := NewCategoryService(uow).Get(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{kept.ID}, repository.Keys[models.Machinery, uint](gotCategory.Machineries))

	gotOrder, err := NewOrderService(uow).Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{kept.ID}, repository.Keys[models.Machinery, uint](gotOrder.Machineries))
}

func TestSellerDeleteRange(t *testing.T) {
	db, uow := newUnitOfWork(t)
	a := testutil.CreateSeller(t, db, "a")
	b := testutil.CreateSeller(t, db, "b")
	testutil.CreateMachinery(t, db, a.ID, "One")
	testutil.CreateMachinery(t, db, b.ID, "Two")

	removed, err := NewSellerService(uow).DeleteRange(context.Background(), dto.DeleteRangeRequest{IDs: []uint{a.ID, b.ID}})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	var count int64
	db.Model(&models.Machinery{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
