package services

import (
	"context"
	"strings"

	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/uniqueness"
)

// SellerService implements the seller use cases on one unit of work
type SellerService struct {
	uow         *repository.UnitOfWork
	sellers     *repository.GormRepository[models.Seller, uint]
	machineries *repository.GormRepository[models.Machinery, uint]
	unique      *uniqueness.Validator[models.Seller, uint]
}

// NewSellerService creates a seller service bound to uow
func NewSellerService(uow *repository.UnitOfWork) *SellerService {
	sellers := repository.New[models.Seller, uint](uow)
	return &SellerService{
		uow:         uow,
		sellers:     sellers,
		machineries: repository.New[models.Machinery, uint](uow),
		unique: uniqueness.New[models.Seller, uint](sellers,
			accountFields(func(s *models.Seller) *models.Account { return &s.Account })...),
	}
}

// List returns every seller with its machineries
func (s *SellerService) List(ctx context.Context) ([]models.Seller, error) {
	return s.sellers.Include("Machineries").Find(ctx)
}

// Get returns one seller with its machineries
func (s *SellerService) Get(ctx context.Context, id uint) (*models.Seller, error) {
	return s.sellers.Include("Machineries").GetByID(ctx, id)
}

// Create registers a new seller. The password is required.
func (s *SellerService) Create(ctx context.Context, req dto.SellerRequest) (*models.Seller, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	seller := &models.Seller{}
	if err := s.apply(seller, req, true); err != nil {
		return nil, err
	}
	if err := s.unique.Validate(ctx, seller, nil); err != nil {
		return nil, err
	}

	s.sellers.Add(seller)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, s.unique.Translate(err)
	}

	return s.Get(ctx, seller.ID)
}

// Update replaces a seller's fields. An empty password keeps the current one.
func (s *SellerService) Update(ctx context.Context, id uint, req dto.SellerRequest) (*models.Seller, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	seller, err := s.sellers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(seller, req, false); err != nil {
		return nil, err
	}
	if err := s.unique.Validate(ctx, seller, &id); err != nil {
		return nil, err
	}

	s.sellers.Update(seller)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, s.unique.Translate(err)
	}

	return s.Get(ctx, id)
}

// Delete removes a seller with its machineries and their images
func (s *SellerService) Delete(ctx context.Context, id uint) error {
	seller, err := s.sellers.Include("Machineries", "Machineries.Images").GetByID(ctx, id)
	if err != nil {
		return err
	}

	urls := imageURLs(seller.Machineries)
	s.machineries.RemoveRange(seller.Machineries)
	s.sellers.Remove(seller)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return err
	}

	deleteStoredImages(ctx, urls)
	return nil
}

// DeleteRange removes every listed seller that exists and returns how many
// were removed. Unknown ids are ignored.
func (s *SellerService) DeleteRange(ctx context.Context, req dto.DeleteRangeRequest) (int, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	sellers, err := s.sellers.Include("Machineries", "Machineries.Images").
		Where(repository.KeyIn(req.IDs)).
		Find(ctx)
	if err != nil {
		return 0, err
	}

	var machineries []models.Machinery
	for _, seller := range sellers {
		machineries = append(machineries, seller.Machineries...)
	}
	urls := imageURLs(machineries)

	s.machineries.RemoveRange(machineries)
	s.sellers.RemoveRange(sellers)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return 0, err
	}

	deleteStoredImages(ctx, urls)
	return len(sellers), nil
}

func (s *SellerService) apply(seller *models.Seller, req dto.SellerRequest, requirePassword bool) error {
	if err := applyAccount(&seller.Account, req.AccountRequest, requirePassword); err != nil {
		return err
	}
	seller.AddressLine = strings.TrimSpace(req.AddressLine)
	seller.LogoURL = req.LogoURL
	return nil
}

// imageURLs collects the image URLs of machineries loaded with their images
func imageURLs(machineries []models.Machinery) []string {
	var urls []string
	for _, m := range machineries {
		for _, image := range m.Images {
			urls = append(urls, image.URL)
		}
	}
	return urls
}
