package services

import (
	"context"
	"strings"

	"github.com/heavydutyrent/machinery-api/association"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
)

// MachineryService implements the machinery use cases on one unit of work
type MachineryService struct {
	uow         *repository.UnitOfWork
	machineries *repository.GormRepository[models.Machinery, uint]
	sellers     *repository.GormRepository[models.Seller, uint]
	categories  *association.Reconciler[models.Category, uint]
}

// NewMachineryService creates a machinery service bound to uow
func NewMachineryService(uow *repository.UnitOfWork) *MachineryService {
	return &MachineryService{
		uow:         uow,
		machineries: repository.New[models.Machinery, uint](uow),
		sellers:     repository.New[models.Seller, uint](uow),
		categories: association.NewReconciler[models.Category, uint](
			repository.New[models.Category, uint](uow), "Categories"),
	}
}

// List returns every machinery with its images and categories
func (s *MachineryService) List(ctx context.Context) ([]models.Machinery, error) {
	return s.machineries.Include("Images", "Categories").Find(ctx)
}

// ListBySeller returns the machineries of one seller
func (s *MachineryService) ListBySeller(ctx context.Context, sellerID uint) ([]models.Machinery, error) {
	if _, err := s.sellers.GetByID(ctx, sellerID); err != nil {
		return nil, err
	}
	return s.machineries.Include("Images", "Categories").
		Where(repository.Eq("seller_id", sellerID)).
		Find(ctx)
}

// Get returns one machinery with its images and categories
func (s *MachineryService) Get(ctx context.Context, id uint) (*models.Machinery, error) {
	return s.machineries.Include("Images", "Categories").GetByID(ctx, id)
}

// Create lists a new machinery for an existing seller
func (s *MachineryService) Create(ctx context.Context, req dto.CreateMachineryRequest) (*models.Machinery, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.sellers.GetByID(ctx, req.SellerID); err != nil {
		if repository.IsNotFound(err) {
			return nil, missingReference("seller_id", "seller", req.SellerID)
		}
		return nil, err
	}

	machinery := &models.Machinery{
		Name:        strings.TrimSpace(req.Name),
		AddressLine: strings.TrimSpace(req.AddressLine),
		Price:       strings.TrimSpace(req.Price),
		SellerID:    req.SellerID,
	}
	s.machineries.Add(machinery)

	if len(req.CategoryIDs) > 0 {
		if _, err := s.categories.Reconcile(ctx, machinery, nil, req.CategoryIDs); err != nil {
			return nil, abort(s.uow, err)
		}
	}
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	return s.Get(ctx, machinery.ID)
}

// Update changes a machinery's own fields and, when req.CategoryIDs is not
// nil, its category set. The seller never changes.
func (s *MachineryService) Update(ctx context.Context, id uint, req dto.UpdateMachineryRequest) (*models.Machinery, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	machinery, err := s.machineries.Include("Categories").GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	machinery.Name = strings.TrimSpace(req.Name)
	machinery.AddressLine = strings.TrimSpace(req.AddressLine)
	machinery.Price = strings.TrimSpace(req.Price)

	if req.CategoryIDs != nil {
		if _, err := s.categories.Reconcile(ctx, machinery, machinery.Categories, req.CategoryIDs); err != nil {
			return nil, abort(s.uow, err)
		}
	}
	s.machineries.Update(machinery)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes a machinery and its images. Categories and orders keep
// existing without it.
func (s *MachineryService) Delete(ctx context.Context, id uint) error {
	machinery, err := s.machineries.Include("Images").GetByID(ctx, id)
	if err != nil {
		return err
	}

	urls := imageURLs([]models.Machinery{*machinery})
	s.machineries.Remove(machinery)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return err
	}

	deleteStoredImages(ctx, urls)
	return nil
}

// DeleteRange removes every listed machinery that exists and returns how
// many were removed
func (s *MachineryService) DeleteRange(ctx context.Context, req dto.DeleteRangeRequest) (int, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	machineries, err := s.machineries.Include("Images").Where(repository.KeyIn(req.IDs)).Find(ctx)
	if err != nil {
		return 0, err
	}

	urls := imageURLs(machineries)
	s.machineries.RemoveRange(machineries)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return 0, err
	}

	deleteStoredImages(ctx, urls)
	return len(machineries), nil
}
