package services

import (
	"context"
	"strings"

	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/uniqueness"
)

// BuyerService implements the buyer use cases on one unit of work
type BuyerService struct {
	uow    *repository.UnitOfWork
	buyers *repository.GormRepository[models.Buyer, uint]
	orders *repository.GormRepository[models.Order, uint]
	unique *uniqueness.Validator[models.Buyer, uint]
}

// NewBuyerService creates a buyer service bound to uow
func NewBuyerService(uow *repository.UnitOfWork) *BuyerService {
	buyers := repository.New[models.Buyer, uint](uow)
	return &BuyerService{
		uow:    uow,
		buyers: buyers,
		orders: repository.New[models.Order, uint](uow),
		unique: uniqueness.New[models.Buyer, uint](buyers,
			accountFields(func(b *models.Buyer) *models.Account { return &b.Account })...),
	}
}

// List returns every buyer with its orders
func (s *BuyerService) List(ctx context.Context) ([]models.Buyer, error) {
	return s.buyers.Include("Orders").Find(ctx)
}

// Get returns one buyer with its orders
func (s *BuyerService) Get(ctx context.Context, id uint) (*models.Buyer, error) {
	return s.buyers.Include("Orders").GetByID(ctx, id)
}

// Create registers a new buyer. The password is required.
func (s *BuyerService) Create(ctx context.Context, req dto.BuyerRequest) (*models.Buyer, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	buyer := &models.Buyer{}
	if err := s.apply(buyer, req, true); err != nil {
		return nil, err
	}
	if err := s.unique.Validate(ctx, buyer, nil); err != nil {
		return nil, err
	}

	s.buyers.Add(buyer)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, s.unique.Translate(err)
	}

	return s.Get(ctx, buyer.ID)
}

// Update replaces a buyer's fields. An empty password keeps the current one.
func (s *BuyerService) Update(ctx context.Context, id uint, req dto.BuyerRequest) (*models.Buyer, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	buyer, err := s.buyers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(buyer, req, false); err != nil {
		return nil, err
	}
	if err := s.unique.Validate(ctx, buyer, &id); err != nil {
		return nil, err
	}

	s.buyers.Update(buyer)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, s.unique.Translate(err)
	}

	return s.Get(ctx, id)
}

// Delete removes a buyer together with its orders
func (s *BuyerService) Delete(ctx context.Context, id uint) error {
	buyer, err := s.buyers.Include("Orders").GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.orders.RemoveRange(buyer.Orders)
	s.buyers.Remove(buyer)
	return s.uow.SaveChanges(ctx)
}

// DeleteRange removes every listed buyer that exists and returns how many
// were removed. Unknown ids are ignored.
func (s *BuyerService) DeleteRange(ctx context.Context, req dto.DeleteRangeRequest) (int, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	buyers, err := s.buyers.Include("Orders").Where(repository.KeyIn(req.IDs)).Find(ctx)
	if err != nil {
		return 0, err
	}

	var orders []models.Order
	for _, buyer := range buyers {
		orders = append(orders, buyer.Orders...)
	}
	s.orders.RemoveRange(orders)
	s.buyers.RemoveRange(buyers)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return 0, err
	}

	return len(buyers), nil
}

func (s *BuyerService) apply(buyer *models.Buyer, req dto.BuyerRequest, requirePassword bool) error {
	if err := applyAccount(&buyer.Account, req.AccountRequest, requirePassword); err != nil {
		return err
	}
	buyer.Name = strings.TrimSpace(req.Name)
	buyer.Surname = strings.TrimSpace(req.Surname)
	buyer.AddressLine = strings.TrimSpace(req.AddressLine)
	return nil
}
