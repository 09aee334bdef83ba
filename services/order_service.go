package services

import (
	"context"
	"strings"

	"github.com/heavydutyrent/machinery-api/association"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
)

// OrderService implements the order use cases on one unit of work
type OrderService struct {
	uow         *repository.UnitOfWork
	orders      *repository.GormRepository[models.Order, uint]
	buyers      *repository.GormRepository[models.Buyer, uint]
	machineries *association.Reconciler[models.Machinery, uint]
}

// NewOrderService creates an order service bound to uow
func NewOrderService(uow *repository.UnitOfWork) *OrderService {
	return &OrderService{
		uow:    uow,
		orders: repository.New[models.Order, uint](uow),
		buyers: repository.New[models.Buyer, uint](uow),
		machineries: association.NewReconciler[models.Machinery, uint](
			repository.New[models.Machinery, uint](uow), "Machineries"),
	}
}

// List returns every order with its machineries
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.Include("Machineries", "Machineries.Images").Find(ctx)
}

// ListByBuyer returns the orders of one buyer
func (s *OrderService) ListByBuyer(ctx context.Context, buyerID uint) ([]models.Order, error) {
	if _, err := s.buyers.GetByID(ctx, buyerID); err != nil {
		return nil, err
	}
	return s.orders.Include("Machineries", "Machineries.Images").
		Where(repository.Eq("buyer_id", buyerID)).
		Find(ctx)
}

// Get returns one order with its machineries
func (s *OrderService) Get(ctx context.Context, id uint) (*models.Order, error) {
	return s.orders.Include("Machineries", "Machineries.Images").GetByID(ctx, id)
}

// Create places an order for an existing buyer. Unknown machinery ids are
// skipped.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*models.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.buyers.GetByID(ctx, req.BuyerID); err != nil {
		if repository.IsNotFound(err) {
			return nil, missingReference("buyer_id", "buyer", req.BuyerID)
		}
		return nil, err
	}

	order := &models.Order{
		Status:  strings.TrimSpace(req.Status),
		BuyerID: req.BuyerID,
	}
	s.orders.Add(order)

	if _, err := s.machineries.Reconcile(ctx, order, nil, req.MachineryIDs); err != nil {
		return nil, abort(s.uow, err)
	}
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	return s.Get(ctx, order.ID)
}

// Update sets an order's status and makes its machinery set equal to
// req.MachineryIDs. CreatedAt and the buyer never change.
func (s *OrderService) Update(ctx context.Context, id uint, req dto.UpdateOrderRequest) (*models.Order, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	order, err := s.orders.Include("Machineries").GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.Status = strings.TrimSpace(req.Status)
	if _, err := s.machineries.Reconcile(ctx, order, order.Machineries, req.MachineryIDs); err != nil {
		return nil, abort(s.uow, err)
	}
	s.orders.Update(order)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes an order; its machineries are only unlinked
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.orders.Remove(order)
	return s.uow.SaveChanges(ctx)
}
