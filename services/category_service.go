package services

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/heavydutyrent/machinery-api/association"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/uniqueness"
)

// CategoryService implements the category use cases on one unit of work
type CategoryService struct {
	uow         *repository.UnitOfWork
	categories  *repository.GormRepository[models.Category, uint]
	unique      *uniqueness.Validator[models.Category, uint]
	machineries *association.Reconciler[models.Machinery, uint]
}

// NewCategoryService creates a category service bound to uow
func NewCategoryService(uow *repository.UnitOfWork) *CategoryService {
	categories := repository.New[models.Category, uint](uow)
	return &CategoryService{
		uow:        uow,
		categories: categories,
		unique: uniqueness.New[models.Category, uint](categories,
			uniqueness.Field[models.Category]{
				Name:   "name",
				Column: "name",
				Value:  func(c *models.Category) string { return c.Name },
			},
		),
		machineries: association.NewReconciler[models.Machinery, uint](
			repository.New[models.Machinery, uint](uow), "Machineries"),
	}
}

// List returns every category with its machineries and their images
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.Include("Machineries", "Machineries.Images").Find(ctx)
}

// Get returns one category with its machineries and their images
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.categories.Include("Machineries", "Machineries.Images").GetByID(ctx, id)
}

// Create adds a category linked to the listed machineries. Unknown
// machinery ids are skipped.
func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest) (*models.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category := &models.Category{}
	s.apply(category, req)
	if err := s.unique.Validate(ctx, category, nil); err != nil {
		return nil, err
	}

	s.categories.Add(category)
	if _, err := s.machineries.Reconcile(ctx, category, nil, req.MachineryIDs); err != nil {
		return nil, abort(s.uow, err)
	}
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, s.unique.Translate(err)
	}

	return s.Get(ctx, category.ID)
}

// Update renames a category and makes its machinery set equal to
// req.MachineryIDs
func (s *CategoryService) Update(ctx context.Context, id uint, req dto.CategoryRequest) (*models.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	category, err := s.categories.Include("Machineries").GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.apply(category, req)
	if err := s.unique.Validate(ctx, category, &id); err != nil {
		return nil, err
	}

	if _, err := s.machineries.Reconcile(ctx, category, category.Machineries, req.MachineryIDs); err != nil {
		return nil, abort(s.uow, err)
	}
	s.categories.Update(category)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return nil, s.unique.Translate(err)
	}

	return s.Get(ctx, id)
}

// Delete removes a category; its machineries are only unlinked
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.categories.Remove(category)
	return s.uow.SaveChanges(ctx)
}

// DeleteRange removes every listed category that exists and returns how
// many were removed
func (s *CategoryService) DeleteRange(ctx context.Context, req dto.DeleteRangeRequest) (int, error) {
	if err := validateRequest(req); err != nil {
		return 0, err
	}

	categories, err := s.categories.FindBy(ctx, repository.KeyIn(req.IDs))
	if err != nil {
		return 0, err
	}

	s.categories.RemoveRange(categories)
	if err := s.uow.SaveChanges(ctx); err != nil {
		return 0, err
	}

	return len(categories), nil
}

func (s *CategoryService) apply(category *models.Category, req dto.CategoryRequest) {
	category.Name = strings.TrimSpace(req.Name)
	category.Slug = slug.Make(category.Name)
}
