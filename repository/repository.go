package repository

import (
	"context"
	"reflect"
)

// Keyed is implemented by every model: it exposes the primary key so generic
// code can compare entities by identity.
type Keyed[K comparable] interface {
	Key() K
}

// Repository is the uniform data-access surface for one aggregate type.
// Reads hit the store immediately; Add, Update, Remove and RemoveRange only
// stage work on the unit of work until SaveChanges.
type Repository[T Keyed[K], K comparable] interface {
	GetByID(ctx context.Context, id K) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	FindBy(ctx context.Context, predicate Predicate) ([]T, error)
	Exists(ctx context.Context, predicate Predicate) (bool, error)
	Include(relations ...string) Query[T, K]

	Add(entity *T)
	Update(entity *T)
	Remove(entity *T)
	RemoveRange(entities []T)

	SaveChanges(ctx context.Context) error
	UnitOfWork() *UnitOfWork
}

// GormRepository implements Repository on top of a UnitOfWork
type GormRepository[T Keyed[K], K comparable] struct {
	uow *UnitOfWork
}

// New returns the repository for T bound to uow
func New[T Keyed[K], K comparable](uow *UnitOfWork) *GormRepository[T, K] {
	return &GormRepository[T, K]{uow: uow}
}

func (r *GormRepository[T, K]) query() Query[T, K] {
	return Query[T, K]{uow: r.uow}
}

// GetByID returns the entity with the given key or a *NotFoundError
func (r *GormRepository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	return r.query().GetByID(ctx, id)
}

// GetAll materializes every row. There is no pagination.
func (r *GormRepository[T, K]) GetAll(ctx context.Context) ([]T, error) {
	return r.query().Find(ctx)
}

// FindBy returns every row matching predicate
func (r *GormRepository[T, K]) FindBy(ctx context.Context, predicate Predicate) ([]T, error) {
	return r.query().Where(predicate).Find(ctx)
}

// Exists reports whether any row matches predicate
func (r *GormRepository[T, K]) Exists(ctx context.Context, predicate Predicate) (bool, error) {
	return r.query().Where(predicate).Exists(ctx)
}

// Include starts a query that eagerly loads the given relation paths,
// e.g. "Machineries" or "Machineries.Images".
func (r *GormRepository[T, K]) Include(relations ...string) Query[T, K] {
	return r.query().Include(relations...)
}

// Add stages an insert
func (r *GormRepository[T, K]) Add(entity *T) {
	r.uow.StageInsert(entity)
}

// Update stages a write of the entity's own columns
func (r *GormRepository[T, K]) Update(entity *T) {
	r.uow.StageUpdate(entity)
}

// Remove stages a delete
func (r *GormRepository[T, K]) Remove(entity *T) {
	r.uow.StageDelete(entity)
}

// RemoveRange stages a delete of every entity; an empty slice stages nothing
func (r *GormRepository[T, K]) RemoveRange(entities []T) {
	if len(entities) == 0 {
		return
	}
	r.uow.StageDelete(&entities)
}

// SaveChanges commits the whole unit of work, not only this repository's
// mutations.
func (r *GormRepository[T, K]) SaveChanges(ctx context.Context) error {
	return r.uow.SaveChanges(ctx)
}

// UnitOfWork returns the unit of work the repository stages on
func (r *GormRepository[T, K]) UnitOfWork() *UnitOfWork {
	return r.uow
}

// EntityName returns the Go type name of T, used in error messages
func EntityName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().Name()
}

// Keys extracts the primary keys of entities, preserving order
func Keys[T Keyed[K], K comparable](entities []T) []K {
	keys := make([]K, len(entities))
	for i, e := range entities {
		keys[i] = e.Key()
	}
	return keys
}
