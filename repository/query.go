package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query is an immutable read builder. Each method returns a copy, so a
// partially built query can be reused.
type Query[T Keyed[K], K comparable] struct {
	uow        *UnitOfWork
	includes   []string
	predicates []Predicate
}

// Include adds relation paths to eagerly load
func (q Query[T, K]) Include(relations ...string) Query[T, K] {
	q.includes = append(append([]string(nil), q.includes...), relations...)
	return q
}

// Where narrows the query; multiple calls are combined with AND
func (q Query[T, K]) Where(predicate Predicate) Query[T, K] {
	if predicate == nil {
		return q
	}
	q.predicates = append(append([]Predicate(nil), q.predicates...), predicate)
	return q
}

func (q Query[T, K]) build(ctx context.Context) *gorm.DB {
	var model T
	db := q.uow.Session(ctx).Model(&model)
	for _, relation := range q.includes {
		db = db.Preload(relation)
	}
	if len(q.predicates) > 0 {
		db = db.Clauses(clause.Where{Exprs: q.predicates})
	}
	return db
}

// Find returns every matching row
func (q Query[T, K]) Find(ctx context.Context) ([]T, error) {
	results := make([]T, 0)
	if err := q.build(ctx).Find(&results).Error; err != nil {
		return nil, &PersistenceError{Op: "find " + EntityName[T](), Err: err}
	}
	return results, nil
}

// Exists reports whether any row matches, reading at most one
func (q Query[T, K]) Exists(ctx context.Context) (bool, error) {
	var results []T
	if err := q.build(ctx).Limit(1).Find(&results).Error; err != nil {
		return false, &PersistenceError{Op: "find " + EntityName[T](), Err: err}
	}
	return len(results) > 0, nil
}

// First returns the first matching row by primary key order, or ErrNotFound
func (q Query[T, K]) First(ctx context.Context) (*T, error) {
	var result T
	err := q.build(ctx).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Entity: EntityName[T]()}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "find " + EntityName[T](), Err: err}
	}
	return &result, nil
}

// GetByID returns the row with the given key, or a *NotFoundError
func (q Query[T, K]) GetByID(ctx context.Context, id K) (*T, error) {
	result, err := q.Where(KeyEq(id)).First(ctx)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			notFound.ID = id
		}
		return nil, err
	}
	return result, nil
}
