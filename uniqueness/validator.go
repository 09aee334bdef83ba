package uniqueness

import (
	"context"
	"errors"
	"fmt"

	"github.com/heavydutyrent/machinery-api/repository"
)

// Field declares one unique attribute of T
type Field[T any] struct {
	// Name is reported back in ConflictError.Field (e.g. "email")
	Name string
	// Column is the storage column compared against
	Column string
	// Value reads the raw candidate value from an entity
	Value func(*T) string
	// Normalize, when set, maps the raw value to the stored column form
	Normalize func(string) string
}

func (f Field[T]) normalized(value string) string {
	if f.Normalize == nil {
		return value
	}
	return f.Normalize(value)
}

// Validator checks candidate entities against the stored rows of the same
// type. Fields are checked in declaration order and the first collision is
// reported.
type Validator[T repository.Keyed[K], K comparable] struct {
	repo   repository.Repository[T, K]
	fields []Field[T]
}

// New returns a validator over repo for the given fields
func New[T repository.Keyed[K], K comparable](repo repository.Repository[T, K], fields ...Field[T]) *Validator[T, K] {
	return &Validator[T, K]{repo: repo, fields: fields}
}

// Check reports a *repository.ConflictError when another row already holds
// candidate in field. exclude is nil on create and the entity's own key on
// update, so an entity never collides with itself.
func (v *Validator[T, K]) Check(ctx context.Context, field Field[T], candidate string, exclude *K) error {
	predicate := repository.Eq(field.Column, field.normalized(candidate))
	if exclude != nil {
		predicate = repository.And(predicate, repository.KeyNeq(*exclude))
	}

	taken, err := v.repo.Exists(ctx, predicate)
	if err != nil {
		return fmt.Errorf("checking %s uniqueness: %w", field.Name, err)
	}
	if taken {
		return &repository.ConflictError{
			Entity: repository.EntityName[T](),
			Field:  field.Name,
			Value:  candidate,
		}
	}

	return nil
}

// Validate runs Check for every declared field of candidate
func (v *Validator[T, K]) Validate(ctx context.Context, candidate *T, exclude *K) error {
	for _, field := range v.fields {
		if err := v.Check(ctx, field, field.Value(candidate), exclude); err != nil {
			return err
		}
	}
	return nil
}

// Translate renames the storage column in a ConflictError raised by the
// store (a race the checks above lost) to the declared field name, so the
// conflict reads the same whichever path caught it. Other errors pass
// through unchanged.
func (v *Validator[T, K]) Translate(err error) error {
	var conflict *repository.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}

	for _, field := range v.fields {
		if conflict.Field == field.Column {
			return &repository.ConflictError{
				Entity: repository.EntityName[T](),
				Field:  field.Name,
				Err:    conflict.Err,
			}
		}
	}
	return err
}
