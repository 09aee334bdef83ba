package association

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/heavydutyrent/machinery-api/repository"
)

// Result describes what a reconciliation staged
type Result[K cmp.Ordered] struct {
	Added   []K
	Removed []K
	Dropped []K // requested keys that matched no target row
}

// Reconciler brings one many-to-many association of an owner in line with a
// desired key set. It stages join-row changes on the target repository's unit
// of work; it never creates or deletes targets.
type Reconciler[T repository.Keyed[K], K cmp.Ordered] struct {
	targets  repository.Repository[T, K]
	relation string
}

// NewReconciler returns a reconciler for the owner relation field named
// relation (e.g. "Machineries") whose targets live in targets.
func NewReconciler[T repository.Keyed[K], K cmp.Ordered](targets repository.Repository[T, K], relation string) *Reconciler[T, K] {
	return &Reconciler[T, K]{targets: targets, relation: relation}
}

// Reconcile stages the changes that turn current into desired. owner must be
// a pointer to a persisted model, or to one staged for insert in the same
// unit of work. current is the association as loaded with Include.
//
// Unknown keys in desired are dropped and logged. Nothing is written until
// SaveChanges.
func (r *Reconciler[T, K]) Reconcile(ctx context.Context, owner interface{}, current []T, desired []K) (Result[K], error) {
	plan := Diff(repository.Keys[T, K](current), desired)
	result := Result[K]{Added: []K{}, Removed: plan.ToRemove, Dropped: []K{}}

	if len(plan.ToRemove) > 0 {
		removed := make([]T, 0, len(plan.ToRemove))
		for _, target := range current {
			if _, found := slices.BinarySearch(plan.ToRemove, target.Key()); found {
				removed = append(removed, target)
			}
		}
		r.targets.UnitOfWork().Unlink(owner, r.relation, removed)
	}

	if len(plan.ToAdd) == 0 {
		return result, nil
	}

	found, err := r.targets.FindBy(ctx, repository.KeyIn(plan.ToAdd))
	if err != nil {
		return Result[K]{}, fmt.Errorf("loading %s targets: %w", r.relation, err)
	}

	result.Added = repository.Keys[T, K](found)
	slices.Sort(result.Added)
	for _, k := range plan.ToAdd {
		if _, ok := slices.BinarySearch(result.Added, k); !ok {
			result.Dropped = append(result.Dropped, k)
		}
	}
	if len(result.Dropped) > 0 {
		log.Printf("Ignoring unknown %s %s ids: %v", repository.EntityName[T](), r.relation, result.Dropped)
	}

	if len(found) > 0 {
		r.targets.UnitOfWork().Link(owner, r.relation, found)
	}

	return result, nil
}
