package repository

import (
	"context"
	"fmt"
	"log"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// phase orders staged mutations inside one commit: removals run before
// inserts, which run before field updates.
type phase int

const (
	phaseRemove phase = iota
	phaseAdd
	phaseUpdate
)

type operation struct {
	phase       phase
	description string
	apply       func(tx *gorm.DB) error
}

// UnitOfWork collects staged mutations for one request and commits them in a
// single transaction. It is not safe for concurrent use; each request gets
// its own.
type UnitOfWork struct {
	db         *gorm.DB
	operations []operation
}

// NewUnitOfWork creates an empty unit of work over a connection pool
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Session returns a GORM session bound to ctx for reads
func (u *UnitOfWork) Session(ctx context.Context) *gorm.DB {
	return u.db.WithContext(ctx)
}

// Pending returns the number of staged mutations
func (u *UnitOfWork) Pending() int {
	return len(u.operations)
}

// Discard drops every staged mutation without touching the store
func (u *UnitOfWork) Discard() {
	u.operations = nil
}

func (u *UnitOfWork) stage(p phase, description string, apply func(tx *gorm.DB) error) {
	u.operations = append(u.operations, operation{phase: p, description: description, apply: apply})
}

// StageInsert stages an INSERT of entity. Associations are written through
// Link, never implicitly.
func (u *UnitOfWork) StageInsert(entity interface{}) {
	u.stage(phaseAdd, fmt.Sprintf("insert %T", entity), func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(entity).Error
	})
}

// StageUpdate stages a full-row UPDATE of entity's own columns
func (u *UnitOfWork) StageUpdate(entity interface{}) {
	u.stage(phaseUpdate, fmt.Sprintf("update %T", entity), func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(entity).Error
	})
}

// StageDelete stages a DELETE of entity (a pointer to a model or to a slice
// of models). Owned has-many children and many-to-many join rows go with it;
// the other side of a many-to-many is left alone.
func (u *UnitOfWork) StageDelete(entity interface{}) {
	u.stage(phaseRemove, fmt.Sprintf("delete %T", entity), func(tx *gorm.DB) error {
		return tx.Select(clause.Associations).Delete(entity).Error
	})
}

// Link stages insertion of join rows between owner and targets for the named
// many-to-many relation. targets is a slice of models that already exist.
func (u *UnitOfWork) Link(owner interface{}, relation string, targets interface{}) {
	u.stage(phaseAdd, fmt.Sprintf("link %T.%s", owner, relation), func(tx *gorm.DB) error {
		return tx.Model(owner).Association(relation).Append(targets)
	})
}

// Unlink stages removal of the join rows between owner and targets. Neither
// side is deleted.
func (u *UnitOfWork) Unlink(owner interface{}, relation string, targets interface{}) {
	u.stage(phaseRemove, fmt.Sprintf("unlink %T.%s", owner, relation), func(tx *gorm.DB) error {
		return tx.Model(owner).Association(relation).Delete(targets)
	})
}

// SaveChanges applies every staged mutation in one transaction. Either all
// of them are committed or none are. The staged list is cleared in both
// cases; after a failure the caller starts the unit of work over.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if len(u.operations) == 0 {
		return nil
	}

	operations := u.operations
	u.operations = nil
	sort.SliceStable(operations, func(i, j int) bool {
		return operations[i].phase < operations[j].phase
	})

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range operations {
			if err := op.apply(tx); err != nil {
				return fmt.Errorf("%s: %w", op.description, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Rolled back unit of work (%d operations): %v", len(operations), err)
		return translateError("save changes", err)
	}

	return nil
}
