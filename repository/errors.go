package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is matched by every NotFoundError
	ErrNotFound = errors.New("record not found")

	// ErrConflict is matched by every ConflictError
	ErrConflict = errors.New("conflicting record")
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// NotFoundError reports a lookup by key that matched nothing
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

// Is makes errors.Is(err, ErrNotFound) work
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports a unique-field collision, either found by the
// uniqueness validator or raised by a storage constraint.
type ConflictError struct {
	Entity string
	Field  string // empty when the store did not say which column
	Value  interface{}
	Err    error
}

func (e *ConflictError) Error() string {
	switch {
	case e.Field != "" && e.Value != nil:
		return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, fmt.Sprint(e.Value))
	case e.Field != "":
		return fmt.Sprintf("%s conflicts on %s", e.Entity, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("conflict: %v", e.Err)
	default:
		return "conflict"
	}
}

// Is makes errors.Is(err, ErrConflict) work
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps any storage failure that is not a known conflict.
// The unit of work it came from has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is or wraps a NotFoundError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is or wraps a ConflictError
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

var sqliteConstraintColumn = regexp.MustCompile(`constraint failed: ([\w.]+)`)

// translateError classifies a storage error as conflict or persistence failure
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}

	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgUniqueViolation || pgErr.Code == pgForeignKeyViolation) {
		return &ConflictError{
			Entity: pgErr.TableName,
			Field:  strings.TrimPrefix(pgErr.ConstraintName, "idx_"+pgErr.TableName+"_"),
			Err:    err,
		}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintForeignKey:
			entity, field := sqliteConflictTarget(sqliteErr.Error())
			return &ConflictError{Entity: entity, Field: field, Err: err}
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		entity, field := sqliteConflictTarget(err.Error())
		return &ConflictError{Entity: entity, Field: field, Err: err}
	}

	// Works with both PostgreSQL and SQLite messages when no typed error survived
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique constraint") {
		entity, field := sqliteConflictTarget(err.Error())
		return &ConflictError{Entity: entity, Field: field, Err: err}
	}

	return &PersistenceError{Op: op, Err: err}
}

// sqliteConflictTarget extracts table and column from messages such as
// "UNIQUE constraint failed: buyers.normalized_email".
func sqliteConflictTarget(msg string) (string, string) {
	match := sqliteConstraintColumn.FindStringSubmatch(msg)
	if match == nil {
		return "", ""
	}
	table, column, found := strings.Cut(match[1], ".")
	if !found {
		return "", ""
	}
	return table, column
}
