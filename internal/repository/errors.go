package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes surfaced by lib/pq.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError reports a primary key collision.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is, or wraps, a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// translate maps a store error onto the repository taxonomy. Constraint
// violations are the final arbiter when a pre-check raced with another
// writer, so they surface exactly like the pre-check would have.
func translate(op string, err error, conflictMsg, missingMsg string) error {
	if err == nil {
		return nil
	}

	var nf *NotFoundError
	var c *ConflictError
	var pe *PersistenceError
	if errors.As(err, &nf) || errors.As(err, &c) || errors.As(err, &pe) {
		return err
	}

	var pqErr *pq.Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Message: conflictMsg}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &NotFoundError{Message: missingMsg}
	case errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation:
		return &ConflictError{Message: conflictMsg}
	case errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation:
		return &NotFoundError{Message: missingMsg}
	}

	return &PersistenceError{Op: op, Err: err}
}
