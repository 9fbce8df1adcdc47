// Package errs holds the error taxonomy shared by the store, the migration
// runner and the booking service.
//
// Every typed error reports errors.Is(err, ErrSystem) so callers at the outer
// boundary can separate domain failures from anything else.
package errs

import (
	"errors"
	"fmt"
)

var ErrSystem = errors.New("booking system error")

// StorageError wraps connectivity, constraint and transaction failures
// reported by the database driver.
type StorageError struct {
	Op  string
	Err error
}

func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrSystem }

// MigrationFileError reports a migration script that is missing, unreadable
// or does not split into exactly one up and one down block.
type MigrationFileError struct {
	Path string
	Err  error
}

func (e *MigrationFileError) Error() string {
	return fmt.Sprintf("migration file %s: %v", e.Path, e.Err)
}

func (e *MigrationFileError) Unwrap() error { return e.Err }

func (e *MigrationFileError) Is(target error) bool { return target == ErrSystem }

type ValidationError struct {
	Field  string
	Reason string
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrSystem }
