package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound reports that a requested row does not exist. Identifiers
	// the database cannot coerce to the column's type read the same way.
	ErrNotFound = errors.New("record not found")
)

// PostgreSQL data-exception codes raised when a supplied value cannot be
// coerced to the column's storage type.
const (
	codeInvalidTextRepresentation = "22P02"
	codeNumericValueOutOfRange    = "22003"
)

// isTypeMismatch reports whether err is a driver rejection of a value that
// does not fit the column's type, as opposed to a connectivity or constraint
// failure.
func isTypeMismatch(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeInvalidTextRepresentation || pgErr.Code == codeNumericValueOutOfRange
}

// classify maps a statement failure onto the repository error contract: a
// malformed identifier is indistinguishable from a missing row, while every
// other cause propagates wrapped for the outermost boundary to handle.
func classify(op string, err error) error {
	if isTypeMismatch(err) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
