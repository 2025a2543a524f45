package benchplot

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSuchColumn is returned when an operation names a column the
	// table does not have.
	ErrNoSuchColumn = errors.New("no such column")

	// ErrColumnExists is returned when a new column would shadow an
	// existing one.
	ErrColumnExists = errors.New("column already exists")

	// ErrRaggedRow is returned for literal rows whose length differs
	// from the number of columns.
	ErrRaggedRow = errors.New("row length does not match columns")

	// ErrTypeMismatch is returned when a column mixes strings and numbers
	// or when a value cannot be stored in a column.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrLogNonPositive is returned when a logarithmic axis would have
	// to show zero or negative values.
	ErrLogNonPositive = errors.New("log scale needs positive values")
)

// MissingKeyError reports a lookup key absent from a Mapping while the
// RejectMissing policy is in effect.
type MissingKeyError struct {
	Column string
	Row    int
	Key    float64
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("row %d: key %g of column %q not in mapping", e.Row, e.Key, e.Column)
}

// MissingValueError reports a missing cell found during grouping while
// the RejectMissing policy is in effect.
type MissingValueError struct {
	Column string
	Row    int
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("row %d: missing value in column %q", e.Row, e.Column)
}

func noSuchColumn(t *Table, name string) error {
	return fmt.Errorf("%w %q in table %q", ErrNoSuchColumn, name, t.Name)
}
