package benchplot

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MissingPolicy decides what happens to a row whose lookup key or
// grouped value is missing.
type MissingPolicy int

const (
	// ExcludeMissing leaves the derived cell missing and drops the row
	// from every statistic that needs it.
	ExcludeMissing MissingPolicy = iota

	// RejectMissing treats a missing key or value as a data error.
	RejectMissing
)

func (p MissingPolicy) String() string {
	switch p {
	case ExcludeMissing:
		return "exclude"
	case RejectMissing:
		return "reject"
	}
	return fmt.Sprintf("MissingPolicy(%d)", int(p))
}

// ParseMissingPolicy parses "exclude" or "reject".
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "exclude", "":
		return ExcludeMissing, nil
	case "reject":
		return RejectMissing, nil
	}
	return 0, fmt.Errorf("unknown missing value policy %q", s)
}

// Mapping is a finite lookup table from a discrete key to a derived
// value.
type Mapping map[float64]float64

// Lookup returns the value for key. The boolean is false if key is not
// in m; the value is meaningless then.
func (m Mapping) Lookup(key float64) (float64, bool) {
	v, ok := m[key]
	return v, ok
}

// CostMapping maps the number of last queries sent along with a prompt
// to the cost of one run in cents.
var CostMapping = Mapping{0: 4, 1: 5, 2: 5, 5: 6, 10: 7, 20: 10}

// Annotate adds the Float column to to t holding m applied to column
// from. Keys absent from m either give a missing cell (ExcludeMissing)
// or fail with a *MissingKeyError (RejectMissing) in which case t is not
// modified. Missing cells in from always give missing cells.
func Annotate(t *Table, from, to string, m Mapping, policy MissingPolicy) error {
	src, ok := t.Columns[from]
	if !ok {
		return noSuchColumn(t, from)
	}
	if t.Has(to) {
		return fmt.Errorf("annotate %q: %w: %q", t.Name, ErrColumnExists, to)
	}
	if src.Type == String {
		return fmt.Errorf("annotate %q: %w: key column %q is a string column",
			t.Name, ErrTypeMismatch, from)
	}

	derived := NewField(t.N, Float, t.Pool)
	var absent []float64
	for i := 0; i < t.N; i++ {
		if src.IsNA(i) {
			derived.SetNA(i)
			continue
		}
		key := src.Data[i]
		v, ok := m.Lookup(key)
		if !ok {
			if policy == RejectMissing {
				return &MissingKeyError{Column: from, Row: i, Key: key}
			}
			derived.SetNA(i)
			absent = append(absent, key)
			continue
		}
		derived.Data[i] = v
	}
	if len(absent) > 0 {
		warnf(logrus.Fields{"table": t.Name, "column": from, "keys": absent},
			"lookup: %d keys not in mapping, %q left missing", len(absent), to)
	}

	t.Add(to, derived)
	return nil
}
