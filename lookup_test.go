package benchplot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCostMapping(t *testing.T) {
	v, ok := CostMapping.Lookup(10)
	require.True(t, ok)
	require.Equal(t, 7.0, v)

	_, ok = CostMapping.Lookup(99)
	require.False(t, ok)
}

func TestAnnotate(t *testing.T) {
	tbl, err := NewTableFromRows("runs", []string{"last_queries"},
		[][]interface{}{{0}, {10}, {99}, {nil}, {20}})
	require.NoError(t, err)

	require.NoError(t, Annotate(tbl, "last_queries", "cost_cents", CostMapping, ExcludeMissing))
	cost := tbl.Columns["cost_cents"]
	require.Equal(t, Float, cost.Type)
	require.Equal(t, []string{"last_queries", "cost_cents"}, tbl.FieldNames())
	require.Equal(t, "4", tbl.Str(0, "cost_cents"))
	require.Equal(t, "7", tbl.Str(1, "cost_cents"))
	require.True(t, cost.IsNA(2), "unknown key must give a missing cell, not zero")
	require.True(t, cost.IsNA(3))
	require.Equal(t, "10", tbl.Str(4, "cost_cents"))
}

func TestAnnotateReject(t *testing.T) {
	tbl, err := NewTableFromRows("runs", []string{"last_queries"},
		[][]interface{}{{0}, {99}})
	require.NoError(t, err)

	err = Annotate(tbl, "last_queries", "cost_cents", CostMapping, RejectMissing)
	var mke *MissingKeyError
	require.True(t, errors.As(err, &mke), "got %v", err)
	require.Equal(t, 1, mke.Row)
	require.Equal(t, 99.0, mke.Key)
	require.False(t, tbl.Has("cost_cents"))
}

func TestAnnotateErrors(t *testing.T) {
	tbl, err := NewTableFromRows("runs", []string{"name", "n"},
		[][]interface{}{{"a", 1}})
	require.NoError(t, err)

	err = Annotate(tbl, "missing", "x", CostMapping, ExcludeMissing)
	require.True(t, errors.Is(err, ErrNoSuchColumn), "got %v", err)

	err = Annotate(tbl, "n", "name", CostMapping, ExcludeMissing)
	require.True(t, errors.Is(err, ErrColumnExists), "got %v", err)

	err = Annotate(tbl, "name", "x", CostMapping, ExcludeMissing)
	require.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
}

func TestParseMissingPolicy(t *testing.T) {
	for _, p := range []MissingPolicy{ExcludeMissing, RejectMissing} {
		got, err := ParseMissingPolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	_, err := ParseMissingPolicy("ignore")
	require.Error(t, err)
}
