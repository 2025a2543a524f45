package benchplot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/vdobler/benchplot/stat"
)

func TestGroup(t *testing.T) {
	tbl, err := NewTableFromRows("similarity",
		[]string{"difficulty", "last_queries", "p50"},
		[][]interface{}{
			{"hard", 1, 0.3},
			{"easy", 1, 0.6},
			{"easy", 0, 0.8},
			{"hard", 0, 0.5},
		})
	require.NoError(t, err)

	series, err := Group(tbl, GroupSpec{Category: "difficulty", X: "last_queries", Y: "p50"})
	require.NoError(t, err)
	require.Equal(t, []Series{
		{Label: "easy", Points: []Point{{X: 0, Y: 0.8}, {X: 1, Y: 0.6}}},
		{Label: "hard", Points: []Point{{X: 0, Y: 0.5}, {X: 1, Y: 0.3}}},
	}, series)
}

func TestGroupSorted(t *testing.T) {
	tbl, err := NewTableFromRows("sorted", []string{"cat", "x", "y"},
		[][]interface{}{{"A", 2, 30}, {"A", 0, 10}, {"A", 1, 20}})
	require.NoError(t, err)

	series, err := Group(tbl, GroupSpec{Category: "cat", X: "x", Y: "y"})
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.Equal(t, "A", series[0].Label)
	require.Equal(t, []Point{{X: 0, Y: 10}, {X: 1, Y: 20}, {X: 2, Y: 30}}, series[0].Points)
}

func TestGroupAggregates(t *testing.T) {
	tbl, err := NewTableFromRows("agg", []string{"x", "y", "sd"},
		[][]interface{}{{1, 2.0, 0.5}, {1, 4.0, 1.5}, {3, 9.0, 1.0}})
	require.NoError(t, err)

	series, err := Group(tbl, GroupSpec{X: "x", Y: "y", Err: "sd"})
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.Equal(t, "y", series[0].Label)
	require.Equal(t, []Point{{X: 1, Y: 3, Err: 1}, {X: 3, Y: 9, Err: 1}}, series[0].Points)

	series, err = Group(tbl, GroupSpec{X: "x", Y: "y", Agg: stat.Percentile(100)})
	require.NoError(t, err)
	require.Equal(t, 4.0, series[0].Points[0].Y)
}

func TestGroupNumericCategory(t *testing.T) {
	tbl, err := NewTableFromRows("num", []string{"run", "x", "y"},
		[][]interface{}{{10, 0, 1}, {2, 0, 2}})
	require.NoError(t, err)

	series, err := Group(tbl, GroupSpec{Category: "run", X: "x", Y: "y"})
	require.NoError(t, err)
	require.Len(t, series, 2)
	require.Equal(t, "2", series[0].Label)
	require.Equal(t, "10", series[1].Label)
}

func TestGroupMissing(t *testing.T) {
	tbl, err := NewTableFromRows("missing", []string{"cat", "x", "y"},
		[][]interface{}{
			{"a", 0, 1.0},
			{"a", 0, nil},
			{"a", 1, 3.0},
			{"b", 0, nil},
			{nil, 0, 7.0},
		})
	require.NoError(t, err)

	series, err := Group(tbl, GroupSpec{Category: "cat", X: "x", Y: "y"})
	require.NoError(t, err)
	require.Len(t, series, 1, "group b has no usable row and is dropped")
	require.Equal(t, []Point{{X: 0, Y: 1}, {X: 1, Y: 3}}, series[0].Points)

	_, err = Group(tbl, GroupSpec{Category: "cat", X: "x", Y: "y", Policy: RejectMissing})
	var mve *MissingValueError
	require.True(t, errors.As(err, &mve), "got %v", err)
}

func TestGroupEmpty(t *testing.T) {
	tbl, err := NewTableFromRows("empty", []string{"cat", "x", "y"}, nil)
	require.NoError(t, err)

	series, err := Group(tbl, GroupSpec{Category: "cat", X: "x", Y: "y"})
	require.NoError(t, err)
	require.Empty(t, series)
}

func TestGroupErrors(t *testing.T) {
	tbl, err := NewTableFromRows("bad", []string{"cat", "x"},
		[][]interface{}{{"a", 1}})
	require.NoError(t, err)

	_, err = Group(tbl, GroupSpec{Category: "cat", X: "x", Y: "nope"})
	require.True(t, errors.Is(err, ErrNoSuchColumn), "got %v", err)

	_, err = Group(tbl, GroupSpec{X: "x", Y: "cat"})
	require.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
}

func TestGroupStringX(t *testing.T) {
	tbl, err := NewTableFromRows("names", []string{"cat", "name", "y"},
		[][]interface{}{{"a", "zeta", 1}, {"a", "alpha", 2}})
	require.NoError(t, err)

	_, err = Group(tbl, GroupSpec{Category: "cat", X: "name", Y: "y"})
	require.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)

	_, err = Group(tbl, GroupSpec{X: "y", Y: "y", Err: "name"})
	require.True(t, errors.Is(err, ErrTypeMismatch), "got %v", err)
}

// A group of a single row has that row's value as its mean, and points
// come out ordered by x without duplicates.
func TestGroupProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "rows")
		rows := make([][]interface{}, n)
		for i := range rows {
			rows[i] = []interface{}{
				rapid.SampledFrom([]string{"easy", "medium", "hard"}).Draw(t, "cat"),
				rapid.IntRange(0, 5).Draw(t, "x"),
				rapid.Float64Range(-100, 100).Draw(t, "y"),
			}
		}
		tbl, err := NewTableFromRows("prop", []string{"cat", "x", "y"}, rows)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}

		series, err := Group(tbl, GroupSpec{Category: "cat", X: "x", Y: "y"})
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		for _, s := range series {
			for j, p := range s.Points {
				if j > 0 && s.Points[j-1].X >= p.X {
					t.Fatalf("series %s not strictly ascending at %d", s.Label, j)
				}
				var ys []float64
				for _, r := range rows {
					if r[0] == s.Label && float64(r[1].(int)) == p.X {
						ys = append(ys, r[2].(float64))
					}
				}
				if len(ys) == 1 && ys[0] != p.Y {
					t.Fatalf("single row group %s/%v: got %v, want %v", s.Label, p.X, p.Y, ys[0])
				}
			}
		}
	})
}
