package benchplot

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vdobler/benchplot/stat"
)

// Point is one plot point of a Series. Err is the half height of the
// error bar drawn around Y and zero if there is none.
type Point struct {
	X, Y, Err float64
}

// Series is the aggregated data of one category, ordered by ascending X.
type Series struct {
	Label  string
	Points []Point
}

// GroupSpec describes a grouping: one Series per distinct value of
// Category, one Point per distinct value of X within it, Y aggregated
// with Agg and the optional Err column averaged.
type GroupSpec struct {
	Category string // empty: a single series labelled Y
	X        string
	Y        string
	Err      string // optional

	Agg    stat.Func // nil: stat.Mean
	Policy MissingPolicy
}

// Group aggregates t according to spec. X, Y and Err must be numeric
// columns, Category may be of any type. Series are ordered by category
// (strings lexically, numbers ascending), points by ascending X. A group
// exists only if at least one row has its key, so there are no empty
// groups and no duplicate X values within a series.
//
// Rows with a missing X, Y or Err are excluded under ExcludeMissing and
// reported as *MissingValueError under RejectMissing. A group left
// without any row is dropped. An empty table yields no series.
func Group(t *Table, spec GroupSpec) ([]Series, error) {
	cols := []string{spec.X, spec.Y}
	if spec.Category != "" {
		cols = append(cols, spec.Category)
	}
	if spec.Err != "" {
		cols = append(cols, spec.Err)
	}
	for _, c := range cols {
		if !t.Has(c) {
			return nil, noSuchColumn(t, c)
		}
	}
	for _, c := range []string{spec.X, spec.Y, spec.Err} {
		if c != "" && t.Columns[c].Type == String {
			return nil, fmt.Errorf("group %q: %w: column %q is a string column",
				t.Name, ErrTypeMismatch, c)
		}
	}
	if t.N == 0 {
		return nil, nil
	}

	agg := spec.Agg
	if agg == nil {
		agg = stat.Mean
	}

	var (
		labels []string
		parts  []*Table
	)
	if spec.Category == "" {
		labels, parts = []string{spec.Y}, []*Table{t}
	} else {
		cat := t.Columns[spec.Category]
		for i := 0; i < t.N; i++ {
			if cat.IsNA(i) {
				if spec.Policy == RejectMissing {
					return nil, &MissingValueError{Column: spec.Category, Row: i}
				}
				warnf(logrus.Fields{"table": t.Name, "row": i},
					"group: missing category %q, row excluded", spec.Category)
			}
		}
		levels := cat.SortedLevels()
		parts = Partition(t, spec.Category, levels)
		for _, level := range levels {
			labels = append(labels, cat.String(level))
		}
	}

	series := make([]Series, 0, len(parts))
	for i, part := range parts {
		points, err := groupPoints(part, spec, agg)
		if err != nil {
			return nil, err
		}
		if len(points) == 0 {
			warnf(logrus.Fields{"table": t.Name, "series": labels[i]},
				"group: no usable rows, series dropped")
			continue
		}
		series = append(series, Series{Label: labels[i], Points: points})
	}
	return series, nil
}

// groupPoints groups the rows of part by X and aggregates Y and Err.
func groupPoints(part *Table, spec GroupSpec, agg stat.Func) ([]Point, error) {
	xf, yf := part.Columns[spec.X], part.Columns[spec.Y]
	var ef *Field
	if spec.Err != "" {
		ef = part.Columns[spec.Err]
	}

	ys := make(map[float64][]float64)
	es := make(map[float64][]float64)
	for i := 0; i < part.N; i++ {
		if col := missingIn(i, spec, xf, yf, ef); col != "" {
			if spec.Policy == RejectMissing {
				return nil, &MissingValueError{Column: col, Row: i}
			}
			continue
		}
		x := xf.Data[i]
		ys[x] = append(ys[x], yf.Data[i])
		if ef != nil {
			es[x] = append(es[x], ef.Data[i])
		}
	}

	xs := NewFloatSet()
	for x := range ys {
		xs.Add(x)
	}
	points := make([]Point, 0, len(ys))
	for _, x := range xs.Elements() {
		y, err := agg(ys[x])
		if err != nil {
			return nil, fmt.Errorf("group %q at %s=%s: %w", part.Name, spec.X, xf.String(x), err)
		}
		p := Point{X: x, Y: y}
		if ef != nil {
			p.Err, err = stat.Mean(es[x])
			if err != nil {
				return nil, fmt.Errorf("group %q at %s=%s: %w", part.Name, spec.X, xf.String(x), err)
			}
		}
		points = append(points, p)
	}
	return points, nil
}

// missingIn returns the name of the first column missing in row i, or
// the empty string.
func missingIn(i int, spec GroupSpec, xf, yf, ef *Field) string {
	switch {
	case xf.IsNA(i):
		return spec.X
	case yf.IsNA(i):
		return spec.Y
	case ef != nil && ef.IsNA(i):
		return spec.Err
	}
	return ""
}
