package benchplot

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Source is one input table of a merge together with the key recorded
// in the provenance column of its rows.
type Source struct {
	Key   string
	Table *Table
}

// SourcesFromMap orders the tables of m by key: numerically if all keys
// are integers, lexically otherwise.
func SourcesFromMap(m map[string]*Table) []Source {
	sources := make([]Source, 0, len(m))
	for k, t := range m {
		sources = append(sources, Source{Key: k, Table: t})
	}
	numeric := intKeys(sources)
	sort.Slice(sources, func(i, j int) bool {
		if numeric {
			a, _ := strconv.Atoi(sources[i].Key)
			b, _ := strconv.Atoi(sources[j].Key)
			return a < b
		}
		return sources[i].Key < sources[j].Key
	})
	return sources
}

func intKeys(sources []Source) bool {
	for _, s := range sources {
		if _, err := strconv.Atoi(s.Key); err != nil {
			return false
		}
	}
	return true
}

// Merge concatenates the rows of all sources in order and adds the
// column provenance holding the key of the source each row came from.
// The provenance column is Int if all keys are integers, String
// otherwise.
//
// Schemas are not validated: the result has the union of all source
// columns and cells a source does not provide are missing. A column
// which is String in one source and numeric in another becomes String,
// its numbers stored as text. A nil Table in a source contributes no
// rows. The only error is a source which already has a provenance
// column.
func Merge(sources []Source, provenance string) (*Table, error) {
	pool := NewStringPool()
	merged := NewTable("merged", pool)

	// Column union in order of first appearance. The first source
	// decides the type of a column, later Int columns widen to Float and
	// strings win over numbers.
	// Sources without rows have no evidence for their column types and
	// never conflict.
	weak := NewStringSet()
	for _, s := range sources {
		if s.Table == nil {
			continue
		}
		if s.Table.Has(provenance) {
			return nil, fmt.Errorf("merge source %q: %w: %q", s.Key, ErrColumnExists, provenance)
		}
		for _, col := range s.Table.Order {
			f := s.Table.Columns[col]
			g, ok := merged.Columns[col]
			if !ok {
				merged.Add(col, NewField(0, f.Type, pool))
				if s.Table.N == 0 {
					weak.Add(col)
				}
				continue
			}
			if s.Table.N == 0 {
				continue
			}
			if weak.Contains(col) {
				g.Type = f.Type
				weak.Del(col)
				continue
			}
			switch {
			case g.Type == f.Type:
			case g.Type == Int && f.Type == Float:
				g.Type = Float
			case g.Type == Float && f.Type == Int:
			default:
				warnf(logrus.Fields{"source": s.Key, "column": col},
					"merge: %s column mixed with %s, numbers kept as text", f.Type, g.Type)
				g.Type = String
			}
		}
	}

	provType := String
	if intKeys(sources) {
		provType = Int
	}
	prov := NewField(0, provType, pool)

	for _, s := range sources {
		if s.Table == nil {
			continue
		}
		t := s.Table
		if missing := missingColumns(merged, t); len(missing) > 0 {
			warnf(logrus.Fields{"source": s.Key, "columns": missing},
				"merge: source lacks columns, cells left missing")
		}
		for _, col := range merged.Order {
			appendField(merged.Columns[col], merged.N, t.Columns[col], t.N)
		}

		var key float64
		if provType == Int {
			k, _ := strconv.Atoi(s.Key)
			key = float64(k)
		} else {
			key = float64(pool.Add(s.Key))
		}
		for i := 0; i < t.N; i++ {
			prov.Data = append(prov.Data, key)
		}
		merged.N += t.N
	}
	merged.Add(provenance, prov)

	debugf(logrus.Fields{"sources": len(sources), "rows": merged.N}, "merged tables")
	return merged, nil
}

// missingColumns lists the columns of merged which t does not have.
func missingColumns(merged, t *Table) []string {
	have := NewStringSetFrom(t.Order)
	want := NewStringSetFrom(merged.Order)
	want.Remove(have)
	return want.Elements()
}
