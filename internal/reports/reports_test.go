package reports

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vdobler/benchplot"
	"github.com/vdobler/benchplot/stat"
)

func precisionRun(t *testing.T, base float64) *benchplot.Table {
	t.Helper()
	tbl, err := benchplot.NewTableFromRows("run",
		[]string{"difficulty", "p50_overlap_similarity", "p90_overlap_similarity", "p99_overlap_similarity"},
		[][]interface{}{
			{"easy", base + 0.2, base + 0.3, base + 0.35},
			{"easy", base + 0.1, base + 0.2, base + 0.25},
			{"hard", base, base + 0.1, base + 0.15},
		})
	require.NoError(t, err)
	return tbl
}

func mergedRuns(t *testing.T, keys ...int) *benchplot.Table {
	t.Helper()
	runs := make(map[string]*benchplot.Table)
	for i, k := range keys {
		runs[strconv.Itoa(k)] = precisionRun(t, 0.1*float64(i))
	}
	merged, err := MergeRuns(runs)
	require.NoError(t, err)
	return merged
}

func requirePNG(t *testing.T, r *Report) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, "png"))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), r.Name)
}

func TestSimilarity(t *testing.T) {
	merged := mergedRuns(t, 0, 1, 2)
	require.Equal(t, 9, merged.N)
	require.Equal(t, benchplot.Int, merged.Columns[Provenance].Type)

	for _, q := range Quantiles {
		r, err := Similarity(merged, q, Options{})
		require.NoError(t, err)
		require.Equal(t, "similarity_"+q, r.Name)
		require.Equal(t, "Comparison of "+q+" vs last_queries", r.Plot.Title.Text)
		requirePNG(t, r)
	}

	_, err := Similarity(merged, "p75_overlap_similarity", Options{})
	require.True(t, errors.Is(err, benchplot.ErrNoSuchColumn))
}

func TestCost(t *testing.T) {
	merged := mergedRuns(t, 0, 10, 99)

	r, err := Cost(merged, Options{})
	require.NoError(t, err)
	require.False(t, merged.Has("cost_cents"), "input must not be modified")
	cost := r.Table.Columns["cost_cents"]
	for i := 0; i < r.Table.N; i++ {
		lq, _ := r.Table.Value(i, Provenance)
		if lq == 99 {
			require.True(t, cost.IsNA(i))
		} else {
			require.False(t, cost.IsNA(i))
		}
	}
	requirePNG(t, r)

	_, err = Cost(merged, Options{Policy: benchplot.RejectMissing})
	var mke *benchplot.MissingKeyError
	require.True(t, errors.As(err, &mke), "got %v", err)
	require.Equal(t, 99.0, mke.Key)
}

func TestHardcodedReports(t *testing.T) {
	for _, build := range []func() (*Report, error){JMH, JMHErrorBars, Gatling} {
		r, err := build()
		require.NoError(t, err)
		require.NotNil(t, r.Table)
		requirePNG(t, r)
	}

	r, err := JMHErrorBars()
	require.NoError(t, err)
	require.Equal(t, 200, r.Theme.DPI)
	require.Equal(t, 12, r.Table.N)
	require.Equal(t, "accountfinder_jmh_plot", r.Name)
	require.Equal(t, "accountfinder_jmh_results", r.Table.Name)
}

func TestSimilarityAggregate(t *testing.T) {
	merged := mergedRuns(t, 0)

	// The two easy rows of a run have p50 0.2 and 0.1.
	easy := func(r *Report) float64 {
		require.Equal(t, "easy", r.Series[0].Label)
		return r.Series[0].Points[0].Y
	}
	r, err := Similarity(merged, Quantiles[0], Options{})
	require.NoError(t, err)
	require.InDelta(t, 0.15, easy(r), 1e-9)

	r, err = Similarity(merged, Quantiles[0], Options{Agg: stat.Percentile(100)})
	require.NoError(t, err)
	require.InDelta(t, 0.2, easy(r), 1e-9)

	r, err = Cost(merged, Options{Agg: stat.Percentile(100)})
	require.NoError(t, err)
	require.InDelta(t, 0.2, easy(r), 1e-9)
}

func TestGoBench(t *testing.T) {
	in := strings.Join([]string{
		"BenchmarkFind/hashMap/10-8     50000000   24.0 ns/op",
		"BenchmarkFind/hashMap/10000-8  30000000   29.5 ns/op",
		"BenchmarkFind/linear/10-8      30000000   41.5 ns/op",
		"BenchmarkFind/linear/10000-8      10000   41500 ns/op",
	}, "\n")
	tbl, err := benchplot.ReadGoBench(strings.NewReader(in), "bench")
	require.NoError(t, err)

	r, err := GoBench(tbl, Options{})
	require.NoError(t, err)
	require.Equal(t, "gobench", r.Table.Name)
	requirePNG(t, r)
}

func TestGoBenchRepeatedRuns(t *testing.T) {
	in := strings.Join([]string{
		"BenchmarkFind/linear/10-8  30000000   40 ns/op",
		"BenchmarkFind/linear/10-8  30000000   60 ns/op",
		"BenchmarkFind/linear/10-8  30000000  200 ns/op",
	}, "\n")
	tbl, err := benchplot.ReadGoBench(strings.NewReader(in), "runs/bench.txt")
	require.NoError(t, err)

	for _, tc := range []struct {
		stat string
		want float64
	}{
		{"mean", 0.1},
		{"median", 0.06},
		{"p100", 0.2},
	} {
		f, err := stat.ByName(tc.stat)
		require.NoError(t, err)
		r, err := GoBench(tbl, Options{Agg: f})
		require.NoError(t, err, tc.stat)
		require.Len(t, r.Series, 1)
		require.InDelta(t, tc.want, r.Series[0].Points[0].Y, 1e-9, tc.stat)
	}
	require.Equal(t, "runs/bench.txt", tbl.Name, "input table keeps its name")
}

func TestReportSave(t *testing.T) {
	r, err := Gatling()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, SaveAll([]*Report{r}, dir, "png", true))
	for _, name := range []string{"gatling_comparison.png", "gatling_comparison.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	back, err := benchplot.LoadCSV(filepath.Join(dir, "gatling_comparison.csv"))
	require.NoError(t, err)
	require.Equal(t, r.Table.N, back.N)
	require.Equal(t, r.Table.FieldNames(), back.FieldNames())
}

func TestSaveAllSharedTable(t *testing.T) {
	merged := mergedRuns(t, 0, 1)
	var rs []*Report
	for _, q := range Quantiles {
		r, err := Similarity(merged, q, Options{})
		require.NoError(t, err)
		rs = append(rs, r)
	}

	dir := t.TempDir()
	require.NoError(t, SaveAll(rs, dir, "png", true))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var csvs, pngs []string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".csv":
			csvs = append(csvs, e.Name())
		case ".png":
			pngs = append(pngs, e.Name())
		}
	}
	require.Equal(t, []string{"comparison_last_queries.csv"}, csvs)
	require.Len(t, pngs, len(Quantiles))

	back, err := benchplot.LoadCSV(filepath.Join(dir, "comparison_last_queries.csv"))
	require.NoError(t, err)
	require.Equal(t, merged.N, back.N)
	require.True(t, back.Has(Provenance))

	// Without withCSV only the charts are written.
	dir = t.TempDir()
	require.NoError(t, SaveAll(rs, dir, "png", false))
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, len(Quantiles))
}
