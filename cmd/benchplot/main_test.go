package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vdobler/benchplot"
	"github.com/vdobler/benchplot/internal/reports"
)

func TestInputsFlag(t *testing.T) {
	in := inputs{}
	require.NoError(t, in.Set("0=runs/0.csv"))
	require.NoError(t, in.Set("10=runs/10.csv"))
	require.Equal(t, "0=runs/0.csv,10=runs/10.csv", in.String())
	require.Error(t, in.Set("runs.csv"))
	require.Error(t, in.Set("=x.csv"))
}

func TestBuild(t *testing.T) {
	for _, n := range []string{"jmh", "jmh-errorbars", "gatling"} {
		rs, err := build(n, reports.Options{})
		require.NoError(t, err, n)
		require.Len(t, rs, 1, n)
	}
	_, err := build("pie", reports.Options{})
	require.Error(t, err)
}

func TestBuildRuns(t *testing.T) {
	dir := t.TempDir()
	csv := "difficulty,p50_overlap_similarity,p90_overlap_similarity,p99_overlap_similarity\n" +
		"easy,0.8,0.9,0.95\nhard,0.5,0.6,0.7\n"
	old := runs
	defer func() { runs = old }()
	runs = inputs{}
	for _, k := range []string{"0", "5"} {
		path := filepath.Join(dir, k+".csv")
		require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))
		require.NoError(t, runs.Set(k+"="+path))
	}

	rs, err := build("similarity", reports.Options{})
	require.NoError(t, err)
	require.Len(t, rs, 3)

	rs, err = build("cost", reports.Options{Policy: benchplot.RejectMissing})
	require.NoError(t, err)
	require.Len(t, rs, 1)

	require.True(t, available("cost"))
	require.False(t, available("gobench"))
}

func TestOptions(t *testing.T) {
	oldStat, oldPolicy := *agg, *policy
	defer func() { *agg, *policy = oldStat, oldPolicy }()

	values := []float64{40, 60, 200}
	for _, tc := range []struct {
		stat string
		want float64
	}{
		{"mean", 100},
		{"median", 60},
		{"p90", 130},
	} {
		*agg = tc.stat
		opts, err := options()
		require.NoError(t, err, tc.stat)
		require.NotNil(t, opts.Agg)
		got, err := opts.Agg(values)
		require.NoError(t, err)
		require.InDelta(t, tc.want, got, 1e-9, tc.stat)
	}

	*agg = "mode"
	_, err := options()
	require.Error(t, err)

	*agg, *policy = "mean", "ignore"
	_, err = options()
	require.Error(t, err)
}

func TestBuildGoBenchStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.txt")
	in := "BenchmarkFind/linear/10-8  30000000   40 ns/op\n" +
		"BenchmarkFind/linear/10-8  30000000   60 ns/op\n" +
		"BenchmarkFind/linear/10-8  30000000  200 ns/op\n"
	require.NoError(t, os.WriteFile(path, []byte(in), 0o644))

	oldStat, oldBench := *agg, *bench
	defer func() { *agg, *bench = oldStat, oldBench }()
	*bench = path

	y := func(s string) float64 {
		*agg = s
		opts, err := options()
		require.NoError(t, err)
		rs, err := build("gobench", opts)
		require.NoError(t, err)
		require.Len(t, rs, 1)
		return rs[0].Series[0].Points[0].Y
	}
	require.InDelta(t, 0.1, y("mean"), 1e-9)
	require.InDelta(t, 0.06, y("median"), 1e-9)
}
