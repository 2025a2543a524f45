// Package reports builds the benchmark charts of the AccountFinder and
// SQL generator experiments from their result tables.
package reports

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/vdobler/benchplot"
	"github.com/vdobler/benchplot/stat"
)

// Options control how the reports drawn from input tables collapse
// their rows into points.
type Options struct {
	Policy benchplot.MissingPolicy
	Agg    stat.Func // nil: mean
}

// Report is a rendered chart together with the table it was drawn from.
// Several reports may share one table.
type Report struct {
	Name  string
	Plot  *plot.Plot
	Table *benchplot.Table
	Theme *benchplot.Theme

	// Series are the grouped points drawn, nil for bar charts of a table.
	Series []benchplot.Series
}

// Save writes the chart to dir/<name>.<format>.
func (r *Report) Save(dir, format string) error {
	path := filepath.Join(dir, r.Name+"."+format)
	if err := benchplot.Save(r.Plot, path, r.Theme); err != nil {
		return fmt.Errorf("report %s: %w", r.Name, err)
	}
	logrus.WithField("path", path).Info("chart saved")
	return nil
}

// SaveTable writes the table of r to dir/<table name>.csv.
func (r *Report) SaveTable(dir string) error {
	if r.Table == nil {
		return nil
	}
	path := filepath.Join(dir, r.Table.Name+".csv")
	if err := benchplot.SaveCSV(path, r.Table, false); err != nil {
		return fmt.Errorf("report %s: %w", r.Name, err)
	}
	logrus.WithField("path", path).Info("table saved")
	return nil
}

// SaveAll saves the charts of rs to dir. With withCSV every distinct
// table is written once, however many reports were drawn from it.
func SaveAll(rs []*Report, dir, format string, withCSV bool) error {
	saved := make(map[*benchplot.Table]bool)
	for _, r := range rs {
		if err := r.Save(dir, format); err != nil {
			return err
		}
		if !withCSV || r.Table == nil || saved[r.Table] {
			continue
		}
		saved[r.Table] = true
		if err := r.SaveTable(dir); err != nil {
			return err
		}
	}
	return nil
}

// Write encodes the chart in format to w.
func (r *Report) Write(w io.Writer, format string) error {
	return benchplot.WriteImage(r.Plot, w, format, r.Theme)
}

// theme returns a copy of the default theme with the given figure size
// in inches and font sizes for title, labels, ticks and legend.
func theme(width, height float64, title, label, tick, legend float64) *benchplot.Theme {
	th := benchplot.DefaultTheme
	th.Width, th.Height = vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch
	th.TitleSize = vg.Points(title)
	th.LabelSize = vg.Points(label)
	th.TickSize = vg.Points(tick)
	th.LegendSize = vg.Points(legend)
	return &th
}

// -------------------------------------------------------------------------
// SQL generator precision

// Quantiles are the similarity columns of a precision run.
var Quantiles = []string{
	"p50_overlap_similarity",
	"p90_overlap_similarity",
	"p99_overlap_similarity",
}

// Provenance is the column Merge adds to the precision runs: the number
// of last queries sent along with the prompt.
const Provenance = "last_queries"

// MergeRuns merges precision runs keyed by their number of last queries.
func MergeRuns(runs map[string]*benchplot.Table) (*benchplot.Table, error) {
	merged, err := benchplot.Merge(benchplot.SourcesFromMap(runs), Provenance)
	if err != nil {
		return nil, err
	}
	merged.Name = "comparison_last_queries"
	return merged, nil
}

// Similarity plots quantile, aggregated per group by opts.Agg, against
// the number of last queries, one line per difficulty.
func Similarity(merged *benchplot.Table, quantile string, opts Options) (*Report, error) {
	series, err := benchplot.Group(merged, benchplot.GroupSpec{
		Category: "difficulty",
		X:        Provenance,
		Y:        quantile,
		Agg:      opts.Agg,
		Policy:   opts.Policy,
	})
	if err != nil {
		return nil, fmt.Errorf("similarity %s: %w", quantile, err)
	}
	th := theme(10, 6, 14, 12, 10, 10)
	c := benchplot.Chart{
		Title:       fmt.Sprintf("Comparison of %s vs last_queries", quantile),
		XLabel:      "Number of last queries",
		YLabel:      quantile,
		LegendTitle: "Difficulty",
		Grid:        benchplot.GridXY,
		Theme:       th,
	}
	p, err := c.Plot(series)
	if err != nil {
		return nil, err
	}
	return &Report{Name: "similarity_" + quantile, Plot: p, Table: merged, Theme: th, Series: series}, nil
}

// Cost annotates the merged runs with the cost of one run in cents and
// plots the aggregated p50 similarity against it, one line per
// difficulty. merged is not modified.
func Cost(merged *benchplot.Table, opts Options) (*Report, error) {
	t := merged.Copy()
	t.Name = "cost"
	if err := benchplot.Annotate(t, Provenance, "cost_cents", benchplot.CostMapping, opts.Policy); err != nil {
		return nil, fmt.Errorf("cost: %w", err)
	}
	series, err := benchplot.Group(t, benchplot.GroupSpec{
		Category: "difficulty",
		X:        "cost_cents",
		Y:        "p50_overlap_similarity",
		Agg:      opts.Agg,
		Policy:   opts.Policy,
	})
	if err != nil {
		return nil, fmt.Errorf("cost: %w", err)
	}
	th := theme(8, 6, 14, 12, 10, 10)
	c := benchplot.Chart{
		Title:       "p50 Overlap Similarity vs Cost of Running",
		XLabel:      "Cost (cents)",
		YLabel:      "p50_overlap_similarity",
		LegendTitle: "Difficulty",
		Grid:        benchplot.GridXY,
		Theme:       th,
	}
	p, err := c.Plot(series)
	if err != nil {
		return nil, err
	}
	return &Report{Name: "cost", Plot: p, Table: t, Theme: th, Series: series}, nil
}

// -------------------------------------------------------------------------
// AccountFinder JMH benchmarks

var jmhRows = [][]interface{}{
	{"concurrent", 1000, 160.591},
	{"concurrent", 10000, 9917.469},
	{"concurrent", 100000, 1094837.347},
	{"hashMap", 1000, 0.010},
	{"hashMap", 10000, 0.010},
	{"hashMap", 100000, 0.009},
	{"hashMapExists", 1000, 0.008},
	{"hashMapExists", 10000, 0.009},
	{"hashMapExists", 100000, 0.011},
	{"optimized", 1000, 243.579},
	{"optimized", 10000, 284.536},
	{"optimized", 100000, 419.391},
	{"parallelStream", 1000, 19.198},
	{"parallelStream", 10000, 27.036},
	{"parallelStream", 100000, 61.387},
	{"singleThreaded", 1000, 1.305},
	{"singleThreaded", 10000, 14.376},
	{"singleThreaded", 100000, 137.888},
}

// JMH plots the AccountFinder lookup times of all implementations on
// log-log axes.
func JMH() (*Report, error) {
	t, err := benchplot.NewTableFromRows("jmh_results",
		[]string{"method", "size", "time_us"}, jmhRows)
	if err != nil {
		return nil, err
	}
	series, err := benchplot.Group(t, benchplot.GroupSpec{Category: "method", X: "size", Y: "time_us"})
	if err != nil {
		return nil, err
	}
	th := theme(10, 6, 14, 12, 10, 10)
	th.GridStyle = benchplot.MergeStyles(benchplot.AesMapping{"size": "0.5"}, th.GridStyle)
	c := benchplot.Chart{
		Title:  "JMH Benchmark Results (log-log scale)",
		XLabel: "Input Size",
		YLabel: "Time (us/op)",
		LogX:   benchplot.LogOn,
		LogY:   benchplot.LogOn,
		Legend: benchplot.LegendTopLeft,
		Grid:   benchplot.GridXY,
		Theme:  th,
	}
	p, err := c.Plot(series)
	if err != nil {
		return nil, err
	}
	return &Report{Name: "jmh_results", Plot: p, Table: t, Theme: th, Series: series}, nil
}

var jmhErrorRows = [][]interface{}{
	{"concurrent", 1000, 156.071, 38.087},
	{"concurrent", 10000, 9896.064, 2050.364},
	{"concurrent", 100000, 1059445.097, 61515.917},
	{"optimized", 1000, 248.813, 159.170},
	{"optimized", 10000, 278.543, 269.367},
	{"optimized", 100000, 424.559, 478.451},
	{"parallelStream", 1000, 18.746, 15.515},
	{"parallelStream", 10000, 27.132, 9.933},
	{"parallelStream", 100000, 69.923, 156.389},
	{"singleThreaded", 1000, 1.212, 0.351},
	{"singleThreaded", 10000, 14.457, 4.584},
	{"singleThreaded", 100000, 137.512, 95.629},
}

// JMHErrorBars plots the average time per operation with one standard
// deviation error bars on a log y axis, rendered at 200 dpi.
func JMHErrorBars() (*Report, error) {
	t, err := benchplot.NewTableFromRows("accountfinder_jmh_results",
		[]string{"variant", "size", "avg_us_op", "stddev_us_op"}, jmhErrorRows)
	if err != nil {
		return nil, err
	}
	series, err := benchplot.Group(t, benchplot.GroupSpec{
		Category: "variant",
		X:        "size",
		Y:        "avg_us_op",
		Err:      "stddev_us_op",
	})
	if err != nil {
		return nil, err
	}
	th := theme(9, 6, 16, 14, 12, 11)
	th.DPI = 200
	c := benchplot.Chart{
		Kind:         benchplot.ErrorBars,
		Title:        "AccountFinder JMH: Average time per op (us/op) vs input size",
		XLabel:       "Input size (N)",
		YLabel:       "Average time (us/op, log scale)",
		LogY:         benchplot.LogOn,
		XTicksAtData: true,
		Legend:       benchplot.LegendTopLeft,
		Grid:         benchplot.GridY,
		Theme:        th,
	}
	p, err := c.Plot(series)
	if err != nil {
		return nil, err
	}
	return &Report{Name: "accountfinder_jmh_plot", Plot: p, Table: t, Theme: th, Series: series}, nil
}

// -------------------------------------------------------------------------
// Gatling load tests

// Gatling compares the response times of the caching variants as
// grouped bars, one group per metric.
func Gatling() (*Report, error) {
	t, err := benchplot.NewTableFromRows("gatling_comparison",
		[]string{"Metric", "Baseline", "Gatling caching", "Mistakes & Trade-offs caching"},
		[][]interface{}{
			{"95th percentile", 66, 9, 3},
			{"99th percentile", 82, 17, 65},
			{"Max", 148, 36, 554},
			{"Mean", 20, 20, 5},
		})
	if err != nil {
		return nil, err
	}
	th := theme(10, 6, 16, 14, 12, 12)
	th.GridStyle = benchplot.MergeStyles(benchplot.AesMapping{"alpha": "0.7"}, th.GridStyle)
	c := benchplot.Chart{
		Title:       "Performance Comparison",
		XLabel:      "Metric",
		YLabel:      "Value (ms)",
		LegendTitle: "Scenario",
		Grid:        benchplot.GridY,
		Theme:       th,
	}
	p, err := c.PlotBars(t, "Metric", nil)
	if err != nil {
		return nil, err
	}
	return &Report{Name: "gatling_comparison", Plot: p, Table: t, Theme: th}, nil
}

// -------------------------------------------------------------------------
// Go benchmarks

// GoBench plots a table read by benchplot.ReadGoBench: time per
// operation against size, one line per benchmark. Repeated runs of a
// benchmark are collapsed by opts.Agg. Axes switch to log scale when the
// values span enough decades.
func GoBench(t *benchplot.Table, opts Options) (*Report, error) {
	series, err := benchplot.Group(t, benchplot.GroupSpec{
		Category: "method",
		X:        "size",
		Y:        "us_per_op",
		Agg:      opts.Agg,
		Policy:   opts.Policy,
	})
	if err != nil {
		return nil, fmt.Errorf("gobench: %w", err)
	}
	th := theme(10, 6, 14, 12, 10, 10)
	c := benchplot.Chart{
		Title:  "Go Benchmark Results",
		XLabel: "Input Size",
		YLabel: "Time (us/op)",
		LogX:   benchplot.LogAuto,
		LogY:   benchplot.LogAuto,
		Legend: benchplot.LegendTopLeft,
		Grid:   benchplot.GridXY,
		Theme:  th,
	}
	p, err := c.Plot(series)
	if err != nil {
		return nil, err
	}
	named := *t
	named.Name = "gobench"
	return &Report{Name: "gobench", Plot: p, Table: &named, Theme: th, Series: series}, nil
}
