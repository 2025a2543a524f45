// Command benchplot draws the benchmark report charts.
//
//	benchplot [flags] similarity|cost|jmh|jmh-errorbars|gatling|gobench|all
//
// Without -out the chart of a single report is written to stdout.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vdobler/benchplot"
	"github.com/vdobler/benchplot/internal/reports"
	"github.com/vdobler/benchplot/stat"
)

// inputs collects repeated -input KEY=PATH flags.
type inputs map[string]string

func (in inputs) String() string {
	var s []string
	for k, p := range in {
		s = append(s, k+"="+p)
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}

func (in inputs) Set(v string) error {
	k, p, ok := strings.Cut(v, "=")
	if !ok || k == "" || p == "" {
		return fmt.Errorf("want KEY=PATH, got %q", v)
	}
	in[k] = p
	return nil
}

var (
	out     = flag.String("out", "", "directory for the charts; empty writes a single chart to stdout")
	format  = flag.String("format", "png", "image format: png, jpg, tif, svg, pdf or eps")
	dpi     = flag.Int("dpi", 0, "resolution of raster images; 0 keeps the report's default")
	withCSV = flag.Bool("csv", false, "also save the tables of the reports as CSV, each table once")
	bench   = flag.String("bench", "", "go test -bench output for the gobench report, - for stdin")
	policy  = flag.String("policy", "exclude", "missing lookup keys and values: exclude or reject")
	agg     = flag.String("stat", "mean", "statistic per group for similarity, cost and gobench: mean, median, stddev or pNN")
	verbose = flag.Bool("v", false, "debug logging")

	runs = inputs{}
)

var names = []string{"similarity", "cost", "jmh", "jmh-errorbars", "gatling", "gobench"}

func main() {
	flag.Var(runs, "input", "precision run as LAST_QUERIES=PATH.csv (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: benchplot [flags] %s|all\n", strings.Join(names, "|"))
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	benchplot.Logger = log.StandardLogger()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// options parses the -policy and -stat flags.
func options() (reports.Options, error) {
	mp, err := benchplot.ParseMissingPolicy(*policy)
	if err != nil {
		return reports.Options{}, err
	}
	f, err := stat.ByName(*agg)
	if err != nil {
		return reports.Options{}, err
	}
	return reports.Options{Policy: mp, Agg: f}, nil
}

func run(name string) error {
	opts, err := options()
	if err != nil {
		return err
	}
	selected := []string{name}
	if name == "all" {
		selected = names
	}

	var rs []*reports.Report
	for _, n := range selected {
		if name == "all" && !available(n) {
			log.WithField("report", n).Warn("no input given, report skipped")
			continue
		}
		r, err := build(n, opts)
		if err != nil {
			return err
		}
		rs = append(rs, r...)
	}

	if *dpi > 0 {
		for _, r := range rs {
			th := *r.Theme
			th.DPI = *dpi
			r.Theme = &th
		}
	}

	if *out == "" {
		if len(rs) != 1 {
			return fmt.Errorf("%s gives %d charts, use -out", name, len(rs))
		}
		return rs[0].Write(os.Stdout, *format)
	}
	return reports.SaveAll(rs, *out, *format, *withCSV)
}

// available reports whether the input report name needs was given.
func available(name string) bool {
	switch name {
	case "similarity", "cost":
		return len(runs) > 0
	case "gobench":
		return *bench != ""
	}
	return true
}

func build(name string, opts reports.Options) ([]*reports.Report, error) {
	switch name {
	case "similarity", "cost":
		merged, err := loadRuns()
		if err != nil {
			return nil, err
		}
		if name == "cost" {
			r, err := reports.Cost(merged, opts)
			return []*reports.Report{r}, err
		}
		var rs []*reports.Report
		for _, q := range reports.Quantiles {
			r, err := reports.Similarity(merged, q, opts)
			if err != nil {
				return nil, err
			}
			rs = append(rs, r)
		}
		return rs, nil
	case "jmh":
		r, err := reports.JMH()
		return []*reports.Report{r}, err
	case "jmh-errorbars":
		r, err := reports.JMHErrorBars()
		return []*reports.Report{r}, err
	case "gatling":
		r, err := reports.Gatling()
		return []*reports.Report{r}, err
	case "gobench":
		t, err := loadBench()
		if err != nil {
			return nil, err
		}
		r, err := reports.GoBench(t, opts)
		return []*reports.Report{r}, err
	}
	return nil, fmt.Errorf("unknown report %q", name)
}

func loadRuns() (*benchplot.Table, error) {
	if len(runs) == 0 {
		return nil, fmt.Errorf("no precision runs given, use -input KEY=PATH")
	}
	tables := make(map[string]*benchplot.Table, len(runs))
	for k, p := range runs {
		t, err := benchplot.LoadCSV(p)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"key": k, "rows": t.N}).Debug("loaded run")
		tables[k] = t
	}
	return reports.MergeRuns(tables)
}

func loadBench() (*benchplot.Table, error) {
	switch *bench {
	case "":
		return nil, fmt.Errorf("no benchmark output given, use -bench PATH")
	case "-":
		return benchplot.ReadGoBench(os.Stdin, "stdin")
	}
	f, err := os.Open(*bench)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return benchplot.ReadGoBench(f, *bench)
}
