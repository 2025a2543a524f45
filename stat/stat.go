// Package stat holds the aggregation functions used to collapse the
// values of one group into a single plot point.
package stat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	mstats "github.com/montanaflynn/stats"
	gstat "gonum.org/v1/gonum/stat"
)

// ErrEmpty is returned when a statistic is computed over no values.
var ErrEmpty = errors.New("stat: no values")

// Func reduces the values of one group to a single number.
type Func func(x []float64) (float64, error)

// Mean is the arithmetic mean.
func Mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	return gstat.Mean(x, nil), nil
}

// StdDev is the sample standard deviation. A single value has no spread
// and gives 0.
func StdDev(x []float64) (float64, error) {
	switch len(x) {
	case 0:
		return 0, ErrEmpty
	case 1:
		return 0, nil
	}
	return gstat.StdDev(x, nil), nil
}

// Median is the 50th percentile, the mean of the two middle values for
// an even number of values.
func Median(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}
	return mstats.Median(mstats.Float64Data(x))
}

// Percentile returns a Func computing the p-th percentile, 0 < p <= 100.
func Percentile(p float64) Func {
	return func(x []float64) (float64, error) {
		if len(x) == 0 {
			return 0, ErrEmpty
		}
		return mstats.Percentile(mstats.Float64Data(x), p)
	}
}

// ByName looks up a statistic: mean, median, stddev or pNN for the
// NN-th percentile (e.g. p90).
func ByName(name string) (Func, error) {
	switch name {
	case "mean", "":
		return Mean, nil
	case "median":
		return Median, nil
	case "stddev", "std":
		return StdDev, nil
	}
	if strings.HasPrefix(name, "p") {
		p, err := strconv.ParseFloat(name[1:], 64)
		if err == nil && p > 0 && p <= 100 {
			return Percentile(p), nil
		}
	}
	return nil, fmt.Errorf("stat: unknown statistic %q", name)
}
