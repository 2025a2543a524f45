package benchplot

import (
	"math"
)

// orders returns the number of decades spanned by [min,max]. Both must
// be positive.
func orders(min, max float64) float64 {
	return math.Log10(max / min)
}

// minPositive returns the smallest positive value in xs or +Inf.
func minPositive(xs ...float64) float64 {
	m := math.Inf(+1)
	for _, x := range xs {
		if x > 0 && x < m {
			m = x
		}
	}
	return m
}
