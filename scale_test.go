package benchplot

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
)

func TestScaleDecide(t *testing.T) {
	tests := []struct {
		values []float64
		mode   LogMode
		log    bool
		err    error
	}{
		{[]float64{1, 10}, LogOff, false, nil},
		{[]float64{1, 10}, LogOn, true, nil},
		{[]float64{1, 10}, LogAuto, false, nil},
		{[]float64{1, 200}, LogAuto, true, nil},
		{[]float64{0.05, 900}, LogAuto, true, nil},
		{[]float64{0, 1000}, LogAuto, false, nil},
		{[]float64{0, 1000}, LogOn, false, ErrLogNonPositive},
		{[]float64{-1, 5}, LogOn, false, ErrLogNonPositive},
		{nil, LogOn, false, nil},
	}
	for i, tc := range tests {
		s := NewScale("y")
		s.Train(tc.values...)
		err := s.Decide(tc.mode)
		if tc.err != nil {
			require.True(t, errors.Is(err, tc.err), "%d: got %v", i, err)
			continue
		}
		require.NoError(t, err, i)
		require.Equal(t, tc.log, s.Log, "%d: %s", i, s)
	}
}

func TestScaleTrain(t *testing.T) {
	s := NewScale("x")
	require.False(t, s.Trained())
	s.Train(3, math.NaN(), -2, 7)
	require.True(t, s.Trained())
	require.Equal(t, -2.0, s.DomainMin)
	require.Equal(t, 7.0, s.DomainMax)
	require.Equal(t, 1, s.NonPositive)
}

func TestScaleApply(t *testing.T) {
	p := plot.New()
	s := NewScale("x")
	s.Train(1, 1e4)
	require.NoError(t, s.Decide(LogAuto))
	s.Apply(&p.X)
	require.IsType(t, plot.LogScale{}, p.X.Scale)
	require.IsType(t, plot.LogTicks{}, p.X.Tick.Marker)
}

func TestMinPositive(t *testing.T) {
	require.Equal(t, 0.5, minPositive(-1, 0, 3, 0.5))
	require.True(t, math.IsInf(minPositive(0, -3), +1))
	require.InDelta(t, 3, orders(0.01, 10), 1e-12)
}
