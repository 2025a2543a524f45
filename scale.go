package benchplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
)

// LogMode selects linear or logarithmic scaling of an axis.
type LogMode int

const (
	LogOff LogMode = iota
	LogOn
	// LogAuto uses a log scale if all values are positive and span at
	// least AutoLogDecades decades.
	LogAuto
)

// AutoLogDecades is the range, in powers of ten, from which LogAuto
// switches to a logarithmic axis.
var AutoLogDecades = 2.0

// Scale is trained on the values drawn along one axis and decides
// whether this axis is logarithmic.
type Scale struct {
	Aesthetic string // "x" or "y"

	DomainMin float64
	DomainMax float64

	// NonPositive counts trained values <= 0.
	NonPositive int

	Log bool
}

func NewScale(aesthetic string) *Scale {
	return &Scale{
		Aesthetic: aesthetic,
		DomainMin: math.Inf(+1),
		DomainMax: math.Inf(-1),
	}
}

// Train widens the domain of s to include xs. NaNs are ignored.
func (s *Scale) Train(xs ...float64) {
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		if x <= 0 {
			s.NonPositive++
		}
		if x < s.DomainMin {
			s.DomainMin = x
		}
		if x > s.DomainMax {
			s.DomainMax = x
		}
	}
}

// Trained reports whether s has seen any value.
func (s *Scale) Trained() bool { return s.DomainMin <= s.DomainMax }

// Decide sets s.Log according to mode. LogOn on a domain including
// values <= 0 fails with ErrLogNonPositive. An untrained scale stays
// linear.
func (s *Scale) Decide(mode LogMode) error {
	s.Log = false
	if !s.Trained() {
		return nil
	}
	switch mode {
	case LogOn:
		if s.NonPositive > 0 {
			return fmt.Errorf("%w: %s axis has %d values <= 0 (min %g)",
				ErrLogNonPositive, s.Aesthetic, s.NonPositive, s.DomainMin)
		}
		s.Log = true
	case LogAuto:
		s.Log = s.NonPositive == 0 && orders(s.DomainMin, s.DomainMax) >= AutoLogDecades
	}
	return nil
}

// Apply configures axis for s.
func (s *Scale) Apply(axis *plot.Axis) {
	if !s.Log {
		return
	}
	axis.Scale = plot.LogScale{}
	axis.Tick.Marker = plot.LogTicks{Prec: -1}
}

func (s *Scale) String() string {
	return fmt.Sprintf("Scale %s [%g,%g] log=%t", s.Aesthetic, s.DomainMin, s.DomainMax, s.Log)
}
