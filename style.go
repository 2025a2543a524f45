package benchplot

import (
	"image/color"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// AesMapping holds fixed aesthetics as text, e.g. "color": "#1f77b4",
// "size": "2", "linetype": "dashed". The zero value sets nothing.
type AesMapping map[string]string

// MergeStyles merges the mappings in ams. Earlier mappings take
// precedence over later ones, so the most specific style goes first.
func MergeStyles(ams ...AesMapping) AesMapping {
	merged := make(AesMapping)
	for i := len(ams) - 1; i >= 0; i-- {
		for a, v := range ams[i] {
			merged[a] = v
		}
	}
	return merged
}

// Float returns aesthetic a parsed as a float clamped to [low,high] or
// def if a is not set.
func (m AesMapping) Float(a string, low, high, def float64) float64 {
	s, ok := m[a]
	if !ok {
		return def
	}
	return String2Float(s, low, high)
}

func String2Float(s string, low, high float64) float64 {
	factor := 1.0
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		factor = 100
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		Logger.Warnf("cannot parse style %q as float: %s", s, err)
		return (low + high) / 2
	}
	value /= factor

	if value < low {
		return low
	} else if value > high {
		return high
	}
	return value
}

// SetAlpha sets the alpha channel of c to a.
func SetAlpha(c color.Color, a float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.NRGBA{n.R, n.G, n.B, uint8(a * 0xff)}
}

// -------------------------------------------------------------------------
// Points

type PointShape int

const (
	BlankPoint PointShape = iota
	CirclePoint
	SquarePoint
	DiamondPoint
	DeltaPoint
	NablaPoint
	SolidCirclePoint
	SolidSquarePoint
	SolidDiamondPoint
	SolidDeltaPoint
	SolidNablaPoint
	CrossPoint
	PlusPoint
	StarPoint

	numPointShapes
)

var pointShapes = map[string]PointShape{
	"blank":         BlankPoint,
	"circle":        CirclePoint,
	"square":        SquarePoint,
	"diamond":       DiamondPoint,
	"delta":         DeltaPoint,
	"nabla":         NablaPoint,
	"solid-circle":  SolidCirclePoint,
	"solid-square":  SolidSquarePoint,
	"solid-diamond": SolidDiamondPoint,
	"solid-delta":   SolidDeltaPoint,
	"solid-nabla":   SolidNablaPoint,
	"cross":         CrossPoint,
	"plus":          PlusPoint,
	"star":          StarPoint,
}

// String2PointShape parses a shape name or number. Unknown shapes are
// blank.
func String2PointShape(s string) PointShape {
	if n, err := strconv.Atoi(s); err == nil {
		return PointShape(n % int(numPointShapes))
	}
	return pointShapes[s]
}

// Glyph returns the glyph drawing shape. Diamonds and nablas have no
// glyph of their own and are drawn as squares and triangles.
func (shape PointShape) Glyph() draw.GlyphDrawer {
	switch shape {
	case CirclePoint:
		return draw.RingGlyph{}
	case SquarePoint, DiamondPoint:
		return draw.SquareGlyph{}
	case DeltaPoint, NablaPoint:
		return draw.TriangleGlyph{}
	case SolidCirclePoint:
		return draw.CircleGlyph{}
	case SolidSquarePoint, SolidDiamondPoint:
		return draw.BoxGlyph{}
	case SolidDeltaPoint, SolidNablaPoint:
		return draw.PyramidGlyph{}
	case CrossPoint:
		return draw.CrossGlyph{}
	case PlusPoint, StarPoint:
		return draw.PlusGlyph{}
	}
	return nil
}

// -------------------------------------------------------------------------
// Lines

type LineType int

const (
	BlankLine LineType = iota
	SolidLine
	DashedLine
	DottedLine
	DotDashLine
	LongdashLine
	TwodashLine

	numLineTypes
)

var lineTypes = map[string]LineType{
	"blank":    BlankLine,
	"solid":    SolidLine,
	"dashed":   DashedLine,
	"dotted":   DottedLine,
	"dotdash":  DotDashLine,
	"longdash": LongdashLine,
	"twodash":  TwodashLine,
}

// String2LineType parses a line type name or number. Unknown types are
// blank.
func String2LineType(s string) LineType {
	if n, err := strconv.Atoi(s); err == nil {
		return LineType(n % int(numLineTypes))
	}
	return lineTypes[s]
}

// Dashes returns the dash pattern of lt, nil for solid and blank lines.
func (lt LineType) Dashes() []vg.Length {
	p := vg.Points
	switch lt {
	case DashedLine:
		return []vg.Length{p(4), p(2)}
	case DottedLine:
		return []vg.Length{p(1), p(2)}
	case DotDashLine:
		return []vg.Length{p(1), p(2), p(4), p(2)}
	case LongdashLine:
		return []vg.Length{p(8), p(3)}
	case TwodashLine:
		return []vg.Length{p(5), p(2), p(2), p(2)}
	}
	return nil
}

// lineStyle builds a line style from the "size", "linetype", "color" and
// "alpha" aesthetics of m. col is used if m sets no colour.
func lineStyle(m AesMapping, col color.Color) draw.LineStyle {
	lt := String2LineType(m["linetype"])
	if _, ok := m["linetype"]; !ok {
		lt = SolidLine
	}
	if c, ok := m["color"]; ok {
		col = String2Color(c)
	}
	ls := draw.LineStyle{
		Color:  SetAlpha(col, m.Float("alpha", 0, 1, 1)),
		Width:  vg.Points(m.Float("size", 0, 20, 1)),
		Dashes: lt.Dashes(),
	}
	if lt == BlankLine {
		ls.Width = 0
	}
	return ls
}

// -------------------------------------------------------------------------
// Colors

// BuiltinColors are the named colours of String2Color. Greys come as
// "gray" and "gray0" to "gray100" in steps of 10.
var BuiltinColors = map[string]color.NRGBA{
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0xff, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"black":   {0x00, 0x00, 0x00, 0xff},
	"gray":    {0x7f, 0x7f, 0x7f, 0xff},
}

func init() {
	for p := 0; p <= 100; p += 10 {
		y := uint8((p*0xff + 50) / 100)
		BuiltinColors["gray"+strconv.Itoa(p)] = color.NRGBA{y, y, y, 0xff}
	}
}

// String2Color parses "#rrggbb", "#rrggbbaa" or a builtin color name.
// Anything else gives a conspicuous translucent pink.
func String2Color(s string) color.Color {
	if col, ok := BuiltinColors[s]; ok {
		return col
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == len(s) || (len(hex) != 6 && len(hex) != 8) {
		return color.NRGBA{0xaa, 0x66, 0x77, 0x7f}
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{0xaa, 0x66, 0x77, 0x7f}
	}
	return color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}
