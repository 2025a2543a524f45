package benchplot

import (
	"image/color"

	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Theme collects the fixed look of a chart. Series colours come from
// Palette, everything else from the style mappings.
type Theme struct {
	PointStyle, LineStyle, BarStyle, ErrorBarStyle, GridStyle AesMapping

	// Font sizes.
	TitleSize, LabelSize, TickSize, LegendSize vg.Length

	// Size of the saved image and resolution of raster formats.
	Width, Height vg.Length
	DPI           int

	// Palette is the name of a qualitative ColorBrewer palette such as
	// "Set1" or "Dark2". The empty string selects plotutil.DefaultColors.
	Palette string
}

var DefaultTheme = Theme{
	PointStyle: AesMapping{
		"size":  "3",
		"shape": "solid-circle",
	},
	LineStyle: AesMapping{
		"size":     "1.5",
		"linetype": "solid",
	},
	BarStyle: AesMapping{
		"linetype": "blank",
		"width":    "16",
	},
	ErrorBarStyle: AesMapping{
		"size": "1",
		"cap":  "6",
	},
	GridStyle: AesMapping{
		"size":     "0.5",
		"linetype": "dashed",
		"color":    "gray80",
	},
	TitleSize:  vg.Points(14),
	LabelSize:  vg.Points(12),
	TickSize:   vg.Points(10),
	LegendSize: vg.Points(10),
	Width:      10 * vg.Inch,
	Height:     6 * vg.Inch,
	DPI:        96,
}

// Colors returns n distinct series colours.
func (th Theme) Colors(n int) []color.Color {
	colors := make([]color.Color, n)
	if th.Palette != "" {
		// Qualitative brewer palettes come in sizes from 3 up.
		k := n
		if k < 3 {
			k = 3
		}
		for ; k >= 3; k-- {
			p, err := brewer.GetPalette(brewer.TypeQualitative, th.Palette, k)
			if err != nil {
				continue
			}
			pc := p.Colors()
			for i := range colors {
				colors[i] = pc[i%len(pc)]
			}
			return colors
		}
		Logger.Warnf("unknown palette %q, using default colors", th.Palette)
	}
	for i := range colors {
		colors[i] = plotutil.Color(i)
	}
	return colors
}
