package benchplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Geom is a type of visual for one series of a chart.
type Geom interface {
	Name() string

	// Construct returns the plotters drawing s in colour col and the
	// thumbnails for its legend entry. s is series i of n.
	Construct(s Series, i, n int, col color.Color, th *Theme) ([]plot.Plotter, []plot.Thumbnailer, error)
}

func seriesXYs(s Series) plotter.XYs {
	xys := make(plotter.XYs, len(s.Points))
	for i, p := range s.Points {
		xys[i].X, xys[i].Y = p.X, p.Y
	}
	return xys
}

// -------------------------------------------------------------------------
// Geom LinePoints

// GeomLinePoints connects the points of a series with a line and marks
// each point.
type GeomLinePoints struct {
	Style AesMapping // overrides the theme's LineStyle and PointStyle
}

var _ Geom = GeomLinePoints{}

func (GeomLinePoints) Name() string { return "GeomLinePoints" }

func (g GeomLinePoints) Construct(s Series, _, _ int, col color.Color, th *Theme) ([]plot.Plotter, []plot.Thumbnailer, error) {
	line, points, err := plotter.NewLinePoints(seriesXYs(s))
	if err != nil {
		return nil, nil, fmt.Errorf("series %q: %w", s.Label, err)
	}
	line.LineStyle = lineStyle(MergeStyles(g.Style, th.LineStyle), col)

	ps := MergeStyles(g.Style, th.PointStyle)
	shape := String2PointShape(ps["shape"]).Glyph()
	if shape == nil {
		return []plot.Plotter{line}, []plot.Thumbnailer{line}, nil
	}
	points.GlyphStyle = draw.GlyphStyle{
		Color:  col,
		Radius: vg.Points(ps.Float("size", 0, 20, 3)),
		Shape:  shape,
	}
	return []plot.Plotter{line, points}, []plot.Thumbnailer{line, points}, nil
}

// -------------------------------------------------------------------------
// Geom ErrorBars

// GeomErrorBars draws a series like GeomLinePoints plus a vertical
// error bar from Y-Err to Y+Err at every point.
type GeomErrorBars struct {
	Style AesMapping // overrides the theme's styles

	// Floor is the lowest value a lower whisker may reach. It keeps
	// whiskers on a log axis positive. Zero means no clipping.
	Floor float64
}

var _ Geom = GeomErrorBars{}

func (GeomErrorBars) Name() string { return "GeomErrorBars" }

// errorPoints satisfies the XYer and YErrorer interfaces of
// plotter.NewYErrorBars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func (g GeomErrorBars) Construct(s Series, i, n int, col color.Color, th *Theme) ([]plot.Plotter, []plot.Thumbnailer, error) {
	plotters, thumbs, err := GeomLinePoints{Style: g.Style}.Construct(s, i, n, col, th)
	if err != nil {
		return nil, nil, err
	}

	yerrs := make(plotter.YErrors, len(s.Points))
	for j, p := range s.Points {
		low := p.Err
		if g.Floor > 0 && p.Y-low < g.Floor {
			low = p.Y - g.Floor
			if low < 0 {
				low = 0
			}
		}
		yerrs[j].Low, yerrs[j].High = low, p.Err
	}
	bars, err := plotter.NewYErrorBars(errorPoints{XYs: seriesXYs(s), YErrors: yerrs})
	if err != nil {
		return nil, nil, fmt.Errorf("series %q: %w", s.Label, err)
	}
	es := MergeStyles(g.Style, th.ErrorBarStyle)
	bars.LineStyle = lineStyle(es, col)
	bars.CapWidth = vg.Points(es.Float("cap", 0, 50, 6))

	return append(plotters, bars), thumbs, nil
}

// -------------------------------------------------------------------------
// Geom Bar

// GeomBar draws one bar per point at the nominal x position of the
// point's index. The n series are dodged side by side.
type GeomBar struct {
	Style AesMapping // overrides the theme's BarStyle
}

var _ Geom = GeomBar{}

func (GeomBar) Name() string { return "GeomBar" }

func (g GeomBar) Construct(s Series, i, n int, col color.Color, th *Theme) ([]plot.Plotter, []plot.Thumbnailer, error) {
	values := make(plotter.Values, len(s.Points))
	for j, p := range s.Points {
		values[j] = p.Y
	}
	bs := MergeStyles(g.Style, th.BarStyle)
	width := vg.Points(bs.Float("width", 1, 200, 16))
	bars, err := plotter.NewBarChart(values, width)
	if err != nil {
		return nil, nil, fmt.Errorf("series %q: %w", s.Label, err)
	}
	if c, ok := bs["fill"]; ok {
		col = String2Color(c)
	}
	bars.Color = col
	bars.LineStyle = lineStyle(bs, color.Black)

	// n=3:  |--0--|--1--|--2--|
	//                 ^ x
	bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width

	return []plot.Plotter{bars}, []plot.Thumbnailer{bars}, nil
}
