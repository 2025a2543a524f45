package benchplot

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// Kind is the type of chart.
type Kind int

const (
	LinePoints Kind = iota // lines with a marker at each point
	ErrorBars              // lines with markers and vertical error bars
	Bars                   // grouped bar chart over a nominal x axis
)

func (k Kind) String() string {
	switch k {
	case LinePoints:
		return "LinePoints"
	case ErrorBars:
		return "ErrorBars"
	case Bars:
		return "Bars"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

type LegendPos int

const (
	LegendTopRight LegendPos = iota
	LegendTopLeft
	LegendBottomRight
	LegendBottomLeft
	LegendHidden
)

type GridMode int

const (
	GridNone GridMode = iota
	GridXY
	GridY
)

// Chart describes how series are rendered. The zero value draws lines
// with markers on linear axes, legend top right, no grid.
type Chart struct {
	Kind Kind

	Title, XLabel, YLabel string

	// LegendTitle, if set, heads the legend entries.
	LegendTitle string
	Legend      LegendPos

	LogX, LogY LogMode

	// XTicksAtData puts the x ticks exactly at the distinct x values.
	XTicksAtData bool

	Grid GridMode

	// Style overrides the theme styles of the geom.
	Style AesMapping

	// Theme is the look of the chart, nil means DefaultTheme.
	Theme *Theme
}

func (c *Chart) theme() *Theme {
	if c.Theme != nil {
		return c.Theme
	}
	return &DefaultTheme
}

func (c *Chart) geom(floor float64) Geom {
	switch c.Kind {
	case ErrorBars:
		return GeomErrorBars{Style: c.Style, Floor: floor}
	case Bars:
		return GeomBar{Style: c.Style}
	}
	return GeomLinePoints{Style: c.Style}
}

// Plot renders series, one visually distinct line per series with a
// legend entry named by its label. No series gives an empty chart.
func (c *Chart) Plot(series []Series) (*plot.Plot, error) {
	if c.Kind == Bars {
		names, aligned := alignBars(series)
		return c.render(aligned, names)
	}
	return c.render(series, nil)
}

// alignBars puts the points of all series onto the sorted union of their
// x values. Point j of every returned series belongs to names[j]; an x
// value a series lacks gets a zero height bar.
func alignBars(series []Series) ([]string, []Series) {
	xs := NewFloatSet()
	for _, s := range series {
		for _, p := range s.Points {
			xs.Add(p.X)
		}
	}
	union := xs.Elements()
	pos := make(map[float64]int, len(union))
	names := make([]string, len(union))
	for j, x := range union {
		pos[x] = j
		names[j] = strconv.FormatFloat(x, 'g', -1, 64)
	}

	aligned := make([]Series, len(series))
	for i, s := range series {
		points := make([]Point, len(union))
		seen := make([]bool, len(union))
		for j := range points {
			points[j].X = float64(j)
		}
		for _, p := range s.Points {
			j := pos[p.X]
			points[j].Y, points[j].Err = p.Y, p.Err
			seen[j] = true
		}
		for j, ok := range seen {
			if !ok {
				warnf(logrus.Fields{"series": s.Label, "x": names[j]},
					"bars: no value, drawn as zero")
			}
		}
		aligned[i] = Series{Label: s.Label, Points: points}
	}
	return names, aligned
}

// PlotBars renders a grouped bar chart of t: one group of bars per row,
// labelled by column index, one bar per scenario column. A nil scenarios
// uses all columns but index. Missing cells are drawn as zero height.
func (c *Chart) PlotBars(t *Table, index string, scenarios []string) (*plot.Plot, error) {
	idx, ok := t.Columns[index]
	if !ok {
		return nil, noSuchColumn(t, index)
	}
	if scenarios == nil {
		for _, col := range t.Order {
			if col != index {
				scenarios = append(scenarios, col)
			}
		}
	}

	names := make([]string, t.N)
	for i := range names {
		names[i] = idx.Format(i)
	}
	series := make([]Series, len(scenarios))
	for j, sc := range scenarios {
		f, ok := t.Columns[sc]
		if !ok {
			return nil, noSuchColumn(t, sc)
		}
		if f.Type == String {
			return nil, fmt.Errorf("bars %q: %w: scenario %q is a string column",
				t.Name, ErrTypeMismatch, sc)
		}
		series[j].Label = sc
		series[j].Points = make([]Point, t.N)
		for i := 0; i < t.N; i++ {
			series[j].Points[i].X = float64(i)
			if f.IsNA(i) {
				warnf(logrus.Fields{"table": t.Name, "scenario": sc, "row": names[i]},
					"bars: missing value drawn as zero")
				continue
			}
			series[j].Points[i].Y = f.Data[i]
		}
	}

	cc := *c
	cc.Kind = Bars
	return cc.render(series, names)
}

// render runs the steps of drawing a chart: train the scales on all
// points, decide on log axes, construct the geoms of every series and
// decorate the plot.
func (c *Chart) render(series []Series, nominal []string) (*plot.Plot, error) {
	th := c.theme()

	sx, sy := NewScale("x"), NewScale("y")
	var ys []float64
	for _, s := range series {
		for _, p := range s.Points {
			if c.Kind != Bars {
				sx.Train(p.X)
			}
			sy.Train(p.Y)
			if c.Kind == ErrorBars {
				sy.Train(p.Y + p.Err)
			}
			ys = append(ys, p.Y)
		}
	}
	if c.Kind == Bars && sy.Trained() {
		sy.Train(0) // bars start at zero
	}
	if err := sx.Decide(c.LogX); err != nil {
		return nil, fmt.Errorf("chart %q: %w", c.Title, err)
	}
	if err := sy.Decide(c.LogY); err != nil {
		return nil, fmt.Errorf("chart %q: %w", c.Title, err)
	}
	debugf(logrus.Fields{"chart": c.Title, "series": len(series)}, "%s; %s", sx, sy)

	var floor float64
	if c.Kind == ErrorBars && sy.Log {
		floor = minPositive(ys...) / 10
	}
	geom := c.geom(floor)

	p := plot.New()
	c.decorate(p, th)
	if c.Grid != GridNone {
		p.Add(c.grid(th))
	}
	if c.LegendTitle != "" && c.Legend != LegendHidden && len(series) > 0 {
		p.Legend.Add(c.LegendTitle)
	}

	colors := th.Colors(len(series))
	for i, s := range series {
		plotters, thumbs, err := geom.Construct(s, i, len(series), colors[i], th)
		if err != nil {
			return nil, fmt.Errorf("chart %q: %s: %w", c.Title, geom.Name(), err)
		}
		p.Add(plotters...)
		if c.Legend != LegendHidden {
			p.Legend.Add(s.Label, thumbs...)
		}
	}

	sx.Apply(&p.X)
	sy.Apply(&p.Y)
	if len(nominal) > 0 {
		p.NominalX(nominal...)
	} else if c.XTicksAtData && len(series) > 0 {
		p.X.Tick.Marker = dataTicks(series)
	}
	return p, nil
}

func (c *Chart) decorate(p *plot.Plot, th *Theme) {
	p.Title.Text = c.Title
	p.Title.TextStyle.Font.Size = th.TitleSize
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.X.Label.TextStyle.Font.Size = th.LabelSize
	p.Y.Label.TextStyle.Font.Size = th.LabelSize
	p.X.Tick.Label.Font.Size = th.TickSize
	p.Y.Tick.Label.Font.Size = th.TickSize
	p.Legend.TextStyle.Font.Size = th.LegendSize

	switch c.Legend {
	case LegendTopRight:
		p.Legend.Top = true
	case LegendTopLeft:
		p.Legend.Top = true
		p.Legend.Left = true
	case LegendBottomLeft:
		p.Legend.Left = true
	}
}

func (c *Chart) grid(th *Theme) *plotter.Grid {
	ls := lineStyle(th.GridStyle, color.Gray{Y: 0xcc})
	g := plotter.NewGrid()
	g.Vertical = ls
	g.Horizontal = ls
	if c.Grid == GridY || c.Kind == Bars {
		g.Vertical.Color = nil
	}
	return g
}

// dataTicks returns ticks at every distinct x value of series.
func dataTicks(series []Series) plot.ConstantTicks {
	xs := NewFloatSet()
	for _, s := range series {
		for _, p := range s.Points {
			xs.Add(p.X)
		}
	}
	var ticks []plot.Tick
	for _, x := range xs.Elements() {
		ticks = append(ticks, plot.Tick{Value: x, Label: strconv.FormatFloat(x, 'g', -1, 64)})
	}
	return plot.ConstantTicks(ticks)
}
