// Package render draws the grouped bar charts the reporter emits, one
// bar group per model and one bar per cleaning method.
package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"cleanml/internal/errors"
)

// groupSlot is the horizontal room one x tick gets; bars fill 0.8 of
// it, mirroring the 0.8 total-width convention of the charts this
// replaces.
var groupSlot = vg.Points(50)

// BarPlot renders grouped bars: one group per x-tick label, one bar
// series per row of data. The y-axis is symmetric around zero with
// limit max(0.1, max|cell|) so small changes stay visible, labels are
// formatted as percentages, and the legend is suppressed when only a
// single series is drawn.
func BarPlot(data [][]float64, xtickLabels, barNames []string, xLabel, yLabel string) (*plot.Plot, error) {
	if len(data) == 0 || len(data) != len(barNames) {
		return nil, errors.SchemaMismatch("bar plot needs one name per data row: %d rows, %d names", len(data), len(barNames))
	}
	for i, row := range data {
		if len(row) != len(xtickLabels) {
			return nil, errors.SchemaMismatch("bar plot row %d has %d cells, want %d", i, len(row), len(xtickLabels))
		}
	}

	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	nBars := len(data)
	width := groupSlot * vg.Length(0.8) / vg.Length(nBars)
	for i, row := range data {
		bars, err := plotter.NewBarChart(plotter.Values(row), width)
		if err != nil {
			return nil, errors.Wrapf(err, "bar series %q", barNames[i])
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = width*vg.Length(i) - width*vg.Length(nBars)/2 + width/2
		p.Add(bars)
		if nBars > 1 {
			p.Legend.Add(barNames[i], bars)
		}
	}
	if nBars > 1 {
		p.Legend.Top = true
	}
	p.NominalX(xtickLabels...)

	limit := SymmetricLimit(data)
	p.Y.Min = -limit
	p.Y.Max = limit
	p.Y.Tick.Marker = percentTicks{}
	return p, nil
}

// SymmetricLimit returns the symmetric y-axis limit for a data matrix:
// at least 0.1, and at least the largest absolute cell value.
func SymmetricLimit(data [][]float64) float64 {
	limit := 0.1
	for _, row := range data {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			if a := math.Abs(v); a > limit {
				limit = a
			}
		}
	}
	return limit
}

// percentTicks formats the default tick positions as percentages.
type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		ticks[i].Label = fmt.Sprintf("%.2f%%", t.Value*100)
	}
	return ticks
}
