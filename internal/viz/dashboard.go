// Package viz renders the analysis artifacts: a nine-panel static dashboard
// and two interactive HTML charts. Existing files at the target paths are
// overwritten without warning.
package viz

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/kstrelnikov/salesanalyzer/internal/models"
	"github.com/kstrelnikov/salesanalyzer/internal/stats"
)

// DashboardFile is the fixed name of the static dashboard image.
const DashboardFile = "supermarket_analysis_dashboard.png"

// RenderDashboard draws the 3x3 panel grid into a single PNG at path.
func RenderDashboard(table []models.Transaction, sum *stats.Summary, path string) error {
	salesVals := make(plotter.Values, len(table))
	ratingVals := make(plotter.Values, len(table))
	for i, t := range table {
		salesVals[i] = t.Sales
		ratingVals[i] = t.Rating
	}

	revenue := func(g stats.GroupStat) float64 { return g.Sum }
	count := func(g stats.GroupStat) float64 { return float64(g.Count) }

	type panel struct {
		build func() (*plot.Plot, error)
	}
	panels := []panel{
		{func() (*plot.Plot, error) { return barPanel("Total Sales by Branch", sum.ByBranch, revenue, 0) }},
		{func() (*plot.Plot, error) { return barPanel("Sales by Product Line", sum.ByProductLine, revenue, 1) }},
		{func() (*plot.Plot, error) { return barPanel("Customer Types", sum.ByCustomerType, count, 2) }},
		{func() (*plot.Plot, error) { return barPanel("Gender Split", sum.ByGender, count, 3) }},
		{func() (*plot.Plot, error) { return barPanel("Payment Methods", sum.ByPayment, count, 4) }},
		{func() (*plot.Plot, error) { return histPanel("Sales Distribution", salesVals, 30, 5) }},
		{func() (*plot.Plot, error) { return histPanel("Rating Distribution", ratingVals, 20, 6) }},
		{func() (*plot.Plot, error) { return trendPanel("Monthly Sales Trend", sum.ByMonth) }},
		{func() (*plot.Plot, error) { return heatmapPanel("Correlation Matrix", CorrelationMatrix(table)) }},
	}

	const rows, cols = 3, 3
	plots := make([][]*plot.Plot, rows)
	for r := 0; r < rows; r++ {
		plots[r] = make([]*plot.Plot, cols)
		for c := 0; c < cols; c++ {
			p, err := panels[r*cols+c].build()
			if err != nil {
				return fmt.Errorf("dashboard panel %d: %w", r*cols+c+1, err)
			}
			plots[r][c] = p
		}
	}

	img := vgimg.NewWith(vgimg.UseWH(36*vg.Centimeter, 27*vg.Centimeter))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			plots[r][c].Draw(canvases[r][c])
		}
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrArtifact, err)
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", models.ErrArtifact, err)
	}
	return nil
}

func barPanel(title string, groups []stats.GroupStat, value func(stats.GroupStat) float64, colorIdx int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title

	vals := make(plotter.Values, len(groups))
	names := make([]string, len(groups))
	for i, g := range groups {
		vals[i] = value(g)
		names[i] = g.Key
	}

	bars, err := plotter.NewBarChart(vals, vg.Points(24))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(colorIdx)

	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

func histPanel(title string, vals plotter.Values, bins int, colorIdx int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title

	if len(vals) == 0 {
		return p, nil
	}
	min, max := vals[0], vals[0]
	for _, v := range vals {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		// a constant column leaves nothing to bin over; show a single bar
		bars, err := plotter.NewBarChart(plotter.Values{float64(len(vals))}, vg.Points(24))
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(colorIdx)
		p.Add(bars)
		p.NominalX(fmt.Sprintf("%.2f", min))
		return p, nil
	}

	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = plotutil.Color(colorIdx)

	p.Add(h)
	return p, nil
}

func trendPanel(title string, months []stats.GroupStat) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Revenue"

	pts := make(plotter.XYs, len(months))
	ticks := make([]plot.Tick, len(months))
	for i, m := range months {
		pts[i].X = float64(i)
		pts[i].Y = m.Sum
		label := m.Key
		if len(label) > 3 {
			label = label[:3]
		}
		ticks[i] = plot.Tick{Value: float64(i), Label: label}
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(7)
	points.Color = plotutil.Color(7)

	p.Add(line, points)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	return p, nil
}

func heatmapPanel(title string, matrix [][]float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title

	hm := plotter.NewHeatMap(corrGrid{m: matrix}, palette.Heat(12, 1))
	// Correlations live in [-1, 1]; pinning the range keeps the palette
	// stable even when the matrix degenerates.
	hm.Min, hm.Max = -1, 1
	p.Add(hm)

	ticks := make([]plot.Tick, len(CorrFeatures))
	for i, name := range CorrFeatures {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	return p, nil
}
