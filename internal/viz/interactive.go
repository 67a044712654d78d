package viz

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kstrelnikov/salesanalyzer/internal/models"
)

// Fixed names of the interactive HTML artifacts.
const (
	SunburstFile = "sales_sunburst.html"
	ScatterFile  = "sales_scatter.html"
)

type renderer interface {
	Render(w io.Writer) error
}

// RenderSunburst writes a standalone HTML sunburst of revenue by city and
// branch to path.
func RenderSunburst(table []models.Transaction, path string) error {
	byCity := make(map[string]map[string]float64)
	var cityOrder []string
	for _, t := range table {
		if t.City == "" || t.Branch == "" {
			continue
		}
		if _, ok := byCity[t.City]; !ok {
			byCity[t.City] = make(map[string]float64)
			cityOrder = append(cityOrder, t.City)
		}
		byCity[t.City][t.Branch] += t.Sales
	}

	data := make([]opts.SunBurstData, 0, len(cityOrder))
	for _, city := range cityOrder {
		branches := byCity[city]
		names := make([]string, 0, len(branches))
		for name := range branches {
			names = append(names, name)
		}
		sort.Strings(names)

		children := make([]*opts.SunBurstData, 0, len(names))
		for _, name := range names {
			children = append(children, &opts.SunBurstData{Name: name, Value: branches[name]})
		}
		data = append(data, opts.SunBurstData{Name: city, Children: children})
	}

	chart := charts.NewSunburst()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Sales Distribution by City and Branch"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sales Sunburst"}),
	)
	chart.AddSeries("sales", data)

	return renderHTML(chart, path)
}

// RenderScatter writes a standalone HTML scatter of quantity against unit
// price, one series per product line, to path.
func RenderScatter(table []models.Transaction, path string) error {
	byLine := make(map[string][]opts.ScatterData)
	var lineOrder []string
	for _, t := range table {
		if t.ProductLine == "" {
			continue
		}
		if _, ok := byLine[t.ProductLine]; !ok {
			lineOrder = append(lineOrder, t.ProductLine)
		}
		byLine[t.ProductLine] = append(byLine[t.ProductLine], opts.ScatterData{
			Value: []interface{}{t.UnitPrice, t.Quantity},
		})
	}

	chart := charts.NewScatter()
	chart.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Quantity vs Unit Price by Product Line"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sales Scatter"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Unit price", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Quantity", Type: "value"}),
	)
	for _, line := range lineOrder {
		chart.AddSeries(line, byLine[line])
	}

	return renderHTML(chart, path)
}

func renderHTML(chart renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrArtifact, err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return fmt.Errorf("%w: %v", models.ErrArtifact, err)
	}
	return nil
}
