package viz

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/kstrelnikov/salesanalyzer/internal/models"
)

// CorrFeatures names the numeric columns entering the correlation matrix,
// in matrix order.
var CorrFeatures = []string{"Unit price", "Quantity", "Sales", "Rating"}

// CorrelationMatrix returns pairwise Pearson correlations over the numeric
// columns. A cell is NaN when either column has zero variance; callers decide
// how to present undefined correlations.
func CorrelationMatrix(table []models.Transaction) [][]float64 {
	cols := numericColumns(table)

	m := make([][]float64, len(cols))
	for i := range cols {
		m[i] = make([]float64, len(cols))
		for j := range cols {
			m[i][j] = stat.Correlation(cols[i], cols[j], nil)
		}
	}
	return m
}

func numericColumns(table []models.Transaction) [][]float64 {
	cols := make([][]float64, len(CorrFeatures))
	for i := range cols {
		cols[i] = make([]float64, len(table))
	}
	for i, t := range table {
		cols[0][i] = t.UnitPrice
		cols[1][i] = float64(t.Quantity)
		cols[2][i] = t.Sales
		cols[3][i] = t.Rating
	}
	return cols
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Undefined cells
// render as 0.
type corrGrid struct {
	m [][]float64
}

func (g corrGrid) Dims() (c, r int) { return len(g.m), len(g.m) }

func (g corrGrid) Z(c, r int) float64 {
	v := g.m[r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g corrGrid) X(c int) float64 { return float64(c) }

func (g corrGrid) Y(r int) float64 { return float64(r) }
