package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kstrelnikov/salesanalyzer/internal/segment"
	"github.com/kstrelnikov/salesanalyzer/internal/stats"
)

func fixtureSummary() *stats.Summary {
	return &stats.Summary{
		Count:          3,
		TotalRevenue:   60,
		AvgTransaction: 20,
		AvgRating:      7.0,
		From:           time.Date(2019, time.January, 5, 0, 0, 0, 0, time.UTC),
		To:             time.Date(2019, time.March, 30, 0, 0, 0, 0, time.UTC),
		ByBranch: []stats.GroupStat{
			{Key: "A", Count: 2, Sum: 30, Mean: 15},
			{Key: "B", Count: 1, Sum: 30, Mean: 30},
		},
		ByProductLine: []stats.GroupStat{
			{Key: "Health and beauty", Count: 3, Sum: 60, Mean: 20},
		},
		ByPayment:      []stats.GroupStat{{Key: "Cash", Count: 3, Sum: 60, Mean: 20}},
		ByGender:       []stats.GroupStat{{Key: "Female", Count: 3, Sum: 60, Mean: 20}},
		ByCustomerType: []stats.GroupStat{{Key: "Member", Count: 3, Sum: 60, Mean: 20}},
		TopBranch:      "A",
		TopProductLine: "Health and beauty",
		PeakWeekday:    "Saturday",
	}
}

func fixtureClusters() []segment.ClusterSummary {
	return []segment.ClusterSummary{
		{ID: 0, Size: 2, AvgUnitPrice: 10, AvgQuantity: 2, AvgSales: 15, AvgRating: 6.5},
		{ID: 1, Size: 1, AvgUnitPrice: 15, AvgQuantity: 1, AvgSales: 30, AvgRating: 8},
		{ID: 2, Size: 0},
	}
}

func TestRenderDeterministic(t *testing.T) {
	first := Render(fixtureSummary(), fixtureClusters())
	second := Render(fixtureSummary(), fixtureClusters())
	assert.Equal(t, first, second)
}

func TestRenderContents(t *testing.T) {
	text := Render(fixtureSummary(), fixtureClusters())

	assert.Contains(t, text, "SUPERMARKET SALES ANALYSIS REPORT")
	assert.Contains(t, text, "Total Revenue:       $60.00")
	assert.Contains(t, text, "Total Transactions:  3")
	assert.Contains(t, text, "Average Rating:      7.0/10")
	assert.Contains(t, text, "Analysis Period:     January 2019 - March 2019")
	assert.Contains(t, text, "Best performing branch:       A")
	assert.Contains(t, text, "Peak sales day:               Saturday")
	assert.Contains(t, text, "CUSTOMER SEGMENTATION (k-means, 3 segments)")
}

func TestWriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("stale report"), 0o644))

	require.NoError(t, Write(dir, fixtureSummary(), fixtureClusters()))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Render(fixtureSummary(), fixtureClusters()), string(got))
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "$0.00", money(0))
	assert.Equal(t, "$20.00", money(20))
	assert.Equal(t, "$1,234,567.89", money(1234567.891))
	assert.Equal(t, "-$5.50", money(-5.5))
	assert.Equal(t, "$1,000.00", money(999.999))
}
