package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kstrelnikov/salesanalyzer/internal/models"
)

func tx(branch string, sales float64, date time.Time) models.Transaction {
	return models.Transaction{
		Branch:       branch,
		City:         "Yangon",
		CustomerType: "Member",
		Gender:       "Female",
		ProductLine:  "Health and beauty",
		UnitPrice:    sales / 2,
		Quantity:     2,
		Sales:        sales,
		Date:         date,
		Payment:      "Cash",
		Rating:       8,
		Segment:      -1,
	}
}

func TestThreeRowScenario(t *testing.T) {
	day := time.Date(2019, time.January, 5, 13, 0, 0, 0, time.UTC)
	table := []models.Transaction{
		tx("A", 10, day),
		tx("A", 20, day),
		tx("B", 30, day),
	}

	s := Summarize(table)

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 60.0, s.TotalRevenue, 1e-9)
	assert.InDelta(t, 20.0, s.AvgTransaction, 1e-9)

	require.Len(t, s.ByBranch, 2)
	assert.Equal(t, "A", s.ByBranch[0].Key)
	assert.InDelta(t, 30.0, s.ByBranch[0].Sum, 1e-9)
	assert.Equal(t, 2, s.ByBranch[0].Count)
	assert.Equal(t, "B", s.ByBranch[1].Key)
	assert.InDelta(t, 30.0, s.ByBranch[1].Sum, 1e-9)
}

func TestGroupedSumsPartitionTotal(t *testing.T) {
	day := time.Date(2019, time.February, 1, 9, 0, 0, 0, time.UTC)
	table := []models.Transaction{}
	branches := []string{"A", "B", "C"}
	payments := []string{"Cash", "Ewallet", "Credit card"}
	for i := 0; i < 30; i++ {
		r := tx(branches[i%3], float64(10+i*7), day.AddDate(0, 0, i))
		r.Payment = payments[i%3]
		table = append(table, r)
	}

	s := Summarize(table)

	for name, groups := range map[string][]GroupStat{
		"branch":        s.ByBranch,
		"product line":  s.ByProductLine,
		"payment":       s.ByPayment,
		"gender":        s.ByGender,
		"customer type": s.ByCustomerType,
	} {
		var sum float64
		var count int
		for _, g := range groups {
			sum += g.Sum
			count += g.Count
		}
		assert.InDelta(t, s.TotalRevenue, sum, 1e-9, "dimension %s", name)
		assert.Equal(t, s.Count, count, "dimension %s", name)
	}
}

func TestBlankGroupKeysAreDropped(t *testing.T) {
	day := time.Date(2019, time.March, 1, 9, 0, 0, 0, time.UTC)
	table := []models.Transaction{
		tx("A", 10, day),
		tx("", 20, day),
	}

	s := Summarize(table)

	// the blank-branch record contributes to the total but to no group
	assert.InDelta(t, 30.0, s.TotalRevenue, 1e-9)
	require.Len(t, s.ByBranch, 1)
	assert.Equal(t, "A", s.ByBranch[0].Key)
	assert.InDelta(t, 10.0, s.ByBranch[0].Sum, 1e-9)
}

func TestMonthsSortChronologically(t *testing.T) {
	table := []models.Transaction{
		tx("A", 10, time.Date(2019, time.March, 2, 0, 0, 0, 0, time.UTC)),
		tx("A", 20, time.Date(2019, time.January, 15, 0, 0, 0, 0, time.UTC)),
		tx("A", 30, time.Date(2019, time.February, 7, 0, 0, 0, 0, time.UTC)),
	}

	s := Summarize(table)

	require.Len(t, s.ByMonth, 3)
	assert.Equal(t, "January", s.ByMonth[0].Key)
	assert.Equal(t, "February", s.ByMonth[1].Key)
	assert.Equal(t, "March", s.ByMonth[2].Key)
	assert.Equal(t, time.Date(2019, time.January, 15, 0, 0, 0, 0, time.UTC), s.From)
	assert.Equal(t, time.Date(2019, time.March, 2, 0, 0, 0, 0, time.UTC), s.To)
}

func TestProductLinesSortByRevenue(t *testing.T) {
	day := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	small := tx("A", 10, day)
	small.ProductLine = "Sports and travel"
	big := tx("A", 500, day)
	big.ProductLine = "Food and beverages"

	s := Summarize([]models.Transaction{small, big})

	require.Len(t, s.ByProductLine, 2)
	assert.Equal(t, "Food and beverages", s.ByProductLine[0].Key)
	assert.Equal(t, "Food and beverages", s.TopProductLine)
}

func TestInsights(t *testing.T) {
	monday := time.Date(2019, time.January, 7, 12, 0, 0, 0, time.UTC)
	saturday := time.Date(2019, time.January, 12, 12, 0, 0, 0, time.UTC)
	table := []models.Transaction{
		tx("A", 100, monday),
		tx("B", 40, saturday),
		tx("B", 30, saturday),
	}

	s := Summarize(table)

	assert.Equal(t, "A", s.TopBranch)
	assert.Equal(t, "Monday", s.PeakWeekday)
	require.Len(t, s.ByWeekday, 2)
	assert.Equal(t, "Monday", s.ByWeekday[0].Key)
	assert.Equal(t, "Saturday", s.ByWeekday[1].Key)
}

func TestSummarizeEmptyTable(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.Zero(t, s.TotalRevenue)
	assert.Empty(t, s.ByBranch)
}
