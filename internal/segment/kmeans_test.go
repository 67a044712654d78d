package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kstrelnikov/salesanalyzer/internal/models"
)

// fixtureTable builds three visibly separated groups of transactions so the
// clustering has real structure to find.
func fixtureTable() []models.Transaction {
	day := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)
	var table []models.Transaction
	add := func(unitPrice float64, quantity int, sales, rating float64, n int) {
		for i := 0; i < n; i++ {
			table = append(table, models.Transaction{
				Branch:    "A",
				UnitPrice: unitPrice + float64(i)*0.1,
				Quantity:  quantity,
				Sales:     sales + float64(i),
				Date:      day.AddDate(0, 0, i),
				Rating:    rating,
				Segment:   -1,
			})
		}
	}
	add(10, 1, 10, 4, 10)   // small baskets, low rating
	add(50, 5, 250, 7, 10)  // mid baskets
	add(90, 10, 900, 9, 10) // large baskets, high rating
	return table
}

func TestClusterDeterministic(t *testing.T) {
	table := fixtureTable()

	first, firstSummaries, err := Cluster(table)
	require.NoError(t, err)
	second, secondSummaries, err := Cluster(table)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSummaries, secondSummaries)
}

func TestClusterAssignsEveryRecord(t *testing.T) {
	table := fixtureTable()

	labels, summaries, err := Cluster(table)
	require.NoError(t, err)
	require.Len(t, labels, len(table))

	sizes := 0
	for _, s := range summaries {
		sizes += s.Size
	}
	assert.Equal(t, len(table), sizes)

	for i, label := range labels {
		assert.GreaterOrEqual(t, label, 0, "record %d", i)
		assert.Less(t, label, ClusterCount, "record %d", i)
	}
}

func TestClusterSeparatesObviousGroups(t *testing.T) {
	table := fixtureTable()

	labels, _, err := Cluster(table)
	require.NoError(t, err)

	// records within each fixture block must share a label
	for block := 0; block < 3; block++ {
		want := labels[block*10]
		for i := block * 10; i < (block+1)*10; i++ {
			assert.Equal(t, want, labels[i], "record %d", i)
		}
	}
}

func TestClusterTooFewRecords(t *testing.T) {
	table := fixtureTable()[:ClusterCount-1]

	labels, summaries, err := Cluster(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrSegmentation)
	assert.Nil(t, labels)
	assert.Nil(t, summaries)
}

func TestClusterZeroVarianceFeature(t *testing.T) {
	table := fixtureTable()
	for i := range table {
		table[i].Rating = 7 // constant column must not break standardization
	}

	_, summaries, err := Cluster(table)
	require.NoError(t, err)
	for _, s := range summaries {
		if s.Size > 0 {
			assert.InDelta(t, 7.0, s.AvgRating, 1e-9)
		}
	}
}

func TestClusterDoesNotMutateTable(t *testing.T) {
	table := fixtureTable()

	_, _, err := Cluster(table)
	require.NoError(t, err)
	for i, tr := range table {
		assert.Equal(t, -1, tr.Segment, "record %d", i)
	}
}
