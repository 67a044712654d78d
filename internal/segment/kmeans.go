// Package segment groups transactions into customer segments with k-means
// over standardized numeric features. The cluster count and the random seed
// are fixed so repeated runs over the same input produce identical
// assignments.
package segment

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/kstrelnikov/salesanalyzer/internal/models"
)

const (
	// ClusterCount is the fixed k. Not inferred from the data.
	ClusterCount = 3

	randomSeed    = 42
	maxIterations = 100
)

// FeatureNames lists the numeric features entering the clustering, in the
// order of the feature vector.
var FeatureNames = []string{"Unit price", "Quantity", "Sales", "Rating"}

// ClusterSummary describes one segment: its size and the per-cluster means of
// the raw (unstandardized) features.
type ClusterSummary struct {
	ID           int
	Size         int
	AvgUnitPrice float64
	AvgQuantity  float64
	AvgSales     float64
	AvgRating    float64
}

// Cluster assigns every transaction to one of ClusterCount segments and
// summarizes each segment. The input table is not mutated; the caller decides
// whether to attach the returned labels. Fails with ErrSegmentation when the
// table holds fewer records than clusters.
func Cluster(table []models.Transaction) ([]int, []ClusterSummary, error) {
	if len(table) < ClusterCount {
		return nil, nil, fmt.Errorf("%w: %d records cannot fill %d clusters",
			models.ErrSegmentation, len(table), ClusterCount)
	}

	features := featureMatrix(table)
	standardize(features)

	labels := lloyd(features, ClusterCount, randomSeed)
	return labels, summarize(table, labels), nil
}

// featureMatrix extracts one row of numeric features per transaction.
func featureMatrix(table []models.Transaction) [][]float64 {
	m := make([][]float64, len(table))
	for i, t := range table {
		m[i] = []float64{t.UnitPrice, float64(t.Quantity), t.Sales, t.Rating}
	}
	return m
}

// standardize rescales each feature column to zero mean and unit variance in
// place. A zero-variance column becomes all zeros instead of dividing by
// zero.
func standardize(m [][]float64) {
	if len(m) == 0 {
		return
	}
	col := make([]float64, len(m))
	for j := range m[0] {
		for i := range m {
			col[i] = m[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		for i := range m {
			if std == 0 {
				m[i][j] = 0
			} else {
				m[i][j] = (m[i][j] - mean) / std
			}
		}
	}
}

// lloyd runs standard k-means iterations with a seeded source and k-means++
// initialization, so the whole procedure is deterministic for a given input.
func lloyd(points [][]float64, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	dims := len(points[0])

	centroids := seedCentroids(points, k, rng)

	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, p := range points {
			best, _ := nearest(p, centroids)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, p := range points {
			c := labels[i]
			counts[c]++
			for j, v := range p {
				sums[c][j] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Re-seed an emptied cluster from a random record.
				centroids[c] = clone(points[rng.Intn(len(points))])
				continue
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}

	return labels
}

// seedCentroids picks initial centroids k-means++ style: the first uniformly,
// each next with probability proportional to the squared distance from the
// centroids chosen so far.
func seedCentroids(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, clone(points[rng.Intn(len(points))]))

	dists := make([]float64, len(points))
	for len(centroids) < k {
		var total float64
		for i, p := range points {
			_, d := nearest(p, centroids)
			dists[i] = d
			total += d
		}

		next := len(points) - 1
		if total == 0 {
			// all remaining points coincide with a centroid
			next = rng.Intn(len(points))
		} else {
			target := rng.Float64() * total
			var cum float64
			for i, d := range dists {
				cum += d
				if cum >= target {
					next = i
					break
				}
			}
		}
		centroids = append(centroids, clone(points[next]))
	}
	return centroids
}

// nearest returns the index of the closest centroid by squared Euclidean
// distance, and that distance. Ties resolve to the lowest index.
func nearest(p []float64, centroids [][]float64) (int, float64) {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		var d float64
		for j, v := range p {
			diff := v - centroid[j]
			d += diff * diff
		}
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, bestDist
}

func clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}

func summarize(table []models.Transaction, labels []int) []ClusterSummary {
	summaries := make([]ClusterSummary, ClusterCount)
	for c := range summaries {
		summaries[c].ID = c
	}
	for i, t := range table {
		s := &summaries[labels[i]]
		s.Size++
		s.AvgUnitPrice += t.UnitPrice
		s.AvgQuantity += float64(t.Quantity)
		s.AvgSales += t.Sales
		s.AvgRating += t.Rating
	}
	for c := range summaries {
		if summaries[c].Size == 0 {
			continue
		}
		n := float64(summaries[c].Size)
		summaries[c].AvgUnitPrice /= n
		summaries[c].AvgQuantity /= n
		summaries[c].AvgSales /= n
		summaries[c].AvgRating /= n
	}
	return summaries
}
