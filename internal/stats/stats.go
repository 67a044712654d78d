// Package stats computes the descriptive statistics the report and the
// charts are built from. Every function is pure: the transaction table is
// never mutated.
package stats

import (
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/kstrelnikov/salesanalyzer/internal/models"
)

// GroupStat is one row of a grouped aggregate.
type GroupStat struct {
	Key   string
	Count int
	Sum   float64
	Mean  float64
}

// Summary holds every descriptive metric computed over the table.
type Summary struct {
	Count          int
	TotalRevenue   float64
	AvgTransaction float64
	AvgRating      float64
	From, To       time.Time

	ByBranch       []GroupStat
	ByProductLine  []GroupStat // sorted by revenue, highest first
	ByPayment      []GroupStat
	ByGender       []GroupStat
	ByCustomerType []GroupStat
	ByCity         []GroupStat
	ByMonth        []GroupStat // chronological
	ByWeekday      []GroupStat // Monday first

	TopBranch      string
	TopProductLine string
	PeakWeekday    string
}

// Summarize computes the full descriptive summary of the table.
func Summarize(table []models.Transaction) *Summary {
	s := &Summary{Count: len(table)}
	if len(table) == 0 {
		return s
	}

	sales := make([]float64, len(table))
	ratings := make([]float64, len(table))
	s.From, s.To = table[0].Date, table[0].Date
	for i, t := range table {
		sales[i] = t.Sales
		ratings[i] = t.Rating
		s.TotalRevenue += t.Sales
		if t.Date.Before(s.From) {
			s.From = t.Date
		}
		if t.Date.After(s.To) {
			s.To = t.Date
		}
	}
	s.AvgTransaction = stat.Mean(sales, nil)
	s.AvgRating = stat.Mean(ratings, nil)

	s.ByBranch = sortAlpha(GroupRevenue(table, func(t models.Transaction) string { return t.Branch }))
	s.ByProductLine = sortByRevenue(GroupRevenue(table, func(t models.Transaction) string { return t.ProductLine }))
	s.ByPayment = sortAlpha(GroupRevenue(table, func(t models.Transaction) string { return t.Payment }))
	s.ByGender = sortAlpha(GroupRevenue(table, func(t models.Transaction) string { return t.Gender }))
	s.ByCustomerType = sortAlpha(GroupRevenue(table, func(t models.Transaction) string { return t.CustomerType }))
	s.ByCity = sortAlpha(GroupRevenue(table, func(t models.Transaction) string { return t.City }))
	s.ByMonth = sortMonths(GroupRevenue(table, models.Transaction.Month))
	s.ByWeekday = sortWeekdays(GroupRevenue(table, models.Transaction.Weekday))

	s.TopBranch = topByRevenue(s.ByBranch)
	s.TopProductLine = topByRevenue(s.ByProductLine)
	s.PeakWeekday = topByRevenue(s.ByWeekday)

	return s
}

// GroupRevenue aggregates revenue and transaction count per value of the
// given dimension, in first-seen order. Records with a blank key are dropped
// rather than bucketed as "unknown".
func GroupRevenue(table []models.Transaction, key func(models.Transaction) string) []GroupStat {
	grouped := make(map[string]int)
	var groups []GroupStat

	for _, t := range table {
		k := key(t)
		if k == "" {
			continue
		}
		i, ok := grouped[k]
		if !ok {
			i = len(groups)
			grouped[k] = i
			groups = append(groups, GroupStat{Key: k})
		}
		groups[i].Count++
		groups[i].Sum += t.Sales
	}

	for i := range groups {
		groups[i].Mean = groups[i].Sum / float64(groups[i].Count)
	}
	return groups
}

func sortAlpha(groups []GroupStat) []GroupStat {
	sort.Slice(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].Key) < strings.ToLower(groups[j].Key)
	})
	return groups
}

func sortByRevenue(groups []GroupStat) []GroupStat {
	sort.Slice(groups, func(i, j int) bool { return groups[i].Sum > groups[j].Sum })
	return groups
}

func sortMonths(groups []GroupStat) []GroupStat {
	sort.Slice(groups, func(i, j int) bool { return monthOrder(groups[i].Key) < monthOrder(groups[j].Key) })
	return groups
}

func sortWeekdays(groups []GroupStat) []GroupStat {
	sort.Slice(groups, func(i, j int) bool { return weekdayOrder(groups[i].Key) < weekdayOrder(groups[j].Key) })
	return groups
}

func monthOrder(name string) int {
	if t, err := time.Parse("January", name); err == nil {
		return int(t.Month())
	}
	return 13
}

func weekdayOrder(name string) int {
	// Monday first, as on retail calendars
	order := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	for i, d := range order {
		if d == name {
			return i
		}
	}
	return len(order)
}

func topByRevenue(groups []GroupStat) string {
	var best string
	var bestSum float64
	for _, g := range groups {
		if best == "" || g.Sum > bestSum {
			best = g.Key
			bestSum = g.Sum
		}
	}
	return best
}
