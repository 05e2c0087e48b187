// Package report derives summary statistics, category breakdowns, growth
// rates and chart-ready series from the domain state. All functions are
// pure over a snapshot of (customers, counters, clock); nothing here is
// persisted.
package report

import (
	"math/rand"
	"time"

	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/state"
)

const (
	monthsInSeries = 6
	growthWindow   = 30 // days
	monthLabel     = "Jan 06"
)

// QuickStats is the headline statistics block.
type QuickStats struct {
	TotalRevenue     float64
	ProfitMargin     float64
	AvgCustomerValue float64
	GrowthRate       float64
}

// CategoryStats is one row of the category breakdown. Revenue is an
// assumed-equal share of total revenue per customer, not attributed from
// individual sales; no per-sale history exists to derive one.
type CategoryStats struct {
	Category string
	Count    int
	Revenue  float64
	AvgValue float64
}

// FinancialSummary is the financial report block.
type FinancialSummary struct {
	Capital float64
	Revenue float64
	Profit  float64
	ROI     float64
}

// SeriesPoint is one month of a trailing series.
type SeriesPoint struct {
	Month string
	Value float64
}

// SystemInfo reports record counts and stored blob sizes.
type SystemInfo struct {
	GeneratedAt    time.Time
	TotalRecords   int
	DataSizeKB     float64
	CustomerBlobKB float64
}

// Engine computes reports over the domain state. Now and Rand are
// exported so tests can inject a fixed clock and a deterministic jitter
// source.
type Engine struct {
	state *state.State

	Now  func() time.Time
	Rand *rand.Rand
}

// New creates a reporting engine bound to the given domain state.
func New(st *state.State) *Engine {
	return &Engine{
		state: st,
		Now:   time.Now,
		Rand:  rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // illustrative jitter, not crypto
	}
}

// QuickStats derives the headline numbers from the current snapshot.
func (e *Engine) QuickStats() QuickStats {
	products := e.state.Products()
	customers := e.state.Customers()

	revenue := float64(products.Sold) * products.Price

	var margin float64
	if products.Capital > 0 {
		margin = (revenue - products.Capital) / products.Capital * 100
	}

	var avgValue float64
	if len(customers) > 0 {
		avgValue = revenue / float64(len(customers))
	}

	return QuickStats{
		TotalRevenue:     revenue,
		ProfitMargin:     margin,
		AvgCustomerValue: avgValue,
		GrowthRate:       e.growthRate(customers),
	}
}

// GrowthRate compares customers added within the trailing 30 days against
// all earlier customers. This is not a true month-over-month rate; it
// skews upward as the customer base ages and is reproduced as designed.
func (e *Engine) GrowthRate() float64 {
	return e.growthRate(e.state.Customers())
}

func (e *Engine) growthRate(customers []crm.Customer) float64 {
	cutoff := e.Now().AddDate(0, 0, -growthWindow)

	var recent int

	for i := range customers {
		if customers[i].DateAdded.After(cutoff) {
			recent++
		}
	}

	previous := len(customers) - recent

	if previous == 0 {
		if recent > 0 {
			return 100
		}

		return 0
	}

	return float64(recent-previous) / float64(previous) * 100
}

// CategoryBreakdown groups customers by category, defaulting an absent
// category to Regular. Rows appear in first-seen order.
func (e *Engine) CategoryBreakdown() []CategoryStats {
	customers := e.state.Customers()
	if len(customers) == 0 {
		return nil
	}

	products := e.state.Products()
	revenuePerCustomer := float64(products.Sold) * products.Price / float64(len(customers))

	var (
		order []string
		count = make(map[string]int)
	)

	for i := range customers {
		category := customers[i].Category
		if category == "" {
			category = crm.DefaultCategory
		}

		if _, seen := count[category]; !seen {
			order = append(order, category)
		}

		count[category]++
	}

	breakdown := make([]CategoryStats, 0, len(order))

	for _, category := range order {
		breakdown = append(breakdown, CategoryStats{
			Category: category,
			Count:    count[category],
			Revenue:  float64(count[category]) * revenuePerCustomer,
			AvgValue: revenuePerCustomer,
		})
	}

	return breakdown
}

// FinancialSummary derives the financial report block.
func (e *Engine) FinancialSummary() FinancialSummary {
	products := e.state.Products()

	revenue := float64(products.Sold) * products.Price
	profit := revenue - products.Capital

	var roi float64
	if products.Capital > 0 {
		roi = profit / products.Capital * 100
	}

	return FinancialSummary{
		Capital: products.Capital,
		Revenue: revenue,
		Profit:  profit,
		ROI:     roi,
	}
}

// MonthlyGrowthSeries counts customers added in each of the trailing six
// calendar months including the current one. Every month is present even
// when zero.
func (e *Engine) MonthlyGrowthSeries() []SeriesPoint {
	customers := e.state.Customers()
	now := e.Now()

	series := make([]SeriesPoint, 0, monthsInSeries)
	index := make(map[string]int, monthsInSeries)

	for i := monthsInSeries - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		label := month.Format(monthLabel)
		index[label] = len(series)
		series = append(series, SeriesPoint{Month: label})
	}

	for i := range customers {
		label := customers[i].DateAdded.Format(monthLabel)
		if position, ok := index[label]; ok {
			series[position].Value++
		}
	}

	return series
}

// MonthlySalesSeries synthesizes six months of sales figures by spreading
// total revenue evenly with ±20% jitter per month. Explicitly
// illustrative; there is no per-sale history to derive a real series.
func (e *Engine) MonthlySalesSeries() []SeriesPoint {
	products := e.state.Products()
	now := e.Now()

	baseSales := float64(products.Sold) / monthsInSeries
	series := make([]SeriesPoint, 0, monthsInSeries)

	for i := monthsInSeries - 1; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)

		variation := (e.Rand.Float64() - 0.5) * 0.4 //nolint: mnd
		value := baseSales * (1 + variation) * products.Price

		if value < 0 {
			value = 0
		}

		series = append(series, SeriesPoint{
			Month: month.Format(monthLabel),
			Value: value,
		})
	}

	return series
}

// SystemInfo reports the current record counts and stored blob sizes.
func (e *Engine) SystemInfo() SystemInfo {
	customersSize, productsSize, _ := e.state.BlobSizes()

	records := e.state.CustomerCount()
	if productsSize > 0 {
		records++ // the product counters record
	}

	return SystemInfo{
		GeneratedAt:    e.Now(),
		TotalRecords:   records,
		DataSizeKB:     float64(customersSize+productsSize) / 1024, //nolint: mnd
		CustomerBlobKB: float64(customersSize) / 1024,              //nolint: mnd
	}
}
