// Package product holds the singleton product and capital counters and
// derives revenue, remaining stock and profitability metrics from them.
package product

import (
	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/state"
)

// Aggregator implements the product counter operations on the domain state.
type Aggregator struct {
	state *state.State
}

// Input carries the user-supplied counter values.
type Input struct {
	Total   int     `form:"total" validate:"min=0"`
	Sold    int     `form:"sold" validate:"min=0"`
	Price   float64 `form:"price" validate:"min=0"`
	Capital float64 `form:"capital" validate:"min=0"`
}

// NewAggregator creates an Aggregator bound to the given domain state.
func NewAggregator(st *state.State) *Aggregator {
	return &Aggregator{state: st}
}

// Update replaces the singleton counters atomically, all four fields
// together. Negative values and sold > total are rejected without
// touching the current state.
func (a *Aggregator) Update(total, sold int, price, capital float64) error {
	if total < 0 || sold < 0 || price < 0 || capital < 0 {
		return ErrNegativeValue
	}

	if sold > total {
		return ErrSoldExceedsTotal
	}

	return a.state.ReplaceProducts(crm.ProductCounters{
		Total:   total,
		Sold:    sold,
		Price:   price,
		Capital: capital,
	})
}

// Counters returns the current counter values.
func (a *Aggregator) Counters() crm.ProductCounters {
	return a.state.Products()
}

// Revenue derives sold × price, recomputed on every call.
func (a *Aggregator) Revenue() float64 {
	p := a.state.Products()

	return float64(p.Sold) * p.Price
}

// Remaining derives the non-negative remaining stock.
func (a *Aggregator) Remaining() int {
	p := a.state.Products()

	if remaining := p.Total - p.Sold; remaining > 0 {
		return remaining
	}

	return 0
}

// Profit derives revenue minus invested capital.
func (a *Aggregator) Profit() float64 {
	p := a.state.Products()

	return float64(p.Sold)*p.Price - p.Capital
}

// ROI derives the return on investment in percent. Returns 0 when no
// capital is invested to avoid division by zero.
func (a *Aggregator) ROI() float64 {
	p := a.state.Products()

	if p.Capital <= 0 {
		return 0
	}

	return (float64(p.Sold)*p.Price - p.Capital) / p.Capital * 100
}
