// Package crm contains the domain model definitions shared by the
// repositories, the reporting engine and the web layer.
package crm

import (
	"time"
)

const (
	// EmailNotAvailable is the sentinel stored when a customer has no email.
	EmailNotAvailable = "N/A"

	// DefaultCategory is assumed for customers without a category.
	DefaultCategory = "Regular"
)

// Customer is one client record. The collection is an insertion-ordered
// sequence; order is preserved and displayed as-is.
type Customer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Email        string     `json:"email"`
	Category     string     `json:"category"`
	Notes        string     `json:"notes"`
	DateAdded    time.Time  `json:"dateAdded"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

// ProductCounters is the singleton product and capital aggregate.
// Revenue, remaining stock, profit and ROI are derived on demand and
// never stored.
type ProductCounters struct {
	Total   int     `json:"total"`
	Sold    int     `json:"sold"`
	Price   float64 `json:"price"`
	Capital float64 `json:"capital"`
}
