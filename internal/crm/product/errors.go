package product

import (
	"errors"
)

var (
	// ErrNegativeValue is returned when any counter value is negative.
	ErrNegativeValue = errors.New("counter values must not be negative")

	// ErrSoldExceedsTotal is returned when sold exceeds total products.
	ErrSoldExceedsTotal = errors.New("products sold cannot exceed total products")
)
