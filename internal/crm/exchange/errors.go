package exchange

import (
	"errors"
)

var (
	// ErrInvalidFormat is returned when an import or backup document is
	// malformed or misses the required customers and products fields.
	ErrInvalidFormat = errors.New("invalid data format, expected a crm export document")
)
