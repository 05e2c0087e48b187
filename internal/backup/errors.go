package backup

import (
	"errors"
)

var (
	// ErrUnknownInterval is returned when the persisted backup interval
	// is not one of the supported values.
	ErrUnknownInterval = errors.New("unknown backup interval")
)
