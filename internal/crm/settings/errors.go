package settings

import (
	"errors"
)

var (
	// ErrUnknownSection is returned when a patch addresses a section that does not exist.
	ErrUnknownSection = errors.New("unknown settings section")

	// ErrInvalidSection is returned when a section value cannot be decoded.
	ErrInvalidSection = errors.New("invalid settings section value")

	// ErrEmptyCategory is returned when a category name is empty.
	ErrEmptyCategory = errors.New("category name cannot be empty")

	// ErrDuplicateCategory is returned when the category already exists.
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrCategoryNotFound is returned when the named category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)
