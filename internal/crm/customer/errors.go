package customer

import (
	"errors"
)

var (
	// ErrRequiredFields is returned when name, phone or address is empty after trimming.
	ErrRequiredFields = errors.New("name, phone and address are required")

	// ErrDuplicatePhone is returned when another customer already has the same phone number.
	ErrDuplicatePhone = errors.New("a customer with this phone number already exists")

	// ErrNotFound is returned when no customer with the given id exists.
	ErrNotFound = errors.New("customer not found")

	// ErrEmptyQuery is returned when the search term is empty.
	ErrEmptyQuery = errors.New("search term cannot be empty")

	// ErrUnknownSearchField is returned when the search field is neither name nor phone.
	ErrUnknownSearchField = errors.New("search field must be name or phone")

	// ErrInvalidCleanupDays is returned when the cleanup window is not positive.
	ErrInvalidCleanupDays = errors.New("cleanup days must be positive")
)
