package store

import (
	"errors"
)

var (
	// ErrBlobNotFound is returned when a named blob does not exist.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrNameEmpty is returned when a blob name is empty.
	ErrNameEmpty = errors.New("blob name cannot be empty")

	// ErrPathEmpty is returned when the store file path is empty.
	ErrPathEmpty = errors.New("store path cannot be empty")

	// ErrStoreNil is returned when the store handle is nil.
	ErrStoreNil = errors.New("store is nil")
)
