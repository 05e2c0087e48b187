// Package store implements the local persistent blob store. Every logical
// entity (customers, products, settings) is one named JSON blob in a single
// SQLite file, read and written whole.
package store

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// BlobCustomers is the blob name for the customer collection.
	BlobCustomers = "crm_customers"

	// BlobProducts is the blob name for the product counters.
	BlobProducts = "crm_products"

	// BlobSettings is the blob name for the settings document.
	BlobSettings = "crm_settings"

	nameQueryPattern = "name = ?"
)

// Blob represents one named serialized document.
type Blob struct {
	ID    uint64 `gorm:"primaryKey"`
	Name  string `gorm:"unique"`
	Value []byte `gorm:"type:blob"`
}

// Store wraps the SQLite backed key-value blob table.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the blob store at the given file path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, ErrPathEmpty
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil { //nolint: mnd
			return nil, err
		}
	}

	return open(path)
}

// OpenMemory opens an in-memory blob store, used by tests.
func OpenMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&Blob{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Get retrieves a blob value by name.
func (s *Store) Get(name string) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, ErrStoreNil
	}

	if name == "" {
		return nil, ErrNameEmpty
	}

	var blob Blob

	result := s.db.Where(nameQueryPattern, name).First(&blob)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBlobNotFound
		}

		return nil, result.Error
	}

	return blob.Value, nil
}

// Set creates or replaces a blob by name (upsert operation).
func (s *Store) Set(name string, value []byte) error {
	if s == nil || s.db == nil {
		return ErrStoreNil
	}

	if name == "" {
		return ErrNameEmpty
	}

	var blob Blob

	result := s.db.Where(nameQueryPattern, name).First(&blob)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return s.db.Create(&Blob{Name: name, Value: value}).Error
	}

	if result.Error != nil {
		return result.Error
	}

	blob.Value = value

	return s.db.Save(&blob).Error
}

// Delete removes a blob by name.
func (s *Store) Delete(name string) error {
	if s == nil || s.db == nil {
		return ErrStoreNil
	}

	if name == "" {
		return ErrNameEmpty
	}

	result := s.db.Where(nameQueryPattern, name).Delete(&Blob{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrBlobNotFound
	}

	return nil
}

// Reset removes every blob. Used by the full-reset operation.
func (s *Store) Reset() error {
	if s == nil || s.db == nil {
		return ErrStoreNil
	}

	return s.db.Where("1 = 1").Delete(&Blob{}).Error
}

// Size returns the stored byte length of a blob, 0 when absent.
func (s *Store) Size(name string) int {
	value, err := s.Get(name)
	if err != nil {
		return 0
	}

	return len(value)
}
