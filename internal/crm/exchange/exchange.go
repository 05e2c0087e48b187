// Package exchange implements data export, import, backup and restore.
// Documents are validated completely before any blob is written, so a
// malformed file never mutates existing state.
package exchange

import (
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/state"
)

// ExportDocument is the data exchange file format. Customers and
// Products must both be present for a document to be accepted; Settings
// only travels in backups.
type ExportDocument struct {
	Customers  *[]crm.Customer      `json:"customers,omitempty"`
	Products   *crm.ProductCounters `json:"products,omitempty"`
	Settings   *crm.Settings        `json:"settings,omitempty"`
	ExportDate *time.Time           `json:"exportDate,omitempty"`
	BackupDate *time.Time           `json:"backupDate,omitempty"`
}

// Service implements the data exchange operations on the domain state.
type Service struct {
	state *state.State
	now   func() time.Time
}

// New creates an exchange Service bound to the given domain state.
func New(st *state.State) *Service {
	return &Service{state: st, now: time.Now}
}

// Export writes the customers and products blobs as an indented JSON
// document stamped with the export time.
func (s *Service) Export(w io.Writer) error {
	customers := s.state.Customers()
	products := s.state.Products()
	stamp := s.now().UTC()

	return encode(w, ExportDocument{
		Customers:  &customers,
		Products:   &products,
		ExportDate: &stamp,
	})
}

// Backup writes all three blobs plus a backup timestamp.
func (s *Service) Backup(w io.Writer) error {
	customers := s.state.Customers()
	products := s.state.Products()
	settings := s.state.Settings()
	stamp := s.now().UTC()

	return encode(w, ExportDocument{
		Customers:  &customers,
		Products:   &products,
		Settings:   &settings,
		BackupDate: &stamp,
	})
}

// Import reads an export document and replaces the customer and product
// blobs. The document is rejected with ErrInvalidFormat when it cannot
// be parsed or when customers or products are missing; existing state is
// left untouched in that case.
func (s *Service) Import(r io.Reader) error {
	doc, err := decode(r)
	if err != nil {
		return err
	}

	if err := s.state.ReplaceCustomers(*doc.Customers); err != nil {
		return err
	}

	return s.state.ReplaceProducts(*doc.Products)
}

// Restore reads a backup document. Customers and products are required;
// settings are applied when present.
func (s *Service) Restore(r io.Reader) error {
	doc, err := decode(r)
	if err != nil {
		return err
	}

	if err := s.state.ReplaceCustomers(*doc.Customers); err != nil {
		return err
	}

	if err := s.state.ReplaceProducts(*doc.Products); err != nil {
		return err
	}

	if doc.Settings != nil {
		return s.state.ReplaceSettings(*doc.Settings)
	}

	return nil
}

// Reset clears every blob and resets the session to first-run state.
func (s *Service) Reset() error {
	return s.state.ResetAll()
}

// ExportFilename returns the conventional export download name for the
// given day.
func ExportFilename(t time.Time) string {
	return "crm_data_" + t.UTC().Format(time.DateOnly) + ".json"
}

// BackupFilename returns the conventional backup download name for the
// given day.
func BackupFilename(t time.Time) string {
	return "crm_backup_" + t.UTC().Format(time.DateOnly) + ".json"
}

func encode(w io.Writer, doc ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(doc), "failed to encode exchange document")
}

func decode(r io.Reader) (ExportDocument, error) {
	var doc ExportDocument

	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return ExportDocument{}, errors.Wrap(ErrInvalidFormat, err.Error())
	}

	if doc.Customers == nil || doc.Products == nil {
		return ExportDocument{}, ErrInvalidFormat
	}

	return doc, nil
}
