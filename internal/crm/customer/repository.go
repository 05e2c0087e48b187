// Package customer provides CRUD and search operations over the customer
// collection.
package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/state"
)

const (
	// FieldName selects name search.
	FieldName = "name"

	// FieldPhone selects phone search.
	FieldPhone = "phone"
)

// Input carries the user-supplied fields for a new customer.
type Input struct {
	Name     string `form:"name" validate:"required"`
	Phone    string `form:"phone" validate:"required"`
	Address  string `form:"address" validate:"required"`
	Email    string `form:"email"`
	Category string `form:"category"`
	Notes    string `form:"notes"`
}

// Patch carries the fields of an update; nil fields are left unchanged.
type Patch struct {
	Name     *string
	Phone    *string
	Address  *string
	Email    *string
	Category *string
	Notes    *string
}

// Repository implements the customer operations on the domain state.
type Repository struct {
	state *state.State
	now   func() time.Time
}

// NewRepository creates a Repository bound to the given domain state.
func NewRepository(st *state.State) *Repository {
	return &Repository{state: st, now: time.Now}
}

// Add validates the input, assigns id and creation timestamp and appends
// the customer to the end of the collection. The phone number must be
// unique (exact, case-sensitive match) across all customers.
func (r *Repository) Add(input Input) (crm.Customer, error) {
	record := crm.Customer{
		Name:     strings.TrimSpace(input.Name),
		Phone:    strings.TrimSpace(input.Phone),
		Address:  strings.TrimSpace(input.Address),
		Email:    strings.TrimSpace(input.Email),
		Category: strings.TrimSpace(input.Category),
		Notes:    strings.TrimSpace(input.Notes),
	}

	if record.Name == "" || record.Phone == "" || record.Address == "" {
		return crm.Customer{}, ErrRequiredFields
	}

	if record.Email == "" {
		record.Email = crm.EmailNotAvailable
	}

	customers := r.state.Customers()

	for i := range customers {
		if customers[i].Phone == record.Phone {
			return crm.Customer{}, ErrDuplicatePhone
		}
	}

	record.ID = uuid.NewString()
	record.DateAdded = r.now().UTC()

	customers = append(customers, record)

	if err := r.state.ReplaceCustomers(customers); err != nil {
		return crm.Customer{}, err
	}

	return record, nil
}

// Update merges the patch over the existing record and stamps
// LastModified. Phone uniqueness is checked at creation only, not at edit
// time; an edit can introduce a duplicate phone.
func (r *Repository) Update(id string, patch Patch) (crm.Customer, error) {
	customers := r.state.Customers()

	index := indexByID(customers, id)
	if index < 0 {
		return crm.Customer{}, ErrNotFound
	}

	record := &customers[index]

	if patch.Name != nil {
		record.Name = strings.TrimSpace(*patch.Name)
	}

	if patch.Phone != nil {
		record.Phone = strings.TrimSpace(*patch.Phone)
	}

	if patch.Address != nil {
		record.Address = strings.TrimSpace(*patch.Address)
	}

	if patch.Email != nil {
		record.Email = strings.TrimSpace(*patch.Email)
		if record.Email == "" {
			record.Email = crm.EmailNotAvailable
		}
	}

	if patch.Category != nil {
		record.Category = strings.TrimSpace(*patch.Category)
	}

	if patch.Notes != nil {
		record.Notes = strings.TrimSpace(*patch.Notes)
	}

	modified := r.now().UTC()
	record.LastModified = &modified

	if err := r.state.ReplaceCustomers(customers); err != nil {
		return crm.Customer{}, err
	}

	return *record, nil
}

// Delete removes the record with the given id.
func (r *Repository) Delete(id string) error {
	customers := r.state.Customers()

	index := indexByID(customers, id)
	if index < 0 {
		return ErrNotFound
	}

	customers = append(customers[:index], customers[index+1:]...)

	return r.state.ReplaceCustomers(customers)
}

// FindByID returns the record with the given id.
func (r *Repository) FindByID(id string) (crm.Customer, error) {
	customers := r.state.Customers()

	index := indexByID(customers, id)
	if index < 0 {
		return crm.Customer{}, ErrNotFound
	}

	return customers[index], nil
}

// All returns a snapshot of the insertion-ordered collection.
func (r *Repository) All() []crm.Customer {
	return r.state.Customers()
}

// Search returns all customers whose field contains the query as a
// case-insensitive substring. An empty result is not an error.
func (r *Repository) Search(field, query string) ([]crm.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if field != FieldName && field != FieldPhone {
		return nil, ErrUnknownSearchField
	}

	needle := strings.ToLower(query)
	results := make([]crm.Customer, 0)

	for _, record := range r.state.Customers() {
		haystack := record.Name
		if field == FieldPhone {
			haystack = record.Phone
		}

		if strings.Contains(strings.ToLower(haystack), needle) {
			results = append(results, record)
		}
	}

	return results, nil
}

// CleanupOlderThan removes customers added before the cutoff and returns
// the number of removed records.
func (r *Repository) CleanupOlderThan(days int) (int, error) {
	if days <= 0 {
		return 0, ErrInvalidCleanupDays
	}

	customers := r.state.Customers()
	cutoff := r.now().UTC().AddDate(0, 0, -days)

	kept := make([]crm.Customer, 0, len(customers))

	for _, record := range customers {
		if record.DateAdded.After(cutoff) {
			kept = append(kept, record)
		}
	}

	removed := len(customers) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := r.state.ReplaceCustomers(kept); err != nil {
		return 0, err
	}

	return removed, nil
}

func indexByID(customers []crm.Customer, id string) int {
	for i := range customers {
		if customers[i].ID == id {
			return i
		}
	}

	return -1
}
