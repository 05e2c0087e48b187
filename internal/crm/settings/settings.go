// Package settings manages the nested configuration document: company
// profile, localization, category list, feature toggles and
// export/import preferences.
package settings

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/state"
)

// Section names addressable by Patch.
const (
	SectionCompany       = "company"
	SectionLocalization  = "localization"
	SectionFields        = "fields"
	SectionNotifications = "notifications"
	SectionSecurity      = "security"
	SectionBackup        = "backup"
	SectionPerformance   = "performance"
	SectionDeveloper     = "developer"
	SectionExport        = "export"
	SectionImport        = "import"
)

// Store implements the settings operations on the domain state.
type Store struct {
	state *state.State
}

// New creates a settings Store bound to the given domain state.
func New(st *state.State) *Store {
	return &Store{state: st}
}

// Load returns the current settings. Defaults are seeded by the domain
// state on first run.
func (s *Store) Load() crm.Settings {
	return s.state.Settings()
}

// Patch replaces one named top-level section wholesale from its JSON
// encoding and persists the document.
func (s *Store) Patch(section string, raw []byte) error {
	settings := s.state.Settings()

	var err error

	switch section {
	case SectionCompany:
		err = decodeSection(raw, &settings.Company)
	case SectionLocalization:
		err = decodeSection(raw, &settings.Localization)
	case SectionFields:
		err = decodeSection(raw, &settings.Fields)
	case SectionNotifications:
		err = decodeSection(raw, &settings.Notifications)
	case SectionSecurity:
		err = decodeSection(raw, &settings.Security)
	case SectionBackup:
		err = decodeSection(raw, &settings.Backup)
	case SectionPerformance:
		err = decodeSection(raw, &settings.Performance)
	case SectionDeveloper:
		err = decodeSection(raw, &settings.Developer)
	case SectionExport:
		err = decodeSection(raw, &settings.Export)
	case SectionImport:
		err = decodeSection(raw, &settings.Import)
	default:
		return ErrUnknownSection
	}

	if err != nil {
		return err
	}

	return s.state.ReplaceSettings(settings)
}

// PatchSection replaces one named section with an already decoded value.
// The value must match the section's type.
func (s *Store) PatchSection(section string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to encode settings section")
	}

	return s.Patch(section, raw)
}

func decodeSection(raw []byte, target any) error {
	if err := json.Unmarshal(raw, target); err != nil {
		return errors.Wrap(ErrInvalidSection, err.Error())
	}

	return nil
}

// Categories returns the ordered category list.
func (s *Store) Categories() []string {
	return s.state.Settings().Categories
}

// AddCategory appends a new category. Duplicates are rejected with a
// case-sensitive pre-insert check.
func (s *Store) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyCategory
	}

	settings := s.state.Settings()

	for _, category := range settings.Categories {
		if category == name {
			return ErrDuplicateCategory
		}
	}

	settings.Categories = append(settings.Categories, name)

	return s.state.ReplaceSettings(settings)
}

// RenameCategory replaces oldName with newName in place, preserving the
// list order.
func (s *Store) RenameCategory(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyCategory
	}

	settings := s.state.Settings()

	for i, category := range settings.Categories {
		if category == oldName {
			settings.Categories[i] = newName

			return s.state.ReplaceSettings(settings)
		}
	}

	return ErrCategoryNotFound
}

// RemoveCategory deletes the named category from the list.
func (s *Store) RemoveCategory(name string) error {
	settings := s.state.Settings()

	for i, category := range settings.Categories {
		if category == name {
			settings.Categories = append(settings.Categories[:i], settings.Categories[i+1:]...)

			return s.state.ReplaceSettings(settings)
		}
	}

	return ErrCategoryNotFound
}
