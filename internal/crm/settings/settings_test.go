package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := store.OpenMemory()
	require.NoError(t, err, "failed to create test store")

	st, err := state.Open(s)
	require.NoError(t, err, "failed to open test state")

	return New(st)
}

func TestLoadDefaults(t *testing.T) {
	s := setupTestStore(t)

	settings := s.Load()

	assert.Equal(t, "en", settings.Localization.Language)
	assert.Equal(t, "USD", settings.Localization.Currency)
	assert.Equal(t, "UTC", settings.Localization.Timezone)
	assert.Equal(t, []string{"Regular", "VIP", "Premium", "Wholesale", "Corporate"}, settings.Categories)
	assert.True(t, settings.Fields.Notes)
	assert.False(t, settings.Fields.Birthday)
	assert.Equal(t, 30, settings.Security.SessionTimeout)
	assert.Equal(t, "weekly", settings.Backup.AutoBackup)
	assert.Equal(t, "json", settings.Export.Format)
	assert.Equal(t, "skip", settings.Import.DuplicateHandling)
}

func TestPatch(t *testing.T) {
	testCases := []struct {
		name          string
		section       string
		raw           string
		expectedError error
		check         func(t *testing.T, settings crm.Settings)
	}{
		{
			name:          "unknown section",
			section:       "categories", // categories have their own operations
			raw:           `[]`,
			expectedError: ErrUnknownSection,
		},
		{
			name:          "malformed value",
			section:       SectionCompany,
			raw:           `{"name":`,
			expectedError: ErrInvalidSection,
		},
		{
			name:    "company replaced wholesale",
			section: SectionCompany,
			raw:     `{"name":"Acme","address":"1 Rd","phone":"555","email":"info@acme.test"}`,
			check: func(t *testing.T, settings crm.Settings) {
				t.Helper()
				assert.Equal(t, "Acme", settings.Company.Name)
				assert.Equal(t, "info@acme.test", settings.Company.Email)
			},
		},
		{
			name:    "localization replaced wholesale",
			section: SectionLocalization,
			raw:     `{"language":"de","currency":"EUR","timezone":"Europe/Berlin"}`,
			check: func(t *testing.T, settings crm.Settings) {
				t.Helper()
				assert.Equal(t, "de", settings.Localization.Language)
				assert.Equal(t, "EUR", settings.Localization.Currency)
			},
		},
		{
			name:    "backup section",
			section: SectionBackup,
			raw:     `{"autoBackup":"daily","retention":7}`,
			check: func(t *testing.T, settings crm.Settings) {
				t.Helper()
				assert.Equal(t, "daily", settings.Backup.AutoBackup)
				assert.Equal(t, 7, settings.Backup.Retention)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := setupTestStore(t)

			err := s.Patch(tc.section, []byte(tc.raw))

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
			} else {
				require.NoError(t, err)

				if tc.check != nil {
					tc.check(t, s.Load())
				}
			}
		})
	}
}

func TestPatchSection(t *testing.T) {
	s := setupTestStore(t)

	require.NoError(t, s.PatchSection(SectionCompany, crm.CompanySettings{Name: "Acme"}))
	assert.Equal(t, "Acme", s.Load().Company.Name)
	// the rest of the section was replaced, not merged
	assert.Empty(t, s.Load().Company.Address)
}

func TestAddCategory(t *testing.T) {
	testCases := []struct {
		name          string
		category      string
		expectedError error
	}{
		{
			name:          "empty name",
			category:      "   ",
			expectedError: ErrEmptyCategory,
		},
		{
			name:          "duplicate",
			category:      "VIP",
			expectedError: ErrDuplicateCategory,
		},
		{
			name:     "case-sensitive duplicate check",
			category: "vip",
		},
		{
			name:     "successful add appends",
			category: "Partner",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := setupTestStore(t)

			err := s.AddCategory(tc.category)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Len(t, s.Categories(), 5)
			} else {
				require.NoError(t, err)

				categories := s.Categories()
				require.Len(t, categories, 6)
				assert.Equal(t, tc.category, categories[len(categories)-1])
			}
		})
	}
}

func TestRenameCategory(t *testing.T) {
	s := setupTestStore(t)

	require.ErrorIs(t, s.RenameCategory("Enterprise", "Partner"), ErrCategoryNotFound)
	require.ErrorIs(t, s.RenameCategory("VIP", ""), ErrEmptyCategory)

	require.NoError(t, s.RenameCategory("VIP", "Very Important"))

	categories := s.Categories()
	assert.Equal(t, "Very Important", categories[1]) // order preserved
	assert.NotContains(t, categories, "VIP")
}

func TestRemoveCategory(t *testing.T) {
	s := setupTestStore(t)

	require.ErrorIs(t, s.RemoveCategory("Enterprise"), ErrCategoryNotFound)

	require.NoError(t, s.RemoveCategory("Premium"))

	categories := s.Categories()
	assert.Len(t, categories, 4)
	assert.NotContains(t, categories, "Premium")
}

func TestSettingsPersistAcrossSessions(t *testing.T) {
	blobStore, err := store.OpenMemory()
	require.NoError(t, err)

	st, err := state.Open(blobStore)
	require.NoError(t, err)

	s := New(st)
	require.NoError(t, s.AddCategory("Partner"))

	st2, err := state.Open(blobStore)
	require.NoError(t, err)

	assert.Contains(t, New(st2).Categories(), "Partner")
}
