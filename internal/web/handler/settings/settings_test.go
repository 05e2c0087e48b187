package settings

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/store"
	"github.com/crmlite/crmlite/internal/web/handler"
)

type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestService(t *testing.T) (*fiber.App, *state.State) {
	t.Helper()

	blobStore, err := store.OpenMemory()
	require.NoError(t, err)

	st, err := state.Open(blobStore)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	cfg := &config.Config{
		Webserver: config.Webserver{URL: "http://localhost", Port: 3000},
	}

	var s Service
	s.Init(app, cfg, st, nil)

	return app, st
}

func performPost(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestGetRendersSettings(t *testing.T) {
	app, _ := newTestService(t)

	req := httptest.NewRequest(http.MethodGet, Path, nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), TemplateName)
}

func TestPostSection(t *testing.T) {
	testCases := []struct {
		name          string
		section       string
		form          url.Values
		expectedQuery string
		check         func(t *testing.T, settings crm.Settings)
	}{
		{
			name:    "company section",
			section: "company",
			form: url.Values{
				"name":  {"Acme"},
				"email": {"info@acme.test"},
			},
			expectedQuery: handler.QuerySuccess,
			check: func(t *testing.T, settings crm.Settings) {
				t.Helper()
				assert.Equal(t, "Acme", settings.Company.Name)
				assert.Equal(t, "info@acme.test", settings.Company.Email)
			},
		},
		{
			name:    "security section with checkboxes",
			section: "security",
			form: url.Values{
				"sessionTimeout":   {"60"},
				"maxLoginAttempts": {"3"},
				"dataEncryption":   {"on"},
			},
			expectedQuery: handler.QuerySuccess,
			check: func(t *testing.T, settings crm.Settings) {
				t.Helper()
				assert.Equal(t, 60, settings.Security.SessionTimeout)
				assert.True(t, settings.Security.DataEncryption)
				assert.False(t, settings.Security.AuditLog, "unchecked boxes clear the toggle")
			},
		},
		{
			name:    "backup section",
			section: "backup",
			form: url.Values{
				"autoBackup": {"daily"},
				"retention":  {"7"},
			},
			expectedQuery: handler.QuerySuccess,
			check: func(t *testing.T, settings crm.Settings) {
				t.Helper()
				assert.Equal(t, "daily", settings.Backup.AutoBackup)
				assert.Equal(t, 7, settings.Backup.Retention)
			},
		},
		{
			name:          "unknown section",
			section:       "nonsense",
			form:          url.Values{},
			expectedQuery: handler.QueryError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, st := newTestService(t)

			resp := performPost(t, app, Path+"/sections/"+tc.section, tc.form)

			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Location"), tc.expectedQuery+"=")

			if tc.check != nil {
				tc.check(t, st.Settings())
			}
		})
	}
}

func TestPostCategoryAdd(t *testing.T) {
	app, st := newTestService(t)

	resp := performPost(t, app, Path+"/categories/add", url.Values{"name": {"Partner"}})

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Contains(t, resp.Header.Get("Location"), handler.QuerySuccess+"=")
	assert.Contains(t, st.Settings().Categories, "Partner")
}

func TestPostCategoryAddDuplicate(t *testing.T) {
	app, st := newTestService(t)

	resp := performPost(t, app, Path+"/categories/add", url.Values{"name": {"VIP"}})

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Contains(t, resp.Header.Get("Location"), handler.QueryError+"=")
	assert.Len(t, st.Settings().Categories, 5)
}

func TestPostCleanupInvalidDays(t *testing.T) {
	app, _ := newTestService(t)

	resp := performPost(t, app, Path+"/cleanup", url.Values{"days": {"zero"}})

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Contains(t, resp.Header.Get("Location"), handler.QueryError+"=")
}

func TestPostReset(t *testing.T) {
	app, st := newTestService(t)

	require.NoError(t, st.ReplaceCustomers([]crm.Customer{
		{ID: "c-1", Name: "John Smith", Phone: "555-0101"},
	}))

	resp := performPost(t, app, Path+"/reset", url.Values{})

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Contains(t, resp.Header.Get("Location"), handler.QuerySuccess+"=")
	assert.Empty(t, st.Customers())
	assert.Equal(t, "weekly", st.Settings().Backup.AutoBackup)
}
