package dashboard

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
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/store"
	"github.com/crmlite/crmlite/internal/web/handler"
)

// noOpViews is a minimal Fiber Views engine used for tests. It writes the
// template name so tests can assert which page was rendered.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, _ interface{}, _ ...string) error {
	_, _ = io.WriteString(w, name)

	return nil
}

func newTestState(t *testing.T) *state.State {
	t.Helper()

	blobStore, err := store.OpenMemory()
	require.NoError(t, err)

	st, err := state.Open(blobStore)
	require.NoError(t, err)

	return st
}

func newTestService(t *testing.T) (*fiber.App, *Service, *state.State) {
	t.Helper()

	app := fiber.New(fiber.Config{Views: noOpViews{}})
	st := newTestState(t)

	cfg := &config.Config{
		Webserver: config.Webserver{URL: "http://localhost", Port: 3000},
	}

	var s Service
	s.Init(app, cfg, st)

	return app, &s, st
}

func performPost(t *testing.T, app *fiber.App, target string, form url.Values) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func TestGetRendersDashboard(t *testing.T) {
	app, _, _ := newTestService(t)

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

func TestPostCustomer(t *testing.T) {
	testCases := []struct {
		name          string
		form          url.Values
		expectedQuery string
		expectedCount int
	}{
		{
			name: "valid customer redirects with success",
			form: url.Values{
				"name":    {"John Smith"},
				"phone":   {"+1-555-0101"},
				"address": {"123 Main St"},
			},
			expectedQuery: handler.QuerySuccess,
			expectedCount: 1,
		},
		{
			name: "missing required fields redirects with error",
			form: url.Values{
				"name": {"John Smith"},
			},
			expectedQuery: handler.QueryError,
			expectedCount: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _, st := newTestService(t)

			resp := performPost(t, app, CustomersPath, tc.form)

			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Location"), tc.expectedQuery+"=")
			assert.Len(t, st.Customers(), tc.expectedCount)
		})
	}
}

func TestPostCustomerDuplicatePhone(t *testing.T) {
	app, _, st := newTestService(t)

	form := url.Values{
		"name":    {"John Smith"},
		"phone":   {"+1-555-0101"},
		"address": {"123 Main St"},
	}

	resp := performPost(t, app, CustomersPath, form)
	_ = resp.Body.Close()

	form.Set("name", "Jane Smith")
	resp = performPost(t, app, CustomersPath, form)

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Contains(t, resp.Header.Get("Location"), handler.QueryError+"=")
	assert.Len(t, st.Customers(), 1)
}

func TestPostCustomerDelete(t *testing.T) {
	app, _, st := newTestService(t)

	resp := performPost(t, app, CustomersPath, url.Values{
		"name":    {"John Smith"},
		"phone":   {"+1-555-0101"},
		"address": {"123 Main St"},
	})
	_ = resp.Body.Close()

	customers := st.Customers()
	require.Len(t, customers, 1)

	resp = performPost(t, app, CustomersPath+"/"+customers[0].ID+"/delete", url.Values{})

	defer func() {
		_ = resp.Body.Close()
	}()

	assert.Contains(t, resp.Header.Get("Location"), handler.QuerySuccess+"=")
	assert.Empty(t, st.Customers())
}

func TestPostProducts(t *testing.T) {
	testCases := []struct {
		name          string
		form          url.Values
		expectedQuery string
		expectedSold  int
	}{
		{
			name: "valid counters",
			form: url.Values{
				"total":   {"100"},
				"sold":    {"25"},
				"price":   {"29.99"},
				"capital": {"5000"},
			},
			expectedQuery: handler.QuerySuccess,
			expectedSold:  25,
		},
		{
			name: "sold exceeds total",
			form: url.Values{
				"total":   {"10"},
				"sold":    {"25"},
				"price":   {"29.99"},
				"capital": {"5000"},
			},
			expectedQuery: handler.QueryError,
			expectedSold:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _, st := newTestService(t)

			resp := performPost(t, app, ProductsPath, tc.form)

			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, http.StatusFound, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Location"), tc.expectedQuery+"=")
			assert.Equal(t, tc.expectedSold, st.Products().Sold)
		})
	}
}
