// Package dashboard provides the main page: the customer collection with
// search, and the product counter form with its derived metrics.
package dashboard

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/customer"
	"github.com/crmlite/crmlite/internal/crm/product"
	"github.com/crmlite/crmlite/internal/crm/settings"
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/web/handler"
	"github.com/crmlite/crmlite/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// CustomersPath is the base path for customer mutations.
	CustomersPath = handler.RootPath + "customers"

	// ProductsPath is the path for product counter updates.
	ProductsPath = handler.RootPath + "products"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"
)

// ProductMetrics carries the counters plus the derived values for
// template rendering.
type ProductMetrics struct {
	Counters  crm.ProductCounters
	Revenue   float64
	Remaining int
	Profit    float64
	ROI       float64
}

// Data represents the complete dashboard data.
type Data struct {
	Customers   []crm.Customer
	Categories  []string
	Products    ProductMetrics
	SearchField string
	SearchQuery string
	Searching   bool
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	customers *customer.Repository
	products  *product.Aggregator
	settings  *settings.Store
	validator *validator.Validate
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *state.State) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.customers = customer.NewRepository(st)
	s.products = product.NewAggregator(st)
	s.settings = settings.New(st)
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Post(CustomersPath, s.PostCustomer)
	app.Post(CustomersPath+"/:id/update", s.PostCustomerUpdate)
	app.Post(CustomersPath+"/:id/delete", s.PostCustomerDelete)
	app.Post(ProductsPath, s.PostProducts)
}

// Get handles the dashboard page rendering, including search results when
// a query is present.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", "dashboard", "dashboard").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	var (
		field     = c.Query("field", customer.FieldName)
		query     = c.Query("q", "")
		flashErr  = c.Query(handler.QueryError, "")
		customers []crm.Customer
		searching bool
	)

	if query != "" {
		results, err := s.customers.Search(field, query)
		if err != nil {
			log.Debug().Err(err).Str("field", field).Msg("customer search rejected")

			flashErr = err.Error()
			customers = s.customers.All()
		} else {
			customers = results
			searching = true
		}
	} else {
		customers = s.customers.All()
	}

	counters := s.products.Counters()

	data := Data{
		Customers:  customers,
		Categories: s.settings.Categories(),
		Products: ProductMetrics{
			Counters:  counters,
			Revenue:   s.products.Revenue(),
			Remaining: s.products.Remaining(),
			Profit:    s.products.Profit(),
			ROI:       s.products.ROI(),
		},
		SearchField: field,
		SearchQuery: query,
		Searching:   searching,
	}

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Data":       data,
		"Error":      flashErr,
		"Success":    c.Query(handler.QuerySuccess, ""),
	}, handler.BaseLayout)
}

// PostCustomer handles the add-customer form submission.
func (s *Service) PostCustomer(c *fiber.Ctx) error {
	var input customer.Input

	if err := c.BodyParser(&input); err != nil {
		log.Error().Err(err).Msg("failed to parse customer form")

		return redirectError(c, "Invalid form data")
	}

	if err := s.validator.Struct(input); err != nil {
		return redirectError(c, customer.ErrRequiredFields.Error())
	}

	record, err := s.customers.Add(input)
	if err != nil {
		log.Debug().Err(err).Msg("customer rejected")

		return redirectError(c, err.Error())
	}

	log.Info().Str("id", record.ID).Str("name", record.Name).Msg("customer added")

	return redirectSuccess(c, "Customer added successfully")
}

// PostCustomerUpdate handles the edit-customer form submission.
func (s *Service) PostCustomerUpdate(c *fiber.Ctx) error {
	var input customer.Input

	if err := c.BodyParser(&input); err != nil {
		log.Error().Err(err).Msg("failed to parse customer form")

		return redirectError(c, "Invalid form data")
	}

	patch := customer.Patch{
		Name:     &input.Name,
		Phone:    &input.Phone,
		Address:  &input.Address,
		Email:    &input.Email,
		Category: &input.Category,
		Notes:    &input.Notes,
	}

	record, err := s.customers.Update(c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return redirectError(c, "Customer not found")
		}

		log.Error().Err(err).Msg("failed to update customer")

		return redirectError(c, err.Error())
	}

	log.Info().Str("id", record.ID).Msg("customer updated")

	return redirectSuccess(c, "Customer updated successfully")
}

// PostCustomerDelete removes a customer.
func (s *Service) PostCustomerDelete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := s.customers.Delete(id); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return redirectError(c, "Customer not found")
		}

		log.Error().Err(err).Msg("failed to delete customer")

		return redirectError(c, err.Error())
	}

	log.Info().Str("id", id).Msg("customer deleted")

	return redirectSuccess(c, "Customer deleted successfully")
}

// PostProducts handles the product counter form submission. All four
// values are replaced together.
func (s *Service) PostProducts(c *fiber.Ctx) error {
	var input product.Input

	if err := c.BodyParser(&input); err != nil {
		log.Error().Err(err).Msg("failed to parse product form")

		return redirectError(c, "Invalid form data")
	}

	if err := s.products.Update(input.Total, input.Sold, input.Price, input.Capital); err != nil {
		log.Debug().Err(err).Msg("product counters rejected")

		return redirectError(c, err.Error())
	}

	log.Info().
		Int("total", input.Total).
		Int("sold", input.Sold).
		Float64("price", input.Price).
		Float64("capital", input.Capital).
		Msg("product counters updated")

	return redirectSuccess(c, "Product data updated successfully")
}

func redirectError(c *fiber.Ctx, msg string) error {
	return c.Redirect(Path + "?" + handler.QueryError + "=" + url.QueryEscape(msg))
}

func redirectSuccess(c *fiber.Ctx, msg string) error {
	return c.Redirect(Path + "?" + handler.QuerySuccess + "=" + url.QueryEscape(msg))
}
