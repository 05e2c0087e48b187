// Package reports provides the statistics page: quick stats, category
// breakdown, financial summary, monthly series and system information.
package reports

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm/report"
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/web/handler"
	"github.com/crmlite/crmlite/internal/web/navigation"
)

const (
	// Path is the path to the reports page.
	Path = handler.RootPath + "reports"

	// DataPath serves the report figures as JSON for chart rendering.
	DataPath = Path + "/data"

	// TemplateName is the name of the reports template.
	TemplateName = "reports/reports"
)

// Data represents the complete reports data.
type Data struct {
	QuickStats   report.QuickStats       `json:"quickStats"`
	Categories   []report.CategoryStats  `json:"categories"`
	Financial    report.FinancialSummary `json:"financial"`
	GrowthSeries []report.SeriesPoint    `json:"growthSeries"`
	SalesSeries  []report.SeriesPoint    `json:"salesSeries"`
	System       report.SystemInfo       `json:"system"`
}

// Service is the reports handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	engine *report.Engine
}

// Handler is the reports handler.
var Handler = Service{}

// Init initializes the reports handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *state.State) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.engine = report.New(st)

	app.Get(Path, s.Get)
	app.Get(DataPath, s.GetData)
}

// Get handles the reports page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Reports", "reports", "reports").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Reports", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Data":       s.collect(),
	}, handler.BaseLayout)
}

// GetData serves the report figures as JSON. The page charts are drawn
// from this endpoint.
func (s *Service) GetData(c *fiber.Ctx) error {
	return c.JSON(s.collect())
}

func (s *Service) collect() Data {
	return Data{
		QuickStats:   s.engine.QuickStats(),
		Categories:   s.engine.CategoryBreakdown(),
		Financial:    s.engine.FinancialSummary(),
		GrowthSeries: s.engine.MonthlyGrowthSeries(),
		SalesSeries:  s.engine.MonthlySalesSeries(),
		System:       s.engine.SystemInfo(),
	}
}
