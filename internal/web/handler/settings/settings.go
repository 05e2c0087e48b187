// Package settings provides the settings page: section forms, category
// management, data cleanup and the full reset.
package settings

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/crmlite/crmlite/internal/backup"
	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm"
	"github.com/crmlite/crmlite/internal/crm/customer"
	crmsettings "github.com/crmlite/crmlite/internal/crm/settings"
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/web/handler"
	"github.com/crmlite/crmlite/internal/web/navigation"
)

const (
	// Path is the path to the settings page.
	Path = handler.RootPath + "settings"

	// TemplateName is the name of the settings template.
	TemplateName = "settings/settings"
)

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	settings  *crmsettings.Store
	customers *customer.Repository
	state     *state.State
	scheduler *backup.Scheduler
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler. The scheduler may be nil when
// automatic backups are not running (tests, one-shot commands).
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *state.State, scheduler *backup.Scheduler) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.state = st
	s.settings = crmsettings.New(st)
	s.customers = customer.NewRepository(st)
	s.scheduler = scheduler

	app.Get(Path, s.Get)
	app.Post(Path+"/sections/:section", s.PostSection)
	app.Post(Path+"/categories/add", s.PostCategoryAdd)
	app.Post(Path+"/categories/rename", s.PostCategoryRename)
	app.Post(Path+"/categories/delete", s.PostCategoryDelete)
	app.Post(Path+"/cleanup", s.PostCleanup)
	app.Post(Path+"/reset", s.PostReset)
}

// Get handles the settings page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Settings", "settings", "settings").
		AddBreadcrumb("Home", "/dashboard", false).
		AddBreadcrumb("Settings", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Settings":   s.settings.Load(),
		"Error":      c.Query(handler.QueryError, ""),
		"Success":    c.Query(handler.QuerySuccess, ""),
	}, handler.BaseLayout)
}

// PostSection replaces one settings section from its form fields. Patching
// the backup section reinstalls the auto-backup schedule.
func (s *Service) PostSection(c *fiber.Ctx) error {
	section := c.Params("section")

	value, err := sectionFromForm(c, section)
	if err != nil {
		if errors.Is(err, crmsettings.ErrUnknownSection) {
			return redirectError(c, "Unknown settings section")
		}

		return redirectError(c, err.Error())
	}

	if err := s.settings.PatchSection(section, value); err != nil {
		log.Error().Err(err).Str("section", section).Msg("failed to save settings section")

		return redirectError(c, err.Error())
	}

	if section == crmsettings.SectionBackup && s.scheduler != nil {
		if err := s.scheduler.Reschedule(); err != nil {
			log.Error().Err(err).Msg("failed to reschedule automatic backup")

			return redirectError(c, err.Error())
		}
	}

	log.Info().Str("section", section).Msg("settings section saved")

	return redirectSuccess(c, "Settings saved successfully")
}

// PostCategoryAdd appends a customer category.
func (s *Service) PostCategoryAdd(c *fiber.Ctx) error {
	if err := s.settings.AddCategory(c.FormValue("name")); err != nil {
		return redirectError(c, err.Error())
	}

	return redirectSuccess(c, "Category added")
}

// PostCategoryRename renames a customer category in place.
func (s *Service) PostCategoryRename(c *fiber.Ctx) error {
	if err := s.settings.RenameCategory(c.FormValue("old"), c.FormValue("new")); err != nil {
		return redirectError(c, err.Error())
	}

	return redirectSuccess(c, "Category renamed")
}

// PostCategoryDelete removes a customer category.
func (s *Service) PostCategoryDelete(c *fiber.Ctx) error {
	if err := s.settings.RemoveCategory(c.FormValue("name")); err != nil {
		return redirectError(c, err.Error())
	}

	return redirectSuccess(c, "Category deleted")
}

// PostCleanup removes customers older than the submitted number of days.
func (s *Service) PostCleanup(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.FormValue("days"))
	if err != nil {
		return redirectError(c, customer.ErrInvalidCleanupDays.Error())
	}

	removed, err := s.customers.CleanupOlderThan(days)
	if err != nil {
		return redirectError(c, err.Error())
	}

	log.Info().Int("removed", removed).Int("days", days).Msg("customer cleanup finished")

	return redirectSuccess(c, "Removed "+strconv.Itoa(removed)+" customers")
}

// PostReset clears all data and restores the default settings.
func (s *Service) PostReset(c *fiber.Ctx) error {
	if err := s.state.ResetAll(); err != nil {
		log.Error().Err(err).Msg("failed to reset data")

		return redirectError(c, "Failed to reset data")
	}

	log.Warn().Msg("all data was reset")

	return redirectSuccess(c, "All data was reset")
}

// sectionFromForm builds the section value for PatchSection from the
// submitted form fields. Checkboxes arrive as "on" when checked and are
// absent otherwise.
func sectionFromForm(c *fiber.Ctx, section string) (any, error) {
	switch section {
	case crmsettings.SectionCompany:
		return crm.CompanySettings{
			Name:    c.FormValue("name"),
			Address: c.FormValue("address"),
			Phone:   c.FormValue("phone"),
			Email:   c.FormValue("email"),
		}, nil
	case crmsettings.SectionLocalization:
		return crm.LocalizationSettings{
			Language: c.FormValue("language"),
			Currency: c.FormValue("currency"),
			Timezone: c.FormValue("timezone"),
		}, nil
	case crmsettings.SectionFields:
		return crm.FieldSettings{
			Notes:       formBool(c, "notes"),
			Tags:        formBool(c, "tags"),
			Birthday:    formBool(c, "birthday"),
			SocialMedia: formBool(c, "socialMedia"),
		}, nil
	case crmsettings.SectionNotifications:
		return crm.NotificationSettings{
			Email:    formBool(c, "email"),
			Browser:  formBool(c, "browser"),
			LowStock: formBool(c, "lowStock"),
			Birthday: formBool(c, "birthday"),
		}, nil
	case crmsettings.SectionSecurity:
		return crm.SecuritySettings{
			SessionTimeout:   formInt(c, "sessionTimeout"),
			MaxLoginAttempts: formInt(c, "maxLoginAttempts"),
			DataEncryption:   formBool(c, "dataEncryption"),
			AuditLog:         formBool(c, "auditLog"),
		}, nil
	case crmsettings.SectionBackup:
		return crm.BackupSettings{
			AutoBackup: c.FormValue("autoBackup"),
			Retention:  formInt(c, "retention"),
		}, nil
	case crmsettings.SectionPerformance:
		return crm.PerformanceSettings{
			CacheSize:        formInt(c, "cacheSize"),
			MaxSearchResults: formInt(c, "maxSearchResults"),
			LazyLoading:      formBool(c, "lazyLoading"),
			Compression:      formBool(c, "compression"),
		}, nil
	case crmsettings.SectionDeveloper:
		return crm.DeveloperSettings{
			DebugMode:             formBool(c, "debugMode"),
			ConsoleLogs:           formBool(c, "consoleLogs"),
			PerformanceMonitoring: formBool(c, "performanceMonitoring"),
		}, nil
	case crmsettings.SectionExport:
		return crm.ExportSettings{
			Format:   c.FormValue("format"),
			Encoding: c.FormValue("encoding"),
		}, nil
	case crmsettings.SectionImport:
		return crm.ImportSettings{
			Validation:        c.FormValue("validation"),
			DuplicateHandling: c.FormValue("duplicateHandling"),
		}, nil
	default:
		return nil, crmsettings.ErrUnknownSection
	}
}

func formBool(c *fiber.Ctx, name string) bool {
	switch c.FormValue(name) {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}

func formInt(c *fiber.Ctx, name string) int {
	value, err := strconv.Atoi(c.FormValue(name))
	if err != nil {
		return 0
	}

	return value
}

func redirectError(c *fiber.Ctx, msg string) error {
	return c.Redirect(Path + "?" + handler.QueryError + "=" + url.QueryEscape(msg))
}

func redirectSuccess(c *fiber.Ctx, msg string) error {
	return c.Redirect(Path + "?" + handler.QuerySuccess + "=" + url.QueryEscape(msg))
}
