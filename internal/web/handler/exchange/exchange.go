// Package exchange provides the data exchange endpoints: export and
// backup downloads, import and restore uploads.
package exchange

import (
	"io"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/crmlite/crmlite/internal/config"
	crmexchange "github.com/crmlite/crmlite/internal/crm/exchange"
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/web/handler"
)

const (
	// ExportPath serves the export download.
	ExportPath = handler.RootPath + "export"

	// ImportPath accepts an export file upload.
	ImportPath = handler.RootPath + "import"

	// BackupPath serves the backup download.
	BackupPath = handler.RootPath + "backup"

	// RestorePath accepts a backup file upload.
	RestorePath = handler.RootPath + "restore"

	// uploadField is the multipart form field carrying the file.
	uploadField = "file"
)

// Service is the data exchange handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	exchange *crmexchange.Service
}

// Handler is the data exchange handler.
var Handler = Service{}

// Init initializes the data exchange handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *state.State) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.exchange = crmexchange.New(st)

	app.Get(ExportPath, s.GetExport)
	app.Post(ImportPath, s.PostImport)
	app.Get(BackupPath, s.GetBackup)
	app.Post(RestorePath, s.PostRestore)
}

// GetExport streams the export document as a file download.
func (s *Service) GetExport(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="`+crmexchange.ExportFilename(time.Now())+`"`)

	if err := s.exchange.Export(c.Response().BodyWriter()); err != nil {
		log.Error().Err(err).Msg("export failed")

		return c.Status(fiber.StatusInternalServerError).SendString("Export failed")
	}

	log.Info().Msg("data exported")

	return nil
}

// GetBackup streams the backup document as a file download.
func (s *Service) GetBackup(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition,
		`attachment; filename="`+crmexchange.BackupFilename(time.Now())+`"`)

	if err := s.exchange.Backup(c.Response().BodyWriter()); err != nil {
		log.Error().Err(err).Msg("backup failed")

		return c.Status(fiber.StatusInternalServerError).SendString("Backup failed")
	}

	log.Info().Msg("backup exported")

	return nil
}

// PostImport replaces customers and products from an uploaded export file.
func (s *Service) PostImport(c *fiber.Ctx) error {
	return s.applyUpload(c, s.exchange.Import, "Data imported successfully")
}

// PostRestore replaces all data from an uploaded backup file.
func (s *Service) PostRestore(c *fiber.Ctx) error {
	return s.applyUpload(c, s.exchange.Restore, "Backup restored successfully")
}

func (s *Service) applyUpload(c *fiber.Ctx, apply func(r io.Reader) error, successMsg string) error {
	fileHeader, err := c.FormFile(uploadField)
	if err != nil {
		return redirectError(c, "No file uploaded")
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("failed to open uploaded file")

		return redirectError(c, "Failed to read uploaded file")
	}

	defer func() {
		_ = file.Close()
	}()

	if err := apply(file); err != nil {
		log.Debug().Err(err).Str("file", fileHeader.Filename).Msg("uploaded document rejected")

		return redirectError(c, err.Error())
	}

	log.Info().Str("file", fileHeader.Filename).Msg(successMsg)

	return redirectSuccess(c, successMsg)
}

func redirectError(c *fiber.Ctx, msg string) error {
	return c.Redirect("/settings?" + handler.QueryError + "=" + url.QueryEscape(msg))
}

func redirectSuccess(c *fiber.Ctx, msg string) error {
	return c.Redirect("/settings?" + handler.QuerySuccess + "=" + url.QueryEscape(msg))
}
