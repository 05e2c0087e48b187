// Package web provides the fiber web service serving the CRM pages.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"

	"github.com/crmlite/crmlite/internal/backup"
	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm/state"
	fiberlogger "github.com/crmlite/crmlite/internal/logger/adapter/fiber"
	"github.com/crmlite/crmlite/internal/web/handler/dashboard"
	exchangehandler "github.com/crmlite/crmlite/internal/web/handler/exchange"
	"github.com/crmlite/crmlite/internal/web/handler/reports"
	settingshandler "github.com/crmlite/crmlite/internal/web/handler/settings"
)

// CheckAliveURI is the liveness endpoint used by reverse proxies.
const CheckAliveURI = "/checkalive"

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the configured port.
func (s *Service) Start() error {
	s.alive.Store(true)

	var doneFiber = make(chan bool)

	go func() {
		addr := ":" + strconv.Itoa(s.cfg.Webserver.Port)

		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the web service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration. The
// scheduler may be nil when automatic backups are disabled.
func New(cfg *config.Config, st *state.State, scheduler *backup.Scheduler) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if st == nil {
		panic("state cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// Add template helper functions
	templateEngine.AddFunc("money", func(v float64) string {
		return strconv.FormatFloat(v, 'f', 2, 64)
	})
	templateEngine.AddFunc("percent", func(v float64) string {
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	})
	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	// access log middleware
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAliveURI,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
	}

	// liveness endpoint for reverse proxies
	app.Get(CheckAliveURI, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	// init handlers (they register their own routes)
	dashboard.Handler.Init(app, cfg, st)
	reports.Handler.Init(app, cfg, st)
	settingshandler.Handler.Init(app, cfg, st, scheduler)
	exchangehandler.Handler.Init(app, cfg, st)

	// redirect root to dashboard
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(dashboard.Path)
	})

	return service
}
