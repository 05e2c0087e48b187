// Package daemon wires the store, domain state, backup scheduler and web
// service together into the running application.
package daemon

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/crmlite/crmlite/internal/backup"
	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm/exchange"
	"github.com/crmlite/crmlite/internal/crm/state"
	"github.com/crmlite/crmlite/internal/logger"
	"github.com/crmlite/crmlite/internal/store"
	"github.com/crmlite/crmlite/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	scheduler  *backup.Scheduler
}

// Start starts the backup scheduler and the web service, then blocks
// until the service stops.
func (d *Daemon) Start() error {
	if err := d.scheduler.Start(); err != nil {
		return err
	}

	go d.webService.WaitShutdown()

	err := d.webService.Start()

	d.scheduler.Stop()

	return err
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}

	blobStore, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	st, err := state.Open(blobStore)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("path", cfg.Store.Path).
		Int("customers", st.CustomerCount()).
		Msg("domain state loaded")

	scheduler := backup.New(cfg.Backup, st, exchange.New(st))

	return &Daemon{
		webService: web.New(cfg, st, scheduler),
		scheduler:  scheduler,
	}, nil
}
