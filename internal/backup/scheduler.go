// Package backup runs the automatic backup schedule. The interval comes
// from the persisted backup settings and can change at runtime, so the
// cron entry is rebuilt whenever the section is patched.
package backup

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm/exchange"
	"github.com/crmlite/crmlite/internal/crm/state"
)

// Auto backup intervals selectable in the backup settings.
const (
	IntervalDisabled = "disabled"
	IntervalDaily    = "daily"
	IntervalWeekly   = "weekly"
	IntervalMonthly  = "monthly"
)

// Scheduler writes periodic backup files according to the backup
// settings section.
type Scheduler struct {
	cfg      config.Backup
	state    *state.State
	exchange *exchange.Service
	cron     *cron.Cron
	entry    cron.EntryID
	now      func() time.Time
}

// New creates a Scheduler writing into the configured backup directory.
func New(cfg config.Backup, st *state.State, svc *exchange.Service) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		state:    st,
		exchange: svc,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start installs the cron entry for the current settings and starts the
// scheduler.
func (s *Scheduler) Start() error {
	if err := s.Reschedule(); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

// Stop stops the scheduler and waits for a running backup to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Reschedule replaces the cron entry with one matching the persisted
// backup interval. Called after the backup settings section changes.
func (s *Scheduler) Reschedule() error {
	if s.entry != 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}

	interval := s.state.Settings().Backup.AutoBackup

	spec, err := cronSpec(interval)
	if err != nil {
		return err
	}

	if spec == "" {
		log.Info().Msg("automatic backups are disabled")

		return nil
	}

	s.entry, err = s.cron.AddFunc(spec, s.runBackup)
	if err != nil {
		return errors.Wrap(err, "failed to schedule automatic backup")
	}

	log.Info().Str("interval", interval).Msg("automatic backup scheduled")

	return nil
}

// RunOnce writes a single backup file and prunes expired ones. Returns
// the path of the written file.
func (s *Scheduler) RunOnce() (string, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o750); err != nil {
		return "", errors.Wrap(err, "failed to create backup directory")
	}

	name := s.cfg.Prefix + "_" + s.now().UTC().Format(time.DateOnly) + ".json"
	path := filepath.Join(s.cfg.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to create backup file")
	}

	if err := s.exchange.Backup(f); err != nil {
		_ = f.Close()

		return "", err
	}

	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "failed to close backup file")
	}

	if err := s.prune(); err != nil {
		return "", err
	}

	return path, nil
}

func (s *Scheduler) runBackup() {
	path, err := s.RunOnce()
	if err != nil {
		log.Error().Err(err).Msg("automatic backup failed")

		return
	}

	log.Info().Str("path", path).Msg("automatic backup written")
}

// prune removes backup files older than the configured retention.
func (s *Scheduler) prune() error {
	retention := s.state.Settings().Backup.Retention
	if retention <= 0 {
		return nil
	}

	cutoff := s.now().UTC().AddDate(0, 0, -retention)

	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		return errors.Wrap(err, "failed to read backup directory")
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), s.cfg.Prefix+"_") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.cfg.Dir, entry.Name())); err != nil {
				log.Warn().Err(err).Str("file", entry.Name()).Msg("failed to prune backup")
			}
		}
	}

	return nil
}

func cronSpec(interval string) (string, error) {
	switch interval {
	case IntervalDisabled, "":
		return "", nil
	case IntervalDaily:
		return "@daily", nil
	case IntervalWeekly:
		return "@weekly", nil
	case IntervalMonthly:
		return "@monthly", nil
	default:
		return "", errors.Wrapf(ErrUnknownInterval, "%q", interval)
	}
}
