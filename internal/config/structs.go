package config

import (
	"github.com/crmlite/crmlite/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	Title     string
	Store     Store
	Log       logger.Log
	Webserver Webserver
	Backup    Backup
}

// Store holds the local blob store configuration.
type Store struct {
	Path string // path to the sqlite file holding the data blobs
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool   // enable static file browsing (for development purposes only)
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}

// Backup holds the automatic backup settings.
type Backup struct {
	Dir    string // directory scheduled backups are written to
	Prefix string // filename prefix for scheduled backups
}
