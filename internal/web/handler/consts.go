package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACSFatalLogMsg is used if app or cfg or state var pointer is nil.
	ErrNilACSFatalLogMsg = "app, cfg or state is nil"

	// QueryError and QuerySuccess carry one-shot status messages across
	// redirects.
	QueryError   = "error"
	QuerySuccess = "success"
)
