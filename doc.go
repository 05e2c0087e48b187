// Package main provides the entry point for the crmlite application.
// It initializes and runs a small single-user CRM built on the Fiber
// framework that records customers, tracks an aggregate product counter
// and renders summary statistics and reports through a web interface.
// All data is persisted as named JSON blobs in a local SQLite file,
// mirroring the in-memory domain state after every mutation.
package main
