// Package server holds the HTTP server configuration and response helpers.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure (port, API key) and the shared error
// responder that maps the store's typed errors onto HTTP statuses.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by feature handlers through RespondError.
package server
