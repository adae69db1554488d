package server

import "time"

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second

	// Opening a sqlite roster source must not hang startup.
	providerOpenTimeout = 5 * time.Second
)

// shutdownTimeout and rosterLoadTimeout remain vars for tests to override.
var (
	shutdownTimeout   = 10 * time.Second
	rosterLoadTimeout = 30 * time.Second
)
