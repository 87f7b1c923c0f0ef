// Package bootstrap runs a voxrelay binary: it applies and validates the
// typed config, initializes logging, starts registered components in order,
// waits for SIGINT/SIGTERM and shuts everything down in reverse.
package bootstrap
