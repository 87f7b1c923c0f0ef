// Package logger provides structured logging for voxrelay using zerolog.
//
// Loggers are scoped per service and per component and accept structured
// fields as maps:
//
//	log := logger.New(&cfg.Logging, "voxrelay").WithComponent("endpoint")
//	log.Warn("refresh failed", logger.ErrorFields("registry.get", err))
package logger
