// Package api holds the HTTP handlers of the relay and the registry
// service.
package api
