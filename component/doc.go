// Package component defines lifecycle-managed parts of a service (registry
// connections, the endpoint refresher, the HTTP server) and an ordered
// registry that starts them in order and stops them in reverse.
package component
