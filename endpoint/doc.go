// Package endpoint keeps the last known upstream address in memory and
// refreshes it from the registry in the background.
//
// Request handlers read the address with Cache.Current, which never
// blocks. A Refresher is the only writer; a failed refresh leaves the
// previous address in place.
package endpoint
