// Package version carries build information for the voxrelay binaries.
//
// Values are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/voxrelay/version.Version=1.2.0" ./cmd/voxrelay
//
// Anything left unset falls back to the module's embedded VCS metadata.
package version
