// Package registry reads and writes the single upstream endpoint URL kept
// in a shared store.
//
// The store holds exactly one value with last-write-wins semantics. The
// backend is chosen by name through a factory table that backend packages
// fill from their init functions:
//
//	import _ "github.com/kbukum/voxrelay/registry/mongo"
//
//	comp := registry.NewComponent(cfg.Registry, log)
//	url, err := comp.Get(ctx)
package registry
