package endpoint

import (
	"sync/atomic"
	"time"
)

type entry struct {
	addr      Address
	updatedAt time.Time
}

// Cache holds the last successfully fetched address. The zero value is
// an empty cache ready for use.
type Cache struct {
	current atomic.Pointer[entry]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Current returns the cached address, or false if none was ever stored.
func (c *Cache) Current() (Address, bool) {
	e := c.current.Load()
	if e == nil {
		return "", false
	}
	return e.addr, true
}

// UpdatedAt returns when the address was last stored.
func (c *Cache) UpdatedAt() time.Time {
	if e := c.current.Load(); e != nil {
		return e.updatedAt
	}
	return time.Time{}
}

// Store replaces the cached address and reports whether it changed.
func (c *Cache) Store(addr Address) bool {
	prev := c.current.Swap(&entry{addr: addr, updatedAt: time.Now()})
	return prev == nil || prev.addr != addr
}
