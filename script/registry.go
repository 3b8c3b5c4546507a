// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package script

import "sync"

// A Callback receives the decoded JSON argument of a JSONP call.
type Callback func(v interface{})

// A Registry is a namespace of callbacks reachable by name from loaded
// scripts. Implementations must be safe for concurrent use.
type Registry interface {
	// Register adds cb under name. It returns false, and changes
	// nothing, if name is already registered.
	Register(name string, cb Callback) bool
	// Unregister removes name. Removing an unknown name does nothing.
	Unregister(name string)
	// Lookup returns the callback registered under name.
	Lookup(name string) (Callback, bool)
	// Len returns the number of registered callbacks.
	Len() int
}

// DefaultRegistry is the process-wide registry used when no other
// registry is given.
var DefaultRegistry Registry = &Callbacks{}

// Callbacks is a mutex-guarded map implementing Registry. The zero
// value is an empty registry ready to use.
type Callbacks struct {
	mu sync.Mutex
	m  map[string]Callback
}

// Register implements Registry. It panics if cb is nil.
func (c *Callbacks) Register(name string, cb Callback) bool {
	if cb == nil {
		panic("ajax/script: nil callback")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.m[name]; ok {
		return false
	}
	if c.m == nil {
		c.m = make(map[string]Callback)
	}
	c.m[name] = cb
	return true
}

// Unregister implements Registry.
func (c *Callbacks) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, name)
}

// Lookup implements Registry.
func (c *Callbacks) Lookup(name string) (Callback, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cb, ok := c.m[name]
	return cb, ok
}

// Len implements Registry.
func (c *Callbacks) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
