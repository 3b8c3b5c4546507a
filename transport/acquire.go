// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"reflect"

	"github.com/gogama/ajax/loop"
	"github.com/rs/zerolog"
)

// A Constructor creates a Transport. It reports failure by returning
// an error or by panicking.
type Constructor func() (Transport, error)

// An Acquirer obtains a usable Transport from an ordered list of
// candidate constructors.
//
// The zero value has no candidates and always fails to acquire.
type Acquirer struct {
	// CrossDomain is the preferred cross-origin capable constructor.
	// If it exists and succeeds its result is used.
	CrossDomain Constructor
	// Standard is the standard constructor, tried next.
	Standard Constructor
	// Legacy holds the fallback constructors, tried in order.
	Legacy []Constructor
}

// Acquire returns the first Transport successfully constructed by
// CrossDomain, Standard, or Legacy, in that order. A constructor which
// returns an error, returns a nil Transport (including a nil pointer
// held in the interface), or panics is skipped.
// Acquire returns nil if no candidate succeeds. Failures are not
// logged or reported.
func (a *Acquirer) Acquire() Transport {
	if t := attempt(a.CrossDomain); t != nil {
		return t
	}
	if t := attempt(a.Standard); t != nil {
		return t
	}
	for _, c := range a.Legacy {
		if t := attempt(c); t != nil {
			return t
		}
	}
	return nil
}

func attempt(c Constructor) (t Transport) {
	if c == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			t = nil
		}
	}()
	t, err := c()
	if err != nil || isNil(t) {
		return nil
	}
	return t
}

// isNil reports whether t is nil or holds a nil pointer, such as a
// constructor returning (*XHR)(nil).
func isNil(t Transport) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// The AcquireFunc type is an adapter to allow the use of ordinary
// functions as transport acquirers.
type AcquireFunc func() Transport

// Acquire calls f().
func (f AcquireFunc) Acquire() Transport {
	return f()
}

// NewAcquirer returns an Acquirer whose Standard constructor builds an
// XHR over the shared HTTP/2-capable doer and whose only Legacy
// constructor builds an XHR over the shared HTTP/1.1 doer. Both use
// DefaultJar, deliver asynchronous callbacks on l, and log to logger,
// which may be nil.
func NewAcquirer(l *loop.Loop, logger *zerolog.Logger) *Acquirer {
	return &Acquirer{
		Standard: func() (Transport, error) {
			d, err := HTTP2Doer()
			if err != nil {
				return nil, err
			}
			return newXHR(d, l, logger), nil
		},
		Legacy: []Constructor{
			func() (Transport, error) {
				return newXHR(HTTP1Doer(), l, logger), nil
			},
		},
	}
}

func newXHR(d HTTPDoer, l *loop.Loop, logger *zerolog.Logger) *XHR {
	x := NewXHR(d, l)
	x.Jar = DefaultJar()
	x.Logger = logger
	return x
}
