// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

// A Listener handles the occurrence of an event on a Transport. The
// error is always nil for Load.
type Listener interface {
	Handle(evt Event, err error)
}

// The ListenerFunc type is an adapter to allow the use of ordinary
// functions as event listeners.
type ListenerFunc func(Event, error)

// Handle calls f(evt, err).
func (f ListenerFunc) Handle(evt Event, err error) {
	f(evt, err)
}

type listenerGroup struct {
	listeners [][]Listener
}

func (g *listenerGroup) add(evt Event, l Listener) {
	if l == nil {
		panic("ajax/transport: nil listener")
	}
	if evt < 0 || int(evt) >= numEvents {
		panic("ajax/transport: unknown event")
	}

	if g.listeners == nil {
		g.listeners = make([][]Listener, numEvents)
	}

	g.listeners[evt] = append(g.listeners[evt], l)
}

// snapshot returns the listeners for evt at the time of the call, so
// that listeners added while firing do not run for the current event.
func (g *listenerGroup) snapshot(evt Event) []Listener {
	i := int(evt)
	if i >= len(g.listeners) {
		return nil
	}
	chain := make([]Listener, len(g.listeners[i]))
	copy(chain, g.listeners[i])
	return chain
}

func run(chain []Listener, evt Event, err error) {
	for _, l := range chain {
		l.Handle(evt, err)
	}
}
