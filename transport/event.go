// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

// An Event identifies the event type when installing or running a
// Listener on a Transport.
type Event int

const (
	// Load identifies the event that occurs when a response has been
	// received and its body read. It fires regardless of the HTTP
	// status code.
	Load Event = iota
	// Error identifies the event that occurs when the exchange failed
	// for a reason other than a timeout or an abort, for example a
	// network error. The listener receives the error.
	Error
	// Timeout identifies the event that occurs when the exchange did
	// not complete within the transport's timeout. The listener
	// receives the timeout error.
	Timeout
	// Abort identifies the event that occurs when the exchange was
	// cancelled with Abort.
	Abort
	// LoadEnd identifies the event that occurs after every terminal
	// event (Load, Error, Timeout or Abort). It always fires last and
	// exactly once per sent transport. The listener receives the same
	// error, if any, as the terminal event.
	LoadEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"load",
	"error",
	"timeout",
	"abort",
	"loadend",
}

// Events returns a slice containing all events which a Transport can
// fire.
func Events() []Event {
	return []Event{
		Load,
		Error,
		Timeout,
		Abort,
		LoadEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
