// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"net/http"
	"time"
)

// ErrInvalidState is returned when a Transport method is called at the
// wrong point in its life cycle, for example SetRequestHeader before
// Open or Send on an already sent transport.
var ErrInvalidState = errors.New("ajax/transport: invalid state")

// A Transport is the platform capability performing one network
// exchange. It is configured, opened, and sent exactly once.
//
// The methods mirror those of a browser XMLHttpRequest: Open, Send,
// SetRequestHeader, a settable response type, timeout and credentials
// flag, a readiness observation hook, and event listeners.
type Transport interface {
	// Open sets the method and URL of the request and whether Send
	// should return before the exchange is complete.
	Open(method, url string, async bool) error
	// SetRequestHeader adds a request header. It may only be called
	// after Open and before Send. Repeated names are added, not
	// replaced.
	SetRequestHeader(name, value string) error
	// SetResponseType sets how the response body is interpreted by
	// Response.
	SetResponseType(responseType string)
	// SetTimeout sets the time allowed for the whole exchange. Zero
	// means no timeout.
	SetTimeout(d time.Duration)
	// SetWithCredentials sets whether cookies are sent and stored.
	SetWithCredentials(b bool)
	// OnReadyStateChange registers a function to be called with each
	// readiness report.
	OnReadyStateChange(f func(ReadyState))
	// AddEventListener registers a listener for an event.
	AddEventListener(evt Event, l Listener)
	// Send sends the request with an optional body.
	Send(body interface{}) error
	// Response returns the interpreted response body, or nil.
	Response() interface{}
	// Abort cancels the exchange if it is in flight.
	Abort()
}

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	Do(r *http.Request) (*http.Response, error)
}

// A ReadyState is a step of a transport's life cycle.
type ReadyState int

const (
	// Unsent is the state of a transport which has been created and
	// possibly configured and opened, but not sent. A transport
	// reports Unsent to its readiness observers immediately before the
	// request leaves.
	Unsent ReadyState = iota
	// Sent is the state of a transport whose request is in flight.
	Sent
	// HeadersReceived is reported when a response was received.
	HeadersReceived
	// Done is reported when the exchange is over, successfully or not.
	Done
)

var readyStateNames = []string{"Unsent", "Sent", "HeadersReceived", "Done"}

// String returns the name of the ready state.
func (s ReadyState) String() string {
	if s < 0 || int(s) >= len(readyStateNames) {
		return "ReadyState(?)"
	}
	return readyStateNames[s]
}
