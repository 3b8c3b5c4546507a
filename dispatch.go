// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"strings"
	"time"

	"github.com/gogama/ajax/loop"
	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/script"
	"github.com/gogama/ajax/transport"
	"github.com/rs/zerolog"
)

// An Acquirer obtains a Transport for one request, or returns nil if
// none is available. *transport.Acquirer and transport.AcquireFunc
// implement Acquirer.
type Acquirer interface {
	Acquire() transport.Transport
}

// A Dispatcher turns a Config into a request and wires the Config's
// callbacks to the request's life cycle. Its zero value is a valid
// configuration.
//
// The zero value Dispatcher acquires transports from
// transport.NewAcquirer, runs asynchronous callbacks on loop.Default,
// and injects script-tag requests into script.DefaultDocument, whose
// callbacks live in script.DefaultRegistry.
//
// A Dispatcher is safe for concurrent use by multiple goroutines.
type Dispatcher struct {
	// Acquirer supplies transports for standard requests. If nil,
	// transport.NewAcquirer(Loop, Logger) is used.
	Acquirer Acquirer
	// Registry holds the callbacks of script-tag requests. If nil,
	// script.DefaultRegistry is used.
	Registry script.Registry
	// Injector loads the scripts of script-tag requests. If nil,
	// script.DefaultDocument is used when Registry and Loop are also
	// nil, and otherwise a new script.Document over Registry and Loop.
	Injector script.Injector
	// Loop runs asynchronous callbacks. If nil, loop.Default is used.
	Loop *loop.Loop
	// Logger, if not nil, receives a debug record for each dispatch
	// and a warning for each dispatch which fails.
	Logger *zerolog.Logger
	// Now returns the current time, used to name script-tag
	// callbacks. If nil, time.Now is used.
	Now func() time.Time
}

// DefaultDispatcher is the Dispatcher used by the package-level
// functions.
var DefaultDispatcher = &Dispatcher{}

// Dispatch builds and sends the request described by cfg.
//
// The zero fields of cfg are replaced by defaults and the data is
// encoded. If ResponseType is "jsonp" and Method is GET (both compared
// case-insensitively) the request is made in script-tag mode: a
// uniquely named callback is registered, Before is called, a script
// whose URL carries the encoded data and a "callback" parameter naming
// the callback is injected, and After is called, all before Dispatch
// returns. When the script calls the callback, Success receives its
// argument. Script-tag requests return nil.
//
// Otherwise a transport is acquired, configured, and sent, and the
// transport is returned so that the caller may abort it. Before runs
// when the request leaves, Success when a response is loaded, Error if
// the exchange fails or times out, and After last in every case.
//
// If no transport can be acquired, Error receives ErrUnavailable. If
// the transport rejects the request, for example because of an invalid
// method or header, Error receives the transport's error. In both cases
// Dispatch returns nil.
func (d *Dispatcher) Dispatch(cfg Config) transport.Transport {
	c := cfg.normalize()
	payload := request.Encode(c.Method, c.ContentType, c.Data)

	if isScriptMode(&c) {
		d.dispatchScript(&c, payload)
		return nil
	}

	log := d.logger()
	t := d.acquirer().Acquire()
	if t == nil {
		log.Warn().Str("method", c.Method).Str("url", c.URL).Msg("transport unavailable")
		if c.Error != nil {
			c.Error(ErrUnavailable)
		}
		return nil
	}

	if err := send(t, &c, payload); err != nil {
		log.Warn().Err(err).Str("method", c.Method).Str("url", c.URL).Msg("request rejected")
		if c.Error != nil {
			c.Error(err)
		}
		return nil
	}

	log.Debug().
		Str("method", c.Method).
		Str("url", c.URL).
		Bool("sync", c.Sync).
		Bool("multipart", payload.IsMultipart()).
		Msg("dispatched")
	return t
}

func send(t transport.Transport, c *Config, p request.Payload) error {
	t.SetWithCredentials(c.Credentials)

	if c.Before != nil {
		t.OnReadyStateChange(func(s transport.ReadyState) {
			if s == transport.Unsent {
				c.Before(c.Data)
			}
		})
	}
	if c.After != nil {
		t.AddEventListener(transport.LoadEnd, transport.ListenerFunc(func(transport.Event, error) {
			c.After(c.Data)
		}))
	}
	if c.Error != nil {
		l := transport.ListenerFunc(func(_ transport.Event, err error) {
			c.Error(err)
		})
		t.AddEventListener(transport.Error, l)
		t.AddEventListener(transport.Timeout, l)
	}
	if c.Success != nil {
		t.AddEventListener(transport.Load, transport.ListenerFunc(func(transport.Event, error) {
			c.Success(t.Response())
		}))
	}

	t.SetResponseType(c.ResponseType)

	url := c.URL
	getLike := isGetLike(c.Method)
	if getLike {
		url = request.JoinQuery(url, p.Query)
	}
	if err := t.Open(c.Method, url, !c.Sync); err != nil {
		return err
	}
	t.SetTimeout(c.Timeout)

	if !p.IsMultipart() {
		if err := t.SetRequestHeader("Content-Type", c.ContentType); err != nil {
			return err
		}
	}
	for _, h := range c.Headers {
		if err := t.SetRequestHeader(h.Name, h.Value); err != nil {
			return err
		}
	}

	var body interface{}
	if !getLike {
		body = p.Body()
	}
	return t.Send(body)
}

func isScriptMode(c *Config) bool {
	return strings.EqualFold(c.ResponseType, ResponseJSONP) && strings.EqualFold(c.Method, "GET")
}

func isGetLike(method string) bool {
	return strings.EqualFold(method, "GET") || strings.EqualFold(method, "HEAD")
}

func (d *Dispatcher) acquirer() Acquirer {
	if d.Acquirer == nil {
		return transport.NewAcquirer(d.Loop, d.Logger)
	}
	return d.Acquirer
}

func (d *Dispatcher) logger() *zerolog.Logger {
	if d.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return d.Logger
}
