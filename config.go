// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"time"

	"github.com/gogama/ajax/request"
)

// Defaults applied to the zero fields of a Config.
const (
	DefaultURL          = "/"
	DefaultMethod       = "GET"
	DefaultContentType  = "application/x-www-form-urlencoded"
	DefaultResponseType = "text"
)

// ResponseJSONP is the response type which, together with the GET
// method, selects script-tag mode.
const ResponseJSONP = "jsonp"

// A Header is one request header. Headers are applied in order, and a
// name which appears twice is sent twice.
type Header struct {
	Name  string
	Value string
}

// A Config describes one request declaratively. The zero value is a
// GET of "/" with no data and no callbacks.
//
// Dispatch works on a normalized copy of the Config, so a Config may be
// reused, or changed, as soon as Dispatch returns.
type Config struct {
	// URL is the target URL. If empty, DefaultURL is used.
	URL string
	// Method is the HTTP method, matched case-insensitively. If empty,
	// DefaultMethod is used.
	Method string
	// ContentType is sent as the Content-Type header unless the data is
	// sent as multipart/form-data, in which case the transport sends
	// the multipart content type with its boundary. If empty,
	// DefaultContentType is used.
	ContentType string
	// ResponseType selects how the response is interpreted. If empty,
	// DefaultResponseType is used. ResponseJSONP with the GET method
	// selects script-tag mode.
	ResponseType string
	// Data is the request data. For GET and HEAD it is appended to the
	// URL as a query string, otherwise it is sent as the body.
	Data request.Data
	// Sync makes the transport block in Send until the exchange is
	// over. By default requests are asynchronous.
	Sync bool
	// Timeout is the time allowed for the exchange. Zero means no
	// timeout, and a negative value is treated as zero.
	Timeout time.Duration
	// Credentials makes the transport send and store cookies.
	Credentials bool
	// Headers are applied, in order, after Content-Type.
	Headers []Header

	// Before, if not nil, is called with the data immediately before
	// the request leaves.
	Before func(data request.Data)
	// After, if not nil, is called with the data when the exchange is
	// over, whatever the outcome. In script-tag mode it is called as
	// soon as the script has been injected.
	After func(data request.Data)
	// Success, if not nil, is called with the interpreted response
	// when a response was received, regardless of its status code.
	Success func(response interface{})
	// Error, if not nil, is called with the error when the exchange
	// fails or times out, or when no transport is available.
	Error func(err error)
}

func (c *Config) normalize() Config {
	n := *c
	if n.URL == "" {
		n.URL = DefaultURL
	}
	if n.Method == "" {
		n.Method = DefaultMethod
	}
	if n.ContentType == "" {
		n.ContentType = DefaultContentType
	}
	if n.ResponseType == "" {
		n.ResponseType = DefaultResponseType
	}
	if n.Timeout < 0 {
		n.Timeout = 0
	}
	n.Data = c.Data.Clone()
	n.Headers = make([]Header, len(c.Headers))
	copy(n.Headers, c.Headers)
	return n
}
