// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"net/url"

	"github.com/gogama/ajax/request"
	"github.com/gogama/ajax/transport"
)

// Sender is the interface that wraps the basic Dispatch method.
//
// Dispatch sends the request described by a Config and returns the
// in-flight transport, or nil. Dispatcher implements the Sender
// interface, and any other Sender implementation must behave
// substantially the same as Dispatcher.Dispatch.
//
// Any Sender can be used for the Get, Post, PostForm, and GetJSONP
// functions.
type Sender interface {
	Dispatch(cfg Config) transport.Transport
}

// Dispatch sends the request described by cfg using DefaultDispatcher.
func Dispatch(cfg Config) transport.Transport {
	return DefaultDispatcher.Dispatch(cfg)
}

// Get uses the specified Sender to issue an asynchronous GET to the
// specified URL. Either callback may be nil.
//
// To set data, headers, or other options, build a Config and use
// s.Dispatch.
func Get(s Sender, url string, success func(interface{}), fail func(error)) transport.Transport {
	return s.Dispatch(Config{
		URL:     url,
		Method:  "GET",
		Success: success,
		Error:   fail,
	})
}

// Post uses the specified Sender to issue an asynchronous POST of data
// to the specified URL. The data is URL-encoded, unless contentType is
// multipart/form-data, in which case it is sent as a multipart body.
// Either callback may be nil.
func Post(s Sender, url, contentType string, data request.Data, success func(interface{}), fail func(error)) transport.Transport {
	return s.Dispatch(Config{
		URL:         url,
		Method:      "POST",
		ContentType: contentType,
		Data:        data,
		Success:     success,
		Error:       fail,
	})
}

// PostForm uses the specified Sender to issue an asynchronous POST to
// the specified URL, with data's keys and values URL-encoded as the
// request body. Keys are sent in sorted order.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
func PostForm(s Sender, url string, data url.Values, success func(interface{}), fail func(error)) transport.Transport {
	return Post(s, url, DefaultContentType, request.FromURLValues(data), success, fail)
}

// GetJSONP uses the specified Sender to issue a script-tag GET to the
// specified URL. Success, if not nil, receives the argument the script
// passes to its callback. Script-tag requests cannot be aborted.
func GetJSONP(s Sender, url string, data request.Data, success func(interface{}), fail func(error)) {
	s.Dispatch(Config{
		URL:          url,
		Method:       "GET",
		ResponseType: ResponseJSONP,
		Data:         data,
		Success:      success,
		Error:        fail,
	})
}

// Get issues an asynchronous GET with d. See the package-level Get.
func (d *Dispatcher) Get(url string, success func(interface{}), fail func(error)) transport.Transport {
	return Get(d, url, success, fail)
}

// Post issues an asynchronous POST with d. See the package-level Post.
func (d *Dispatcher) Post(url, contentType string, data request.Data, success func(interface{}), fail func(error)) transport.Transport {
	return Post(d, url, contentType, data, success, fail)
}

// PostForm issues an asynchronous form POST with d. See the
// package-level PostForm.
func (d *Dispatcher) PostForm(url string, data url.Values, success func(interface{}), fail func(error)) transport.Transport {
	return PostForm(d, url, data, success, fail)
}

// GetJSONP issues a script-tag GET with d. See the package-level
// GetJSONP.
func (d *Dispatcher) GetJSONP(url string, data request.Data, success func(interface{}), fail func(error)) {
	GetJSONP(d, url, data, success, fail)
}
