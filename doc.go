// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package ajax dispatches HTTP requests described by a declarative Config
and reports their progress through optional callbacks, in the manner of
a browser AJAX helper.

Describe the request and dispatch it:

	x := ajax.Dispatch(ajax.Config{
		URL:    "https://example.com/api",
		Method: "POST",
		Data:   request.Values(map[string]string{"a": "1 2", "b": "x&y"}),
		Success: func(resp interface{}) {
			fmt.Println(resp)
		},
		Error: func(err error) {
			log.Print(err)
		},
	})

Requests are asynchronous by default, and their callbacks run on an
event loop (package loop). Run the loop to deliver them:

	err := loop.Default.RunUntilIdle(ctx)

The returned transport may be aborted while the request is in flight:

	x.Abort()

Data is sent as a URL-encoded query string for GET and HEAD, as a
URL-encoded body for other methods, and as a multipart/form-data body
when the method is POST and the content type is multipart/form-data.

A GET whose response type is "jsonp" is made in script-tag mode: a
uniquely named callback is registered in a script.Registry, and a
script whose URL names the callback is injected with a script.Injector.
The script calls the callback with the response, which is passed to
Success.

For control over transports, callback registries, script injection,
the event loop, and logging, use a custom Dispatcher:

	d := &ajax.Dispatcher{
		Acquirer: &transport.Acquirer{
			Standard: func() (transport.Transport, error) {
				return transport.NewXHR(doer, l), nil
			},
		},
		Loop:   l,
		Logger: &logger,
	}
	d.Dispatch(cfg)

Package ajax provides a basic interface for dispatching (Sender) and
utility functions for working with a Sender (Get, Post, PostForm and
GetJSONP).
*/
package ajax
