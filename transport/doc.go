// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport defines the Transport capability used by the ajax
dispatcher, provides XHR, an XMLHttpRequest-like Transport built on any
HTTPDoer (such as *http.Client), and provides Acquirer, which constructs
a usable Transport from an ordered list of candidates.

An XHR is configured and sent in the same order as a browser
XMLHttpRequest:

	x := transport.NewXHR(http.DefaultClient, l)
	x.AddEventListener(transport.Load, transport.ListenerFunc(
		func(_ transport.Event, _ error) {
			fmt.Println(x.Status(), x.Response())
		}))
	if err := x.Open("GET", "https://example.com/api?q=1", true); err != nil {
		...
	}
	x.SetTimeout(5 * time.Second)
	if err := x.Send(nil); err != nil {
		...
	}

An asynchronous XHR never invokes listeners from the goroutine doing
network I/O. Every readiness report and event is posted to the XHR's
loop.Loop and runs when the loop is run.

Every sent XHR ends with exactly one of the terminal events Load, Error,
Timeout or Abort, followed by LoadEnd.
*/
package transport
