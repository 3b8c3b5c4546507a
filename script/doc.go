// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package script implements the collaborators of script-tag ("jsonp")
requests: a Registry of named callbacks, an Injector which loads a
script from a URL, and Document, an Injector which keeps the loaded
script elements in an HTML document and evaluates JSONP bodies.

A JSONP response is a single call of a registered callback with a JSON
argument:

	_callback1600000000000({"ok":true});

Evaluate parses such a body, decodes the argument, and invokes the
callback registered under the name. The ajax package registers a
callback with RegisterUnique before injecting the script, and removes it
when the script has loaded.
*/
package script
