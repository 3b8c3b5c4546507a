// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the types that turn declarative request data
into something a transport can send: Data (ordered key/value request
data), Payload (the encoded form of Data), Multipart (the multipart
container used for form uploads), and Plan (a logical HTTP request that
can be converted into an http.Request).

Encode chooses the payload representation. A POST whose content type is
multipart/form-data gets a Multipart container; every other request gets
a URL-encoded string:

	d := request.Data{}
	d.Add("a", "1 2")
	d.Add("b", "x&y")
	p := request.Encode("POST", "application/x-www-form-urlencoded", d)
	fmt.Println(p.Query) // a=1%202&b=x%26y

Keys and values are escaped with EscapeComponent, which uses the same
alphabet as the ECMAScript encodeURIComponent function rather than the
form encoding of url.QueryEscape, so a space becomes %20, not +.

A Plan mirrors the client-side fields of http.Request, with the body
pre-buffered into a []byte:

	p, err := request.NewPlan("GET", request.JoinQuery("/api", q), nil)
	...
	r := p.ToRequest(ctx)
*/
package request
