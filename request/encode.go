// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"strings"
)

// MultipartFormData is the content type which, together with the POST
// method, selects the multipart payload representation.
const MultipartFormData = "multipart/form-data"

// A Payload is encoded request Data. Exactly one representation is
// set: Form is non-nil for a multipart payload, otherwise Query holds
// the URL-encoded string (which is empty if there was no data).
type Payload struct {
	// Form is the multipart container, or nil.
	Form *Multipart
	// Query is the URL-encoded data. It is only meaningful if Form is
	// nil.
	Query string
}

// IsMultipart reports whether p is a multipart payload.
func (p Payload) IsMultipart() bool {
	return p.Form != nil
}

// Body returns the payload in the form accepted by BodyBytes and by
// transports: the *Multipart container or the URL-encoded string.
func (p Payload) Body() interface{} {
	if p.Form != nil {
		return p.Form
	}
	return p.Query
}

// Encode encodes d for a request with the given method and content
// type.
//
// If contentType equals "multipart/form-data" and method equals "POST",
// both compared case-insensitively, the result is a multipart payload
// with one entry per field of d, in order, duplicates included.
// Otherwise the result is a URL-encoded payload: each key and value is
// escaped with EscapeComponent, joined by "=", and the pairs are joined
// by "&" in the order of d.
func Encode(method, contentType string, d Data) Payload {
	if strings.EqualFold(contentType, MultipartFormData) && strings.EqualFold(method, "POST") {
		return Payload{Form: NewMultipart(d)}
	}
	return Payload{Query: URLEncode(d)}
}

// URLEncode returns the URL-encoded form of d.
func URLEncode(d Data) string {
	var b strings.Builder
	for i, f := range d {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(EscapeComponent(f.Key))
		b.WriteByte('=')
		b.WriteString(EscapeComponent(stringify(f.Value)))
	}
	return b.String()
}

// JoinQuery appends the encoded query q to rawURL. The separator is "&"
// if rawURL already contains a "?", and "?" otherwise. If q is empty,
// rawURL is returned unchanged.
func JoinQuery(rawURL, q string) string {
	if q == "" {
		return rawURL
	}
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + q
	}
	return rawURL + "?" + q
}
