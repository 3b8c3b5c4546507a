// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"encoding/json"

	"golang.org/x/net/html"
)

// Response types understood by XHR.SetResponseType. They match the
// values of the browser XMLHttpRequest responseType property. Any other
// value, including the empty string, is treated as ResponseText.
const (
	ResponseText        = "text"
	ResponseJSON        = "json"
	ResponseArrayBuffer = "arraybuffer"
	ResponseBlob        = "blob"
	ResponseDocument    = "document"
)

// decodeResponse interprets a response body according to the response
// type. Like a browser, a body which cannot be interpreted as the
// requested type yields a nil response rather than an error.
//
//	text (default)     string
//	json               value decoded by encoding/json
//	arraybuffer, blob  []byte
//	document           *html.Node
func decodeResponse(responseType string, body []byte) interface{} {
	switch responseType {
	case ResponseJSON:
		var v interface{}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil
		}
		return v
	case ResponseArrayBuffer, ResponseBlob:
		return body
	case ResponseDocument:
		n, err := html.Parse(bytes.NewReader(body))
		if err != nil {
			return nil
		}
		return n
	default:
		return string(body)
	}
}
