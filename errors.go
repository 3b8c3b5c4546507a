// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

// ErrorInfo is the error passed to the Error callback when the failure
// is detected by the dispatcher itself rather than by a transport.
// Transport failures are passed to the Error callback as they are,
// typically as a *url.Error.
type ErrorInfo struct {
	Err     bool   `json:"error"`
	Message string `json:"message"`
}

// Error returns the message.
func (e ErrorInfo) Error() string {
	return "ajax: " + e.Message
}

// ErrUnavailable is passed to the Error callback when no transport
// can be acquired.
var ErrUnavailable error = ErrorInfo{Err: true, Message: "transport unavailable"}
