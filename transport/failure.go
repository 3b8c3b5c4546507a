// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"syscall"
)

// A Cause is the failure category of an exchange error, as reported by
// Classify. The cause decides which terminal event a transport fires.
type Cause int

const (
	// CauseNone is the cause of a nil error.
	CauseNone Cause = iota
	// CauseTimeout indicates the transport's timeout elapsed, or the
	// error or any of its wrapped causes has a Timeout() function that
	// reports true.
	CauseTimeout
	// CauseAborted indicates the exchange was cancelled, which is the
	// case if the error or any of its wrapped causes is
	// context.Canceled.
	CauseAborted
	// CauseConnRefused indicates the remote host refused the
	// connection (syscall.ECONNREFUSED).
	CauseConnRefused
	// CauseConnReset indicates the remote host reset a previously
	// active connection (syscall.ECONNRESET).
	CauseConnReset
	// CauseOther is any other error.
	CauseOther
)

var causeNames = []string{"none", "timeout", "aborted", "conn-refused", "conn-reset", "other"}

// String returns a short name for the cause.
func (c Cause) String() string {
	if c < 0 || int(c) >= len(causeNames) {
		return "unknown"
	}
	return causeNames[c]
}

// Event returns the terminal event fired for an exchange ending with
// the cause: Load for CauseNone, Timeout for CauseTimeout, Abort for
// CauseAborted, and Error for everything else.
func (c Cause) Event() Event {
	switch c {
	case CauseNone:
		return Load
	case CauseTimeout:
		return Timeout
	case CauseAborted:
		return Abort
	default:
		return Error
	}
}

// Classify returns the failure category of err. Classify looks at the
// wrapped causes contained within err, not just err itself. A timeout
// takes precedence over every other category.
func Classify(err error) Cause {
	if err == nil {
		return CauseNone
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return CauseTimeout
	}

	if errors.Is(err, context.Canceled) {
		return CauseAborted
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if errno == syscall.ECONNRESET {
			return CauseConnReset
		} else if errno == syscall.ECONNREFUSED {
			return CauseConnRefused
		}
	}

	return CauseOther
}

type hasTimeout interface {
	Timeout() bool
}
