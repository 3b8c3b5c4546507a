// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package script

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NamePrefix starts every callback name produced by Name.
const NamePrefix = "_callback"

// Name returns the time-based callback name for now: NamePrefix
// followed by the Unix time in milliseconds.
func Name(now time.Time) string {
	return NamePrefix + strconv.FormatInt(now.UnixNano()/int64(time.Millisecond), 10)
}

// RegisterUnique registers cb in r under the name Name(now) and returns
// the name. If the name is taken, for example by a request dispatched
// in the same millisecond, a random suffix is appended until the name
// is unique. Every returned name is a valid JavaScript identifier.
func RegisterUnique(r Registry, now time.Time, cb Callback) string {
	name := Name(now)
	if r.Register(name, cb) {
		return name
	}
	for {
		n := name + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")
		if r.Register(n, cb) {
			return n
		}
	}
}
