// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotJSONP is returned by Evaluate when the script body is not a
	// single callback invocation.
	ErrNotJSONP = errors.New("ajax/script: not a JSONP response")
	// ErrUnknownCallback is returned, wrapped, by Evaluate when the
	// invoked callback is not registered.
	ErrUnknownCallback = errors.New("ajax/script: unknown callback")
)

// jsonpCall matches `name(args);`, optionally preceded by the `/**/`
// comment and the `typeof name === 'function' &&` guard that many
// servers emit.
var jsonpCall = regexp.MustCompile(`^\s*(?:/\*\*/\s*)?` +
	`(?:typeof\s+[A-Za-z_$][\w$]*\s*===?\s*['"]function['"]\s*&&\s*)?` +
	`([A-Za-z_$][\w$]*)\s*\(([\s\S]*)\)\s*;?\s*$`)

// Evaluate runs the JSONP script body src: it decodes the JSON argument
// of the call and invokes the callback registered in r under the
// called name. A call without an argument passes nil.
func Evaluate(r Registry, src []byte) error {
	m := jsonpCall.FindSubmatch(src)
	if m == nil {
		return ErrNotJSONP
	}
	name := string(m[1])
	cb, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCallback, name)
	}
	var v interface{}
	if arg := bytes.TrimSpace(m[2]); len(arg) > 0 {
		if err := json.Unmarshal(arg, &v); err != nil {
			return fmt.Errorf("ajax/script: bad argument to %s: %w", name, err)
		}
	}
	cb(v)
	return nil
}
