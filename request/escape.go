// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "strings"

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s using the alphabet of the
// ECMAScript encodeURIComponent function: ASCII letters, digits, and
// the marks - _ . ! ~ * ' ( ) are left alone, and every other byte of
// the UTF-8 encoding of s is written as %XX with upper-case hex digits.
//
// Note the differences from url.QueryEscape, which encodes a space as
// "+" and escapes the marks ! ' ( ) *.
func EscapeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
