// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"net/url"
	"sort"
)

// A Field is a single key/value entry of request Data.
//
// Value may be any value. Values are converted to strings with
// fmt.Sprint when encoded, except for *File values, which become file
// parts of a multipart body (and contribute their file name when URL
// encoded).
type Field struct {
	Key   string
	Value interface{}
}

// Data is the ordered request data sent with a request. Unlike a Go
// map, Data has a stable iteration order, and it may contain the same
// key more than once. Both properties are preserved by Encode.
//
// The zero value is empty Data ready to use.
type Data []Field

// Add appends the key/value pair to d. It never replaces an existing
// entry with the same key.
func (d *Data) Add(key string, value interface{}) {
	*d = append(*d, Field{Key: key, Value: value})
}

// Len returns the number of fields in d.
func (d Data) Len() int {
	return len(d)
}

// Clone returns a copy of d which shares no backing array with d. The
// values themselves are not deep copied. Clone of nil or empty Data
// returns empty, non-nil Data.
func (d Data) Clone() Data {
	c := make(Data, len(d))
	copy(c, d)
	return c
}

// Values builds Data from a map. Because Go maps have no order, the
// keys are sorted so the resulting encoding is deterministic.
func Values(m map[string]string) Data {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := make(Data, 0, len(keys))
	for _, k := range keys {
		d.Add(k, m[k])
	}
	return d
}

// FromURLValues builds Data from url.Values. Keys are sorted, and the
// values of each key keep their order.
func FromURLValues(v url.Values) Data {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var d Data
	for _, k := range keys {
		for _, s := range v[k] {
			d.Add(k, s)
		}
	}
	return d
}

func stringify(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case *File:
		if x == nil {
			return ""
		}
		return x.Name
	default:
		return fmt.Sprint(x)
	}
}
