// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// A File is a file-like value that can be placed in request Data. In a
// multipart body it becomes a file part; in a URL-encoded payload only
// its name is sent.
type File struct {
	// Name is the file name reported in the part's Content-Disposition.
	Name string
	// ContentType is the part's content type. If empty,
	// application/octet-stream is used.
	ContentType string
	// Content is the file content.
	Content []byte
}

// Multipart is an ordered multipart/form-data container. Entries are
// kept in the order they were appended, and appending a key that is
// already present adds a second entry rather than replacing the first.
//
// The zero value is an empty container ready to use. It chooses its
// boundary on first use, so it must not be encoded from more than one
// goroutine until Boundary has been called once. Containers returned by
// NewMultipart already have a boundary and may be encoded concurrently
// as long as no entries are appended.
type Multipart struct {
	entries  []Field
	boundary string
}

// NewMultipart returns a container holding every field of d, in order.
func NewMultipart(d Data) *Multipart {
	m := &Multipart{}
	for _, f := range d {
		m.Append(f.Key, f.Value)
	}
	m.Boundary()
	return m
}

// Append adds an entry to the end of the container.
func (m *Multipart) Append(key string, value interface{}) {
	m.entries = append(m.entries, Field{Key: key, Value: value})
}

// Entries returns a copy of the container's entries in order.
func (m *Multipart) Entries() []Field {
	e := make([]Field, len(m.entries))
	copy(e, m.entries)
	return e
}

// Len returns the number of entries in the container.
func (m *Multipart) Len() int {
	return len(m.entries)
}

// Boundary returns the boundary used when the container is encoded. A
// random boundary is chosen the first time Boundary is called unless
// one was set with SetBoundary.
func (m *Multipart) Boundary() string {
	if m.boundary == "" {
		m.boundary = multipart.NewWriter(ioutil.Discard).Boundary()
	}
	return m.boundary
}

// SetBoundary overrides the boundary. The boundary must follow the
// rules of RFC 2046, as enforced by multipart.Writer.SetBoundary.
func (m *Multipart) SetBoundary(boundary string) error {
	w := multipart.NewWriter(ioutil.Discard)
	if err := w.SetBoundary(boundary); err != nil {
		return err
	}
	m.boundary = boundary
	return nil
}

// ContentType returns the Content-Type header value for the encoded
// container, including the boundary parameter.
func (m *Multipart) ContentType() string {
	return "multipart/form-data; boundary=" + m.Boundary()
}

// Bytes encodes the container as a multipart/form-data body.
func (m *Multipart) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(m.Boundary()); err != nil {
		return nil, err
	}
	for _, e := range m.entries {
		if f, ok := e.Value.(*File); ok && f != nil {
			if err := writeFile(w, e.Key, f); err != nil {
				return nil, err
			}
			continue
		}
		if err := w.WriteField(e.Key, stringify(e.Value)); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, key string, f *File) error {
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(key), quoteEscaper.Replace(f.Name)))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Content)
	return err
}
