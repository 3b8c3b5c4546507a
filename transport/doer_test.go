// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTP2Doer(t *testing.T) {
	d1, err := HTTP2Doer()
	require.NoError(t, err)
	d2, err := HTTP2Doer()
	require.NoError(t, err)
	assert.Same(t, d1, d2)
	c, ok := d1.(*http.Client)
	require.True(t, ok)
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Contains(t, tr.TLSNextProto, "h2")
}

func TestHTTP1Doer(t *testing.T) {
	d := HTTP1Doer()
	assert.Same(t, d, HTTP1Doer())
	c, ok := d.(*http.Client)
	require.True(t, ok)
	tr, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, tr.TLSNextProto)
	assert.Empty(t, tr.TLSNextProto)

	x := NewXHR(d, nil)
	require.NoError(t, x.Open("GET", httpServer.URL, false))
	require.NoError(t, x.Send(nil))
	var e echo
	require.NoError(t, json.Unmarshal([]byte(x.ResponseText()), &e))
	assert.Equal(t, "HTTP/1.1", e.Proto)
	CloseIdleConnections()
}

func TestDefaultJar(t *testing.T) {
	assert.NotNil(t, DefaultJar())
	assert.Equal(t, DefaultJar(), DefaultJar())
}
