// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"crypto/tls"
	"net"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/publicsuffix"
)

var (
	h2Once sync.Once
	h2Doer *http.Client
	h2Err  error

	h1Once sync.Once
	h1Doer *http.Client

	jarOnce sync.Once
	jar     http.CookieJar
)

// HTTP2Doer returns the shared HTTPDoer which negotiates HTTP/2 over
// TLS, using golang.org/x/net/http2, and falls back to HTTP/1.1. It
// returns an error if HTTP/2 cannot be configured.
func HTTP2Doer() (HTTPDoer, error) {
	h2Once.Do(func() {
		t := newTransport()
		if _, err := http2.ConfigureTransports(t); err != nil {
			h2Err = err
			return
		}
		h2Doer = &http.Client{Transport: t}
	})
	if h2Err != nil {
		return nil, h2Err
	}
	return h2Doer, nil
}

// HTTP1Doer returns the shared HTTPDoer which only speaks HTTP/1.1.
func HTTP1Doer() HTTPDoer {
	h1Once.Do(func() {
		t := newTransport()
		t.TLSNextProto = make(map[string]func(string, *tls.Conn) http.RoundTripper)
		h1Doer = &http.Client{Transport: t}
	})
	return h1Doer
}

// DefaultJar returns the shared cookie jar used by the transports that
// NewAcquirer constructs. Cookie domains are checked against the
// public suffix list.
func DefaultJar() http.CookieJar {
	jarOnce.Do(func() {
		// cookiejar.New never returns a non-nil error.
		jar, _ = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	})
	return jar
}

// CloseIdleConnections closes the idle connections of the shared
// doers which have been created.
func CloseIdleConnections() {
	for _, d := range []*http.Client{h2Doer, h1Doer} {
		if d != nil {
			d.CloseIdleConnections()
		}
	}
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
