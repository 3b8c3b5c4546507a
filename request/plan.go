// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "ajax/request: nil context"
)

// A Plan contains a logical HTTP request ready for a transport to
// send.
//
// The field structure of a plan mirrors the client-side fields of the
// lower-level http.Request, except that the body is pre-buffered into
// a []byte. Like http.Request, a Plan has a context which controls the
// request and can be used to cancel it while it is in flight.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent.
	Header http.Header

	// Body is the pre-buffered request body to be sent. A nil or
	// empty body indicates no request body should be sent.
	Body []byte

	// Host optionally overrides the Host header to send. If empty, the
	// value of URL.Host will be sent.
	Host string

	// ctx allows the request to be cancelled. It should only be
	// modified by copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(method, url string, body interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, body)
}

// NewPlanWithContext returns a new Plan given a method, URL, and
// optional body.
//
// The method is normalized with NormalizeMethod. Parameter body may be
// any value accepted by BodyBytes. If body is a *Multipart, the plan's
// Content-Type header is set to the container's content type.
func NewPlanWithContext(ctx context.Context, method, url string, body interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !ValidMethod(method) {
		return nil, fmt.Errorf("ajax/request: invalid method %q", method)
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	u.Host = removeEmptyPort(u.Host)
	b, err := BodyBytes(body)
	if err != nil {
		return nil, err
	}
	p := &Plan{
		ctx:    ctx,
		Method: NormalizeMethod(method),
		URL:    u,
		Header: make(http.Header),
		Body:   b,
		Host:   u.Host,
	}
	if m, ok := body.(*Multipart); ok && m != nil {
		p.Header.Set("Content-Type", m.ContentType())
	}
	return p, nil
}

// Context returns the request plan's context. To change the context,
// use WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// AddCookie adds a cookie to the request. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field. That
// means all cookies, if any, are written into the same line,
// separated by semicolons.
func (p *Plan) AddCookie(c *http.Cookie) {
	c2 := &http.Cookie{Name: c.Name, Value: c.Value}
	s := c2.String()
	if h := p.Header.Get("Cookie"); h != "" {
		p.Header.Set("Cookie", h+"; "+s)
	} else {
		p.Header.Set("Cookie", s)
	}
}

// ToRequest creates an HTTP request corresponding to the given request
// plan. The context of the new request is set to ctx, which may not be
// nil.
func (p *Plan) ToRequest(ctx context.Context) *http.Request {
	r := template.WithContext(ctx)
	r.Method = p.Method
	r.URL = p.URL
	r.Header = p.Header
	if len(p.Body) > 0 {
		r.Body = ioutil.NopCloser(bytes.NewReader(p.Body))
		r.GetBody = func() (io.ReadCloser, error) {
			return ioutil.NopCloser(bytes.NewReader(p.Body)), nil
		}
		r.ContentLength = int64(len(p.Body))
	}
	r.Host = p.Host
	return r
}

// ValidMethod reports whether method is a valid HTTP method token as
// defined in https://tools.ietf.org/html/rfc7230#section-3.2.6. The
// empty string is valid because it is interpreted as GET.
func ValidMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

var normalMethods = []string{"DELETE", "GET", "HEAD", "OPTIONS", "POST", "PUT"}

// NormalizeMethod upper-cases method if it case-insensitively matches
// DELETE, GET, HEAD, OPTIONS, POST, or PUT. Any other method, including
// PATCH, is returned as is, matching the method normalization done by
// browsers.
func NormalizeMethod(method string) string {
	for _, m := range normalMethods {
		if strings.EqualFold(method, m) {
			return m
		}
	}
	return method
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
