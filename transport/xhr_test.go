// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"syscall"
	"testing"
	"testing/iotest"
	"time"

	"github.com/gogama/ajax/loop"
	"github.com/gogama/ajax/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestXHR(t *testing.T) {
	t.Run("sync", testXHRSync)
	t.Run("async", testXHRAsync)
	t.Run("http2", testXHRHTTP2)
	t.Run("multipart", testXHRMultipart)
	t.Run("timeout", testXHRTimeout)
	t.Run("abort", testXHRAbort)
	t.Run("network error", testXHRNetworkError)
	t.Run("body error", testXHRBodyError)
	t.Run("credentials", testXHRCredentials)
	t.Run("invalid state", testXHRInvalidState)
}

func TestURLErrorOp(t *testing.T) {
	assert.Equal(t, "Get", urlErrorOp(""))
	assert.Equal(t, "Get", urlErrorOp("GET"))
	assert.Equal(t, "Post", urlErrorOp("POST"))
	assert.Equal(t, "Propfind", urlErrorOp("PROPFIND"))
}

func testXHRSync(t *testing.T) {
	x := NewXHR(httpServer.Client(), nil)
	r := record(x)
	assert.Equal(t, Unsent, x.ReadyState())
	assert.Equal(t, time.Duration(0), x.Duration())

	require.NoError(t, x.Open("get", httpServer.URL+"/path?q=1", false))
	x.SetResponseType(ResponseJSON)
	require.NoError(t, x.SetRequestHeader("X-Foo", "bar"))
	require.NoError(t, x.SetRequestHeader("X-Foo", "baz"))
	require.NoError(t, x.Send("ignored for GET"))

	assert.Equal(t, []string{"Unsent", "HeadersReceived", "Done", "load", "loadend"}, r.trace())
	assert.Equal(t, []error{nil, nil, nil, nil, nil}, r.errs())
	assert.Equal(t, Done, x.ReadyState())
	assert.Equal(t, 200, x.Status())
	assert.Equal(t, "OK", x.StatusText())
	assert.Equal(t, "application/json", x.ResponseHeader("Content-Type"))
	assert.NotNil(t, x.ResponseHeaders())
	assert.NoError(t, x.Err())
	resp, ok := x.Response().(map[string]interface{})
	require.True(t, ok, "response must be decoded JSON")
	assert.Equal(t, "GET", resp["method"])
	assert.Equal(t, "/path?q=1", resp["url"])
	assert.Equal(t, "", resp["body"])
	header, ok := resp["header"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"bar", "baz"}, header["X-Foo"])
}

func testXHRAsync(t *testing.T) {
	l := loop.New()
	x := NewXHR(httpServer.Client(), l)
	r := record(x)

	require.NoError(t, x.Open("POST", httpServer.URL, true))
	require.NoError(t, x.SetRequestHeader("Content-Type", "application/x-www-form-urlencoded"))
	require.NoError(t, x.Send("a=1&b=2"))

	assert.Empty(t, r.trace(), "nothing may run before the loop runs")
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 1, l.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, l.RunUntilIdle(ctx))

	assert.Equal(t, []string{"Unsent", "HeadersReceived", "Done", "load", "loadend"}, r.trace())
	assert.Equal(t, 0, l.Pending())
	text, ok := x.Response().(string)
	require.True(t, ok, "default response type is text")
	assert.Equal(t, text, x.ResponseText())
	var e echo
	require.NoError(t, json.Unmarshal([]byte(text), &e))
	assert.Equal(t, "POST", e.Method)
	assert.Equal(t, "a=1&b=2", e.Body)
	assert.Equal(t, "application/x-www-form-urlencoded", e.ContentType)
}

func testXHRHTTP2(t *testing.T) {
	x := NewXHR(http2Server.Client(), nil)
	require.NoError(t, x.Open("GET", http2Server.URL, false))
	x.SetResponseType(ResponseJSON)
	require.NoError(t, x.Send(nil))
	resp, ok := x.Response().(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "HTTP/2.0", resp["proto"])
}

func testXHRMultipart(t *testing.T) {
	m := &request.Multipart{}
	require.NoError(t, m.SetBoundary("xhr-boundary"))
	m.Append("name", "value")
	m.Append("upload", &request.File{Name: "a.txt", Content: []byte("hello")})

	x := NewXHR(httpServer.Client(), nil)
	require.NoError(t, x.Open("POST", httpServer.URL, false))
	x.SetResponseType(ResponseJSON)
	require.NoError(t, x.Send(m))

	resp, ok := x.Response().(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "multipart/form-data; boundary=xhr-boundary", resp["contentType"])
	assert.Contains(t, resp["body"], `filename="a.txt"`)
	assert.Contains(t, resp["body"], "hello")
}

func testXHRTimeout(t *testing.T) {
	x := NewXHR(httpServer.Client(), nil)
	r := record(x)
	require.NoError(t, x.Open("GET", httpServer.URL, false))
	require.NoError(t, x.SetRequestHeader(instructionHeader, serverInstruction{
		HeaderPause: 500 * time.Millisecond,
		StatusCode:  200,
	}.String()))
	x.SetTimeout(50 * time.Millisecond)
	require.NoError(t, x.Send(nil))

	assert.Equal(t, []string{"Unsent", "Done", "timeout", "loadend"}, r.trace())
	require.Error(t, x.Err())
	assert.Equal(t, CauseTimeout, Classify(x.Err()))
	assert.Nil(t, x.Response())
	assert.Equal(t, 0, x.Status())
}

func testXHRAbort(t *testing.T) {
	started := make(chan struct{})
	d := newMockHTTPDoer(t)
	d.On("Do", mock.AnythingOfType("*http.Request")).
		Run(func(args mock.Arguments) {
			req := args.Get(0).(*http.Request)
			close(started)
			<-req.Context().Done()
		}).
		Return(nil, context.Canceled).
		Once()
	l := loop.New()
	x := NewXHR(d, l)
	r := record(x)
	x.Abort() // Not sent: no effect.

	require.NoError(t, x.Open("GET", "http://abort.test/", true))
	require.NoError(t, x.Send(nil))
	assert.Equal(t, 1, l.Drain())
	<-started
	x.Abort()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, l.RunUntilIdle(ctx))

	d.AssertExpectations(t)
	assert.Equal(t, []string{"Unsent", "Done", "abort", "loadend"}, r.trace())
	assert.Equal(t, CauseAborted, Classify(x.Err()))
	x.Abort() // Done: no effect.
	assert.Equal(t, Done, x.ReadyState())
}

func testXHRNetworkError(t *testing.T) {
	d := newMockHTTPDoer(t)
	d.On("Do", mock.AnythingOfType("*http.Request")).
		Return(nil, syscall.ECONNREFUSED).
		Once()
	x := NewXHR(d, nil)
	r := record(x)

	require.NoError(t, x.Open("POST", "http://refused.test/x", false))
	require.NoError(t, x.Send("body"))

	d.AssertExpectations(t)
	assert.Equal(t, []string{"Unsent", "Done", "error", "loadend"}, r.trace())
	errs := r.errs()
	require.Len(t, errs, 4)
	assert.Nil(t, errs[0])
	assert.Equal(t, x.Err(), errs[2])
	assert.Equal(t, x.Err(), errs[3])
	ue, ok := x.Err().(*url.Error)
	require.True(t, ok)
	assert.Equal(t, "Post", ue.Op)
	assert.Equal(t, "http://refused.test/x", ue.URL)
	assert.Equal(t, CauseConnRefused, Classify(x.Err()))
}

func testXHRBodyError(t *testing.T) {
	d := newMockHTTPDoer(t)
	d.On("Do", mock.AnythingOfType("*http.Request")).
		Return(&http.Response{
			StatusCode: 200,
			Header:     http.Header{},
			Body:       ioutil.NopCloser(iotest.ErrReader(errors.New("boom"))),
		}, nil).
		Once()
	x := NewXHR(d, nil)
	r := record(x)

	require.NoError(t, x.Open("GET", "http://body.test/", false))
	require.NoError(t, x.Send(nil))

	assert.Equal(t, []string{"Unsent", "HeadersReceived", "Done", "error", "loadend"}, r.trace())
	assert.EqualError(t, x.Err(), `Get "http://body.test/": boom`)
	assert.Equal(t, CauseOther, Classify(x.Err()))
	assert.Equal(t, 200, x.Status())
	assert.Nil(t, x.Response())
	assert.Equal(t, "", x.ResponseText())
}

func testXHRCredentials(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	send := func(credentials bool, i serverInstruction) echo {
		x := NewXHR(httpServer.Client(), nil)
		x.Jar = jar
		x.SetWithCredentials(credentials)
		require.NoError(t, x.Open("GET", httpServer.URL+"/cookie", false))
		require.NoError(t, x.SetRequestHeader(instructionHeader, i.String()))
		require.NoError(t, x.Send(nil))
		require.NoError(t, x.Err())
		var e echo
		require.NoError(t, json.Unmarshal([]byte(x.ResponseText()), &e))
		return e
	}

	send(false, serverInstruction{StatusCode: 200, SetCookie: "ignored"})
	assert.Equal(t, "", send(true, serverInstruction{StatusCode: 200, SetCookie: "abc"}).Cookie)
	assert.Equal(t, "sid=abc", send(true, serverInstruction{StatusCode: 200}).Cookie)
	assert.Equal(t, "", send(false, serverInstruction{StatusCode: 200}).Cookie)
}

func testXHRInvalidState(t *testing.T) {
	x := NewXHR(nil, nil)
	assert.Equal(t, ErrInvalidState, x.SetRequestHeader("A", "b"))
	assert.Equal(t, ErrInvalidState, x.Send(nil))
	assert.EqualError(t, x.Open("G T", "/", false), `ajax/transport: invalid method "G T"`)
	assert.Error(t, x.Open("GET", ":::", false))
	require.NoError(t, x.Open("GET", "/", false))
	assert.EqualError(t, x.SetRequestHeader("Bad Name", "v"), `ajax/transport: invalid header name "Bad Name"`)
	assert.EqualError(t, x.SetRequestHeader("Name", "v\r\nInjected: 1"), `ajax/transport: invalid value for header "Name"`)
	assert.Panics(t, func() { x.OnReadyStateChange(nil) })
	assert.Panics(t, func() { x.AddEventListener(Load, nil) })
	assert.Panics(t, func() { x.AddEventListener(Event(99), ListenerFunc(func(Event, error) {})) })
	require.NoError(t, x.Send(map[string]int{}), "body is ignored for GET")
	assert.Equal(t, ErrInvalidState, x.Send(nil))
	assert.Equal(t, ErrInvalidState, x.Open("GET", "/", false))

	y := NewXHR(nil, nil)
	require.NoError(t, y.Open("POST", "/", false))
	assert.Error(t, y.Send(map[string]int{}))
	assert.Equal(t, Unsent, y.ReadyState())
}

type recorder struct {
	mu     sync.Mutex
	names  []string
	errors []error
}

func record(x *XHR) *recorder {
	r := &recorder{}
	x.OnReadyStateChange(func(s ReadyState) {
		r.add(s.String(), nil)
	})
	for _, evt := range Events() {
		x.AddEventListener(evt, ListenerFunc(func(evt Event, err error) {
			r.add(evt.Name(), err)
		}))
	}
	return r
}

func (r *recorder) add(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
	r.errors = append(r.errors, err)
}

func (r *recorder) trace() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}

func (r *recorder) errs() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errors...)
}

type mockHTTPDoer struct {
	mock.Mock
}

func newMockHTTPDoer(t *testing.T) *mockHTTPDoer {
	m := &mockHTTPDoer{}
	m.Test(t)
	return m
}

func (m *mockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	err := args.Error(1)
	if resp, ok := args.Get(0).(*http.Response); ok {
		return resp, err
	}
	return nil, err
}
