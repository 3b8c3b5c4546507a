// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gogama/ajax/loop"
	"github.com/gogama/ajax/request"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"
)

// XHR is a Transport with the semantics of a browser XMLHttpRequest,
// built on an HTTPDoer. Its zero value is usable: it sends with
// http.DefaultClient and delivers asynchronous callbacks on
// loop.Default.
//
// XHR reads and buffers the entire response body, and interprets it
// according to the response type set with SetResponseType (see the
// Response* constants).
//
// In asynchronous mode Send returns immediately. The readiness report
// Unsent is posted to the loop, and when it runs the exchange starts on
// a new goroutine. When the exchange ends, the remaining readiness
// reports and events are posted to the loop as a single task, in the
// order HeadersReceived (only if a response arrived), Done, terminal
// event, LoadEnd. In synchronous mode all of these happen, in the same
// order, before Send returns.
//
// An XHR is for one exchange only. The methods may be called from
// multiple goroutines, but listeners should be installed before Send.
type XHR struct {
	// Doer sends the request. If Doer is nil, http.DefaultClient from
	// the standard net/http package is used.
	Doer HTTPDoer
	// Jar, if not nil, supplies the cookies sent with the request and
	// receives the cookies set by the response, but only if
	// credentials are enabled with SetWithCredentials.
	Jar http.CookieJar
	// Loop receives the readiness reports and events of asynchronous
	// exchanges. If Loop is nil, loop.Default is used.
	Loop *loop.Loop
	// Logger, if not nil, receives a debug record for each completed
	// exchange.
	Logger *zerolog.Logger

	mu           sync.Mutex
	state        ReadyState
	opened       bool
	method       string
	url          string
	async        bool
	header       http.Header
	responseType string
	timeout      time.Duration
	credentials  bool
	readyFuncs   []func(ReadyState)
	listeners    listenerGroup
	cancel       context.CancelFunc
	aborted      bool

	status     int
	respHeader http.Header
	body       []byte
	response   interface{}
	err        error
	start, end time.Time
}

var _ Transport = (*XHR)(nil)

// NewXHR returns a new XHR which sends requests with doer and delivers
// asynchronous callbacks on l.
func NewXHR(doer HTTPDoer, l *loop.Loop) *XHR {
	return &XHR{Doer: doer, Loop: l}
}

// Open sets the request method and URL. The method is normalized with
// request.NormalizeMethod. If async is false, Send blocks until the
// exchange is over and every listener has run.
//
// Open returns an error if the method is not a valid HTTP token, the
// URL cannot be parsed, or the XHR was already sent.
func (x *XHR) Open(method, rawURL string, async bool) error {
	if !request.ValidMethod(method) {
		return fmt.Errorf("ajax/transport: invalid method %q", method)
	}
	if _, err := url.Parse(rawURL); err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if x.state != Unsent {
		return ErrInvalidState
	}
	x.method = request.NormalizeMethod(method)
	x.url = rawURL
	x.async = async
	x.header = make(http.Header)
	x.opened = true
	return nil
}

// SetRequestHeader adds a request header. A name which is already set
// gets a second value.
func (x *XHR) SetRequestHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("ajax/transport: invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("ajax/transport: invalid value for header %q", name)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	if !x.opened || x.state != Unsent {
		return ErrInvalidState
	}
	x.header.Add(name, value)
	return nil
}

// SetResponseType sets the response type. See the Response* constants.
func (x *XHR) SetResponseType(responseType string) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.responseType = responseType
}

// SetTimeout sets the timeout for the whole exchange, including reading
// the response body. Zero or a negative value means no timeout.
func (x *XHR) SetTimeout(d time.Duration) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.timeout = d
}

// SetWithCredentials sets whether the XHR's Jar is consulted.
func (x *XHR) SetWithCredentials(b bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.credentials = b
}

// OnReadyStateChange registers f to receive readiness reports.
func (x *XHR) OnReadyStateChange(f func(ReadyState)) {
	if f == nil {
		panic("ajax/transport: nil ready state function")
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	x.readyFuncs = append(x.readyFuncs, f)
}

// AddEventListener adds l to the end of the listener chain for evt.
func (x *XHR) AddEventListener(evt Event, l Listener) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.listeners.add(evt, l)
}

// Send sends the request. The body is ignored for GET and HEAD, and
// otherwise may be any value accepted by request.BodyBytes. If body is
// a *request.Multipart and no Content-Type header was set, the
// container's content type, including its boundary, is sent.
//
// Send returns an error if the XHR is not open, was already sent, or
// the body cannot be read. Failures of the exchange itself are never
// returned by Send: they are reported to the Error, Timeout and Abort
// listeners.
func (x *XHR) Send(body interface{}) error {
	x.mu.Lock()
	if !x.opened || x.state != Unsent {
		x.mu.Unlock()
		return ErrInvalidState
	}
	if x.method == "GET" || x.method == "HEAD" {
		body = nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	p, err := request.NewPlanWithContext(ctx, x.method, x.url, body)
	if err != nil {
		x.mu.Unlock()
		cancel()
		return err
	}
	h := x.header.Clone()
	if ct := p.Header.Get("Content-Type"); ct != "" && h.Get("Content-Type") == "" {
		h.Set("Content-Type", ct)
	}
	p.Header = h
	x.state = Sent
	x.cancel = cancel
	async := x.async
	x.mu.Unlock()

	if !async {
		x.notify(Unsent)
		x.exchange(p, false)
		return nil
	}

	l := x.loop()
	l.Hold()
	l.Post(func() {
		x.notify(Unsent)
		go x.exchange(p, true)
	})
	return nil
}

// Abort cancels the exchange if it is in flight. The XHR then fires
// Abort and LoadEnd. Abort does nothing if the XHR was not sent or is
// already done.
func (x *XHR) Abort() {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.state != Sent {
		return
	}
	x.aborted = true
	x.cancel()
}

func (x *XHR) exchange(p *request.Plan, async bool) {
	x.mu.Lock()
	timeout, credentials, jar, responseType := x.timeout, x.credentials, x.Jar, x.responseType
	x.start = time.Now()
	x.mu.Unlock()

	ctx := p.Context()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	useJar := credentials && jar != nil
	if useJar {
		for _, c := range jar.Cookies(p.URL) {
			p.AddCookie(c)
		}
	}

	var status int
	var header http.Header
	var body []byte
	var response interface{}
	resp, err := x.doer().Do(p.ToRequest(ctx))
	if err == nil {
		status, header = resp.StatusCode, resp.Header
		if useJar {
			if rc := resp.Cookies(); len(rc) > 0 {
				jar.SetCookies(p.URL, rc)
			}
		}
		body, err = readBody(resp)
	}

	x.mu.Lock()
	aborted := x.aborted
	x.mu.Unlock()

	cause := CauseNone
	if err != nil {
		err = urlErrorWrap(p, err)
		cause = Classify(err)
		if aborted {
			cause = CauseAborted
		}
		body = nil
	} else {
		response = decodeResponse(responseType, body)
	}

	d := time.Since(x.startTime())
	x.log(p, status, cause, err, d)

	finish := func() {
		x.mu.Lock()
		x.status, x.respHeader, x.body, x.response, x.err = status, header, body, response, err
		x.end = time.Now()
		x.mu.Unlock()
		if resp != nil {
			x.transition(HeadersReceived)
		}
		x.transition(Done)
		x.fire(cause.Event(), err)
		x.fire(LoadEnd, err)
	}

	if !async {
		finish()
		return
	}

	l := x.loop()
	l.Post(finish)
	l.Release()
}

func readBody(resp *http.Response) ([]byte, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	return ioutil.ReadAll(resp.Body)
}

func (x *XHR) transition(s ReadyState) {
	x.mu.Lock()
	x.state = s
	x.mu.Unlock()
	x.notify(s)
}

func (x *XHR) notify(s ReadyState) {
	x.mu.Lock()
	fs := make([]func(ReadyState), len(x.readyFuncs))
	copy(fs, x.readyFuncs)
	x.mu.Unlock()
	for _, f := range fs {
		f(s)
	}
}

func (x *XHR) fire(evt Event, err error) {
	x.mu.Lock()
	chain := x.listeners.snapshot(evt)
	x.mu.Unlock()
	run(chain, evt, err)
}

func (x *XHR) log(p *request.Plan, status int, cause Cause, err error, d time.Duration) {
	if x.Logger == nil {
		return
	}
	e := x.Logger.Debug()
	if err != nil {
		e = e.Err(err)
	}
	e.Str("method", p.Method).
		Str("url", p.URL.String()).
		Int("status", status).
		Stringer("cause", cause).
		Dur("duration", d).
		Msg("exchange complete")
}

// ReadyState returns the current ready state.
func (x *XHR) ReadyState() ReadyState {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state
}

// Status returns the HTTP status code of the response, or 0 if there
// is no response.
func (x *XHR) Status() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.status
}

// StatusText returns the standard text for the status code.
func (x *XHR) StatusText() string {
	return http.StatusText(x.Status())
}

// ResponseHeader returns the first value of the named response header.
func (x *XHR) ResponseHeader(name string) string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.respHeader.Get(name)
}

// ResponseHeaders returns all response headers, or nil if there is no
// response.
func (x *XHR) ResponseHeaders() http.Header {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.respHeader
}

// Response returns the response body interpreted according to the
// response type. It is nil until the exchange ends with Load, and nil
// if the body cannot be interpreted as the requested type.
func (x *XHR) Response() interface{} {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.response
}

// ResponseText returns the raw response body as a string.
func (x *XHR) ResponseText() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return string(x.body)
}

// Err returns the error the exchange ended with, if any. Any returned
// error is of type *url.Error.
func (x *XHR) Err() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.err
}

// Duration returns the duration of the exchange, or zero if it has not
// ended.
func (x *XHR) Duration() time.Duration {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.end.IsZero() {
		return 0
	}
	return x.end.Sub(x.start)
}

func (x *XHR) startTime() time.Time {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.start
}

func (x *XHR) doer() HTTPDoer {
	if x.Doer == nil {
		return http.DefaultClient
	}
	return x.Doer
}

func (x *XHR) loop() *loop.Loop {
	if x.Loop == nil {
		return loop.Default
	}
	return x.Loop
}

func urlErrorWrap(p *request.Plan, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(p.Method),
		URL: p.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
