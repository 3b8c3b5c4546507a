// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package ajax

import (
	"testing"
	"time"

	"github.com/gogama/ajax/transport"
	"github.com/stretchr/testify/mock"
)

type mockTransport struct {
	mock.Mock
	ready     []func(transport.ReadyState)
	listeners map[transport.Event][]transport.Listener
}

func newMockTransport(t *testing.T) *mockTransport {
	m := &mockTransport{listeners: make(map[transport.Event][]transport.Listener)}
	m.Test(t)
	return m
}

// expect sets up the calls every standard dispatch makes with default
// credentials and response type.
func (m *mockTransport) expect(method, url string, async bool, timeout time.Duration) {
	m.On("SetWithCredentials", false).Once()
	m.On("SetResponseType", "text").Once()
	m.On("Open", method, url, async).Return(nil).Once()
	m.On("SetTimeout", timeout).Once()
}

func (m *mockTransport) Open(method, url string, async bool) error {
	args := m.Called(method, url, async)
	return args.Error(0)
}

func (m *mockTransport) SetRequestHeader(name, value string) error {
	args := m.Called(name, value)
	return args.Error(0)
}

func (m *mockTransport) SetResponseType(responseType string) {
	m.Called(responseType)
}

func (m *mockTransport) SetTimeout(d time.Duration) {
	m.Called(d)
}

func (m *mockTransport) SetWithCredentials(b bool) {
	m.Called(b)
}

func (m *mockTransport) OnReadyStateChange(f func(transport.ReadyState)) {
	m.ready = append(m.ready, f)
}

func (m *mockTransport) AddEventListener(evt transport.Event, l transport.Listener) {
	m.listeners[evt] = append(m.listeners[evt], l)
}

func (m *mockTransport) Send(body interface{}) error {
	args := m.Called(body)
	return args.Error(0)
}

func (m *mockTransport) Response() interface{} {
	args := m.Called()
	return args.Get(0)
}

func (m *mockTransport) Abort() {
	m.Called()
}

func (m *mockTransport) report(s transport.ReadyState) {
	for _, f := range m.ready {
		f(s)
	}
}

func (m *mockTransport) fire(evt transport.Event, err error) {
	for _, l := range m.listeners[evt] {
		l.Handle(evt, err)
	}
}

// headers returns the SetRequestHeader calls in order, as "Name: value".
func (m *mockTransport) headers() []string {
	var h []string
	for _, c := range m.Calls {
		if c.Method == "SetRequestHeader" {
			h = append(h, c.Arguments.String(0)+": "+c.Arguments.String(1))
		}
	}
	return h
}

func acquire(t transport.Transport) transport.AcquireFunc {
	return func() transport.Transport {
		return t
	}
}

type mockInjector struct {
	mock.Mock
}

func newMockInjector(t *testing.T) *mockInjector {
	m := &mockInjector{}
	m.Test(t)
	return m
}

func (m *mockInjector) Inject(src string, done func(error)) error {
	args := m.Called(src, done)
	return args.Error(0)
}

type mockSender struct {
	mock.Mock
}

func newMockSender(t *testing.T) *mockSender {
	m := &mockSender{}
	m.Test(t)
	return m
}

func (m *mockSender) Dispatch(cfg Config) transport.Transport {
	args := m.Called(cfg)
	if t, ok := args.Get(0).(transport.Transport); ok {
		return t
	}
	return nil
}
