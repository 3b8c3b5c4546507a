// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

var httpServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var http2Server = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))

func TestMain(m *testing.M) {
	httpServer.Start()
	http2Server.EnableHTTP2 = true
	http2Server.StartTLS()
	code := m.Run()
	httpServer.Close()
	http2Server.Close()
	os.Exit(code)
}

// instructionHeader carries the JSON-encoded serverInstruction so that
// any method, including GET and HEAD, can be instructed.
const instructionHeader = "X-Instruction"

type serverInstruction struct {
	HeaderPause time.Duration
	StatusCode  int
	ContentType string
	Body        string
	SetCookie   string
}

func (i serverInstruction) String() string {
	b, err := json.Marshal(i)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// echo is the response body written when the instruction has no Body.
type echo struct {
	Method      string              `json:"method"`
	Proto       string              `json:"proto"`
	URL         string              `json:"url"`
	ContentType string              `json:"contentType"`
	Header      map[string][]string `json:"header"`
	Body        string              `json:"body"`
	Cookie      string              `json:"cookie"`
}

func serverHandler(w http.ResponseWriter, req *http.Request) {
	i := serverInstruction{StatusCode: 200}
	if s := req.Header.Get(instructionHeader); s != "" {
		if err := json.Unmarshal([]byte(s), &i); err != nil {
			w.WriteHeader(400)
			_, _ = io.WriteString(w, fmt.Sprintf("bad instruction: %s", err.Error()))
			return
		}
	}

	b, err := ioutil.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		w.WriteHeader(400)
		return
	}

	time.Sleep(i.HeaderPause)

	if i.SetCookie != "" {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: i.SetCookie, Path: "/"})
	}

	body := []byte(i.Body)
	contentType := i.ContentType
	if i.Body == "" {
		body, err = json.Marshal(echo{
			Method:      req.Method,
			Proto:       req.Proto,
			URL:         req.URL.String(),
			ContentType: req.Header.Get("Content-Type"),
			Header:      req.Header,
			Body:        string(b),
			Cookie:      req.Header.Get("Cookie"),
		})
		if err != nil {
			panic(err)
		}
		contentType = "application/json"
	}
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(i.StatusCode)
	_, _ = w.Write(body)
}
