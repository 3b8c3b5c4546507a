// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package script

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/gogama/ajax/loop"
	"github.com/gogama/ajax/transport"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// An Injector loads a script from a URL.
type Injector interface {
	// Inject starts loading the script at src and returns without
	// waiting for it. If loading cannot start, Inject returns an error
	// and done is never called. Otherwise done, if not nil, is called
	// exactly once after the script has run or failed to load, with
	// nil on success.
	Inject(src string, done func(error)) error
}

// DefaultDocument is the Document used when no other injector is
// given. It evaluates scripts against DefaultRegistry on loop.Default.
var DefaultDocument = NewDocument(DefaultRegistry, loop.Default)

const blank = "<html><head></head><body></body></html>"

var pendingScripts = cascadia.MustCompile("script[src]")

// Document is an Injector backed by an HTML document. Each injected
// script is appended to the document body as a <script src> element.
// The source is fetched on a separate goroutine. Once it arrives, a
// task posted to Loop evaluates it against Registry with Evaluate,
// removes the element, and calls done.
//
// The zero value is usable: it fetches with http.DefaultClient and
// uses DefaultRegistry and loop.Default.
type Document struct {
	// Registry holds the callbacks scripts may call.
	Registry Registry
	// Doer fetches script sources.
	Doer transport.HTTPDoer
	// Loop runs script evaluation and the done callbacks.
	Loop *loop.Loop
	// Logger, if not nil, receives a record for each loaded script.
	Logger *zerolog.Logger

	mu   sync.Mutex
	root *html.Node
	body *html.Node
}

// NewDocument returns an empty document evaluating scripts against r
// on l.
func NewDocument(r Registry, l *loop.Loop) *Document {
	return &Document{Registry: r, Loop: l}
}

// Inject implements Injector. The source must be an absolute http or
// https URL.
func (d *Document) Inject(src string, done func(error)) error {
	u, err := url.Parse(src)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("ajax/script: cannot load script from %q", src)
	}

	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "src", Val: src}},
	}
	d.mu.Lock()
	d.init()
	d.body.AppendChild(n)
	d.mu.Unlock()

	l := d.loop()
	l.Hold()
	go func() {
		b, err := d.fetch(u)
		l.Post(func() {
			if err == nil {
				err = Evaluate(d.registry(), b)
			}
			d.remove(n)
			d.log(src, err)
			if done != nil {
				done(err)
			}
		})
		l.Release()
	}()
	return nil
}

func (d *Document) fetch(u *url.URL) ([]byte, error) {
	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	var doer transport.HTTPDoer = http.DefaultClient
	if d.Doer != nil {
		doer = d.Doer
	}
	resp, err := doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ajax/script: %s: status %d", u, resp.StatusCode)
	}
	return ioutil.ReadAll(resp.Body)
}

// Scripts returns the sources of the scripts which are still loading,
// in injection order.
func (d *Document) Scripts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.init()
	var srcs []string
	for _, n := range cascadia.QueryAll(d.root, pendingScripts) {
		srcs = append(srcs, htmlquery.SelectAttr(n, "src"))
	}
	return srcs
}

// Render writes the document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.init()
	return html.Render(w, d.root)
}

func (d *Document) init() {
	if d.root != nil {
		return
	}
	root, err := htmlquery.Parse(strings.NewReader(blank))
	if err != nil {
		panic("ajax/script: " + err.Error())
	}
	d.root = root
	d.body = htmlquery.FindOne(root, "//body")
}

func (d *Document) remove(n *html.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func (d *Document) log(src string, err error) {
	if d.Logger == nil {
		return
	}
	if err != nil {
		d.Logger.Warn().Err(err).Str("src", src).Msg("script load failed")
		return
	}
	d.Logger.Debug().Str("src", src).Msg("script loaded")
}

func (d *Document) registry() Registry {
	if d.Registry == nil {
		return DefaultRegistry
	}
	return d.Registry
}

func (d *Document) loop() *loop.Loop {
	if d.Loop == nil {
		return loop.Default
	}
	return d.Loop
}
