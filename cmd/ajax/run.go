// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/internal/cliconfig"
	"github.com/gogama/ajax/loop"
	"github.com/gogama/ajax/script"
	"github.com/gogama/ajax/transport"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// run dispatches one request and waits for its callbacks.
func run(ctx context.Context, cfg cliconfig.Config, out io.Writer, log zerolog.Logger) error {
	rc, err := cfg.Request()
	if err != nil {
		return err
	}

	l := loop.New()
	d := &ajax.Dispatcher{
		Acquirer: transport.NewAcquirer(l, &log),
		Registry: &script.Callbacks{},
		Loop:     l,
		Logger:   &log,
	}

	var (
		failure  error
		response interface{}
		loaded   bool
	)
	rc.Success = func(v interface{}) {
		response = v
		loaded = true
	}
	rc.Error = func(err error) { failure = err }

	t := d.Dispatch(rc)
	if err := l.RunUntilIdle(ctx); err != nil {
		if t != nil {
			t.Abort()
			l.Drain()
		}
		return err
	}
	if failure != nil {
		return failure
	}
	if !loaded {
		return fmt.Errorf("no response from %s", cfg.URL)
	}

	if x, ok := t.(*transport.XHR); ok && cfg.Table {
		if err := printTable(out, x); err != nil {
			return err
		}
	}
	return printResponse(out, response)
}

func printTable(w io.Writer, x *transport.XHR) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Field", "Value"})
	if err := table.Append([]string{"Status", strconv.Itoa(x.Status()) + " " + x.StatusText()}); err != nil {
		return err
	}
	if err := table.Append([]string{"Duration", x.Duration().String()}); err != nil {
		return err
	}
	h := x.ResponseHeaders()
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := table.Append([]string{name, strings.Join(h[name], ", ")}); err != nil {
			return err
		}
	}
	return table.Render()
}

func printResponse(w io.Writer, v interface{}) error {
	switch r := v.(type) {
	case nil:
		return nil
	case string:
		_, err := io.WriteString(w, r)
		return err
	case []byte:
		_, err := w.Write(r)
		return err
	case *html.Node:
		return html.Render(w, r)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
}
