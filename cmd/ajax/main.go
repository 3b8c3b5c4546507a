// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command ajax sends one request through the ajax dispatcher and
// prints the response.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/gogama/ajax/internal/cliconfig"
	"github.com/gogama/ajax/internal/watch"
	"github.com/gogama/ajax/transport"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
)

var exampleUsage = strings.TrimSpace(`
  ajax --url https://example.com/api --data q=go --data page=2
  ajax --url https://example.com/form --method POST --content-type multipart/form-data --data name=gopher
  ajax --url https://example.com/feed --response-type jsonp --data q=go
  ajax --config request.toml --watch --table
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	err := newRootCmd().Execute()
	transport.CloseIdleConnections()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:          "ajax",
		Short:        "Send an AJAX-style request and print the response",
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgPath != "" && !cliconfig.FileExists(cfgPath) {
				return fmt.Errorf("config file %s does not exist", cfgPath)
			}

			base := cfg
			if err := cliconfig.Resolve(&cfg, cfgPath, changed); err != nil {
				return err
			}

			log, closer, err := cliconfig.NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if !cfg.Watch {
				return run(ctx, cfg, out, log)
			}
			if cfgPath == "" {
				return fmt.Errorf("--watch requires --config")
			}

			if err := run(ctx, cfg, out, log); err != nil {
				log.Error().Err(err).Msg("request failed")
			}

			changes := make(chan struct{}, 1)
			w := watch.New(cfgPath, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})
			w.Logger = &log
			errc := make(chan error, 1)
			go func() { errc <- w.Run(ctx) }()

			for {
				select {
				case <-ctx.Done():
					return nil
				case err := <-errc:
					return fmt.Errorf("watch %s: %w", cfgPath, err)
				case <-changes:
					next := base
					if err := cliconfig.Resolve(&next, cfgPath, changed); err != nil {
						log.Error().Err(err).Msg("reload config")
						continue
					}
					log.Info().Str("path", cfgPath).Msg("config changed")
					if err := run(ctx, next, out, log); err != nil {
						log.Error().Err(err).Msg("request failed")
					}
				}
			}
		},
	}

	f := root.Flags()
	f.StringVarP(&cfgPath, "config", "c", "", "request file (.toml, .yaml or .yml)")
	f.StringVarP(&cfg.URL, "url", "u", cfg.URL, "request URL")
	f.StringVarP(&cfg.Method, "method", "X", cfg.Method, "HTTP method")
	f.StringVar(&cfg.ContentType, "content-type", cfg.ContentType, "request content type")
	f.StringVar(&cfg.ResponseType, "response-type", cfg.ResponseType, "text, json, arraybuffer, blob, document or jsonp")
	f.StringArrayVarP(&cfg.Data, "data", "d", cfg.Data, "request data as key=value (repeatable)")
	f.StringArrayVarP(&cfg.Headers, "header", "H", cfg.Headers, "request header as 'Name: value' (repeatable)")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout (0 for none)")
	f.BoolVar(&cfg.Credentials, "credentials", cfg.Credentials, "send and store cookies")
	f.BoolVar(&cfg.Sync, "sync", cfg.Sync, "send synchronously")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	f.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also log to this file, rotated by size")
	f.BoolVar(&cfg.Table, "table", cfg.Table, "print status and headers as a table")
	f.BoolVarP(&cfg.Watch, "watch", "w", cfg.Watch, "resend whenever the request file changes")

	return root
}
