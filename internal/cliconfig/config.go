// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cliconfig resolves the configuration of the ajax command from
// defaults, a TOML or YAML request file, AJAX_* environment variables,
// and command line flags, in increasing order of precedence.
package cliconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gogama/ajax"
	"github.com/gogama/ajax/request"
	"github.com/rs/zerolog"
)

// Config holds the configuration of one ajax command run.
type Config struct {
	URL          string
	Method       string
	ContentType  string
	ResponseType string
	Data         []string // key=value
	Headers      []string // Name: value
	Timeout      time.Duration
	Credentials  bool
	Sync         bool

	LogLevel string
	LogFile  string
	Table    bool
	Watch    bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Method:       ajax.DefaultMethod,
		ContentType:  ajax.DefaultContentType,
		ResponseType: ajax.DefaultResponseType,
		Timeout:      30 * time.Second,
		LogLevel:     "info",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("url is required")
	}
	if c.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Request converts the configuration into an ajax.Config without
// callbacks.
func (c *Config) Request() (ajax.Config, error) {
	var d request.Data
	for _, kv := range c.Data {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return ajax.Config{}, fmt.Errorf("data %q: want key=value", kv)
		}
		d.Add(k, v)
	}
	var hs []ajax.Header
	for _, h := range c.Headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok {
			return ajax.Config{}, fmt.Errorf("header %q: want Name: value", h)
		}
		hs = append(hs, ajax.Header{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	return ajax.Config{
		URL:          c.URL,
		Method:       c.Method,
		ContentType:  c.ContentType,
		ResponseType: c.ResponseType,
		Data:         d,
		Sync:         c.Sync,
		Timeout:      c.Timeout,
		Credentials:  c.Credentials,
		Headers:      hs,
	}, nil
}

// Resolve applies the request file at path, if path is not empty, and
// then the environment to cfg, leaving the values of changed flags
// alone, and validates the result.
func Resolve(cfg *Config, path string, changed map[string]bool) error {
	if path != "" {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}
	return cfg.Validate()
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setStrings replaces a list if the new list is not empty and flag not changed.
func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
