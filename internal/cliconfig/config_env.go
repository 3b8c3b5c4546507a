// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cliconfig

import (
	"os"
	"strings"
)

// ApplyEnvConfig applies configuration from environment variables (AJAX_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
//
// AJAX_DATA holds key=value pairs separated by "&", and AJAX_HEADERS
// holds "Name: value" headers separated by newlines.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", os.Getenv("AJAX_URL"), &cfg.URL)
	s.setString("method", os.Getenv("AJAX_METHOD"), &cfg.Method)
	s.setString("content-type", os.Getenv("AJAX_CONTENT_TYPE"), &cfg.ContentType)
	s.setString("response-type", os.Getenv("AJAX_RESPONSE_TYPE"), &cfg.ResponseType)
	s.setString("log-level", os.Getenv("AJAX_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-file", os.Getenv("AJAX_LOG_FILE"), &cfg.LogFile)

	s.setStrings("data", split(os.Getenv("AJAX_DATA"), "&"), &cfg.Data)
	s.setStrings("header", split(os.Getenv("AJAX_HEADERS"), "\n"), &cfg.Headers)

	if err := s.setDuration("timeout", os.Getenv("AJAX_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	s.setBoolFromString("credentials", os.Getenv("AJAX_CREDENTIALS"), &cfg.Credentials)
	s.setBoolFromString("sync", os.Getenv("AJAX_SYNC"), &cfg.Sync)
	s.setBoolFromString("table", os.Getenv("AJAX_TABLE"), &cfg.Table)

	return nil
}

func split(s, sep string) []string {
	var parts []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
