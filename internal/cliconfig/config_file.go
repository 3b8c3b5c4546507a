// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cliconfig

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config for request files. Durations are strings,
// and booleans are pointers so that an absent key is distinguishable
// from false.
type FileConfig struct {
	URL          string   `toml:"url" yaml:"url"`
	Method       string   `toml:"method" yaml:"method"`
	ContentType  string   `toml:"content_type" yaml:"content_type"`
	ResponseType string   `toml:"response_type" yaml:"response_type"`
	Data         []string `toml:"data" yaml:"data"`
	Headers      []string `toml:"headers" yaml:"headers"`
	Timeout      string   `toml:"timeout" yaml:"timeout"`
	Credentials  *bool    `toml:"credentials" yaml:"credentials"`
	Sync         *bool    `toml:"sync" yaml:"sync"`
	LogLevel     string   `toml:"log_level" yaml:"log_level"`
	LogFile      string   `toml:"log_file" yaml:"log_file"`
	Table        *bool    `toml:"table" yaml:"table"`
}

// LoadFileConfig reads and parses a request file. Files ending in .yaml
// or .yml are parsed as YAML, anything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fc)
	default:
		err = toml.Unmarshal(b, &fc)
	}
	if err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("url", fc.URL, &cfg.URL)
	s.setString("method", fc.Method, &cfg.Method)
	s.setString("content-type", fc.ContentType, &cfg.ContentType)
	s.setString("response-type", fc.ResponseType, &cfg.ResponseType)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-file", fc.LogFile, &cfg.LogFile)

	s.setStrings("data", fc.Data, &cfg.Data)
	s.setStrings("header", fc.Headers, &cfg.Headers)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}

	s.setBool("credentials", fc.Credentials, &cfg.Credentials)
	s.setBool("sync", fc.Sync, &cfg.Sync)
	s.setBool("table", fc.Table, &cfg.Table)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
