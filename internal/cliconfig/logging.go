// Copyright 2026 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var logger zerolog.Logger

func init() {
	logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// Logger returns the package logger, which writes to standard error
// and is used until the configuration is resolved.
func Logger() zerolog.Logger {
	return logger
}

// NewLogger returns a logger writing to w at the configured level. If
// a log file is configured, records are also written to the file,
// which is rotated by size. The returned io.Closer closes the file.
func NewLogger(cfg Config, w io.Writer) (zerolog.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			LocalTime:  true,
		}
		out = zerolog.MultiLevelWriter(out, lj)
		closer = lj
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
