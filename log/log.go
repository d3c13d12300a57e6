/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package log

import (
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	debugLevel   = "debug"
	infoLevel    = "info"
	warningLevel = "warn"
	errorLevel   = "error"
	offLevel     = "off"
)

// New creates a go-kit logger with the given level and format
// ("logfmt" or "json"), writing to stderr.
func New(lv, format string) log.Logger {
	return NewWithWriter(lv, format, os.Stderr)
}

// NewWithWriter behaves as New writing to w.
func NewWithWriter(lv, format string, w io.Writer) log.Logger {
	var logger log.Logger
	var allow level.Option

	sw := log.NewSyncWriter(w)
	if format == "json" {
		logger = log.NewJSONLogger(sw)
	} else {
		logger = log.NewLogfmtLogger(sw)
	}
	switch lv {
	case debugLevel:
		allow = level.AllowDebug()
	case infoLevel:
		allow = level.AllowInfo()
	case warningLevel:
		allow = level.AllowWarn()
	case errorLevel:
		allow = level.AllowError()
	case offLevel:
		allow = level.AllowNone()
	default:
		allow = level.AllowAll()
	}
	return log.With(level.NewFilter(logger, allow), "ts", log.DefaultTimestampUTC)
}
