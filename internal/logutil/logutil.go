// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package logutil provides support for structured trace logging.
package logutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// LevelTrace is a logging level below slog.LevelDebug, used to report every
// transition of the parser.
const LevelTrace slog.Level = -8

// NewLogger returns a text logger writing to w at the given level. Records at
// LevelTrace are labelled TRACE, and source locations are reduced to the base
// name of the file.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				switch attr.Value.Any().(slog.Level) {
				case LevelTrace:
					attr.Value = slog.StringValue("TRACE")
				}
			case slog.SourceKey:
				source := attr.Value.Any().(*slog.Source)
				source.File = filepath.Base(source.File)
			}
			return attr
		},
	}))
}

// ParseLevel parses a level name. In addition to the names understood by
// slog ("debug", "info", "warn", "error"), it accepts "trace".
func ParseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return LevelTrace, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

// Trace logs msg with args to logger at LevelTrace, attributing the record to
// the caller of Trace. It is a no-op if logger is nil or the level is not
// enabled.
func Trace(logger *slog.Logger, msg string, args ...any) {
	ctx := context.Background()
	if logger == nil || !logger.Enabled(ctx, LevelTrace) {
		return
	}
	pc, _, _, _ := runtime.Caller(1)
	record := slog.NewRecord(time.Now(), LevelTrace, msg, pc)
	record.Add(args...)
	_ = logger.Handler().Handle(ctx, record) // a failed log write does not fail the caller
}
