// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"bytes"
	"io"
	"strings"
)

// Validate reports whether r contains exactly one valid JSON value,
// optionally surrounded by whitespace. It returns nil if so; otherwise the
// error describes the first violation. No tree is constructed.
func Validate(r io.Reader, opts *Options) error { return NewStream(r, opts).Parse(nil) }

// ValidateBytes is Validate on the contents of data.
func ValidateBytes(data []byte, opts *Options) error {
	return Validate(bytes.NewReader(data), opts)
}

// ValidateString is Validate on the contents of s.
func ValidateString(s string, opts *Options) error {
	return Validate(strings.NewReader(s), opts)
}
