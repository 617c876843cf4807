// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jcheck/internal/escape"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added. The result is always accepted by Unquote,
// which returns src again provided src is valid UTF-8.
func Quote(src string) string { return string(escape.Quote(src)) }

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unlike a lenient decoder, Unquote applies the same rules as the Scanner: an
// invalid escape, an unpaired surrogate, or an unescaped control character is
// reported as a *SyntaxError. Whitespace around the value is not permitted.
func Unquote(src string) (string, error) {
	sc := NewScanner(strings.NewReader(src))
	if err := sc.Next(); err == io.EOF {
		return "", fmt.Errorf("unquote: %w", InputEndedEarly)
	} else if err != nil {
		return "", fmt.Errorf("unquote: %w", err)
	}
	tok := sc.Token()
	if tok.Kind != String {
		return "", fmt.Errorf("unquote: got %v, want string", tok.Kind)
	}
	if err := sc.Next(); err != io.EOF {
		return "", fmt.Errorf("unquote: %w", InputTooLong)
	}
	return tok.Text, nil
}
