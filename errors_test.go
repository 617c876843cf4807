// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jcheck"
)

func TestErrorKind(t *testing.T) {
	lexical := []jcheck.ErrorKind{
		jcheck.UnknownToken, jcheck.ExpectedADigit, jcheck.ExpectedAHexdigit,
		jcheck.LiteralDidntMatch, jcheck.ControlCharacterUnescaped,
		jcheck.UnknownEscapeSequence, jcheck.InvalidUnicodeCodePoint,
		jcheck.BigMessWithSurrogatePairs, jcheck.InvalidSurrogatePairs,
		jcheck.InvalidEncoding,
	}
	grammar := []jcheck.ErrorKind{
		jcheck.UnexpectedToken, jcheck.InputEndedEarly, jcheck.InputTooLong, jcheck.NestingTooDeep,
	}
	seen := make(map[string]bool)
	check := func(k jcheck.ErrorKind, want jcheck.Class) {
		if got := k.Class(); got != want {
			t.Errorf("%v.Class(): got %v, want %v", k, got, want)
		}
		s := k.String()
		if s == "" || strings.HasPrefix(s, "ErrorKind(") {
			t.Errorf("ErrorKind %d has no name", byte(k))
		} else if seen[s] {
			t.Errorf("ErrorKind %d has duplicate name %q", byte(k), s)
		}
		seen[s] = true
	}
	for _, k := range lexical {
		check(k, jcheck.Lexical)
	}
	for _, k := range grammar {
		check(k, jcheck.Grammar)
	}
	if got := jcheck.ErrorKind(0).Class(); got != jcheck.Other {
		t.Errorf("ErrorKind(0).Class(): got %v, want %v", got, jcheck.Other)
	}
	if got, want := jcheck.ErrorKind(200).String(), "ErrorKind(200)"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestClassOf(t *testing.T) {
	syntax := func(k jcheck.ErrorKind) error { return &jcheck.SyntaxError{Kind: k} }
	tests := []struct {
		err  error
		want jcheck.Class
	}{
		{nil, jcheck.None},
		{io.EOF, jcheck.Other},
		{errors.New("bad"), jcheck.Other},
		{syntax(jcheck.UnknownToken), jcheck.Lexical},
		{syntax(jcheck.InputTooLong), jcheck.Grammar},
		{fmt.Errorf("wrapped: %w", syntax(jcheck.NestingTooDeep)), jcheck.Grammar},
		{jcheck.Internalf("broken %d", 1), jcheck.Internal},
		{fmt.Errorf("wrapped: %w", jcheck.Internalf("broken")), jcheck.Internal},
	}
	for _, test := range tests {
		if got := jcheck.ClassOf(test.err); got != test.want {
			t.Errorf("ClassOf(%v): got %v, want %v", test.err, got, test.want)
		}
		if got, want := jcheck.IsInternal(test.err), test.want == jcheck.Internal; got != want {
			t.Errorf("IsInternal(%v): got %v, want %v", test.err, got, want)
		}
	}
}

func TestInternalf(t *testing.T) {
	err := jcheck.Internalf("stack has %d entries", 3)
	if err.File != "errors_test.go" {
		t.Errorf("File: got %q, want errors_test.go", err.File)
	}
	if err.Line <= 0 {
		t.Errorf("Line: got %d, want > 0", err.Line)
	}
	if err.Message != "stack has 3 entries" {
		t.Errorf("Message: got %q", err.Message)
	}
	want := fmt.Sprintf("internal error at errors_test.go:%d: stack has 3 entries", err.Line)
	if got := err.Error(); got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

func TestSyntaxErrorString(t *testing.T) {
	tok := jcheck.Token{Kind: jcheck.String, Text: "x\ny"}
	err := &jcheck.SyntaxError{
		Kind:     jcheck.UnexpectedToken,
		Location: jcheck.LineCol{Line: 3, Column: 14},
		Token:    &tok,
	}
	if got, want := err.Error(), `at 3:14: unexpected token string "x\ny"`; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	if !errors.Is(err, jcheck.UnexpectedToken) {
		t.Error("errors.Is(UnexpectedToken) is false")
	}
	if errors.Is(err, jcheck.InputTooLong) {
		t.Error("errors.Is(InputTooLong) is true")
	}
}
