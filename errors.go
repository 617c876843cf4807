// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// ErrorKind identifies the reason a parse was rejected. An ErrorKind is itself
// an error, so callers may test for a specific kind with errors.Is:
//
//	if errors.Is(err, jcheck.InputEndedEarly) { ... }
type ErrorKind byte

// Lexical error kinds, reported by the Scanner.
const (
	UnknownToken ErrorKind = iota + 1
	ExpectedADigit
	ExpectedAHexdigit
	LiteralDidntMatch
	ControlCharacterUnescaped
	UnknownEscapeSequence
	InvalidUnicodeCodePoint
	BigMessWithSurrogatePairs
	InvalidSurrogatePairs
	InvalidEncoding

	// Grammar error kinds, reported by the Automaton. InputEndedEarly is also
	// reported by the Scanner for an unterminated token.

	UnexpectedToken
	InputEndedEarly
	InputTooLong
	NestingTooDeep
)

var kindStr = [...]string{
	UnknownToken:              "unknown token",
	ExpectedADigit:            "expected a digit",
	ExpectedAHexdigit:         "expected a hex digit",
	LiteralDidntMatch:         "literal did not match",
	ControlCharacterUnescaped: "unescaped control character",
	UnknownEscapeSequence:     "unknown escape sequence",
	InvalidUnicodeCodePoint:   "invalid Unicode code point",
	BigMessWithSurrogatePairs: "malformed surrogate pair",
	InvalidSurrogatePairs:     "invalid surrogate pair",
	InvalidEncoding:           "invalid encoding",
	UnexpectedToken:           "unexpected token",
	InputEndedEarly:           "input ended early",
	InputTooLong:              "extra input after value",
	NestingTooDeep:            "nesting too deep",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindStr) && kindStr[k] != "" {
		return kindStr[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", byte(k))
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// Class reports which class of error k belongs to.
func (k ErrorKind) Class() Class {
	switch {
	case k >= UnknownToken && k <= InvalidEncoding:
		return Lexical
	case k >= UnexpectedToken && k <= NestingTooDeep:
		return Grammar
	}
	return Other
}

// Class partitions errors into the input rejections a caller should report to
// its user, and defects in the parser itself.
type Class byte

// Constants defining the valid Class values.
const (
	None     Class = iota // no error
	Lexical               // malformed token
	Grammar               // structurally invalid token sequence
	Internal              // parser invariant violation
	Other                 // not a parse error (e.g., I/O or handler failure)
)

func (c Class) String() string {
	switch c {
	case None:
		return "none"
	case Lexical:
		return "lexical"
	case Grammar:
		return "grammar"
	case Internal:
		return "internal"
	}
	return "other"
}

// ClassOf reports the class of err. It returns None if err == nil.
func ClassOf(err error) Class {
	if err == nil {
		return None
	}
	var ie *InternalError
	if errors.As(err, &ie) {
		return Internal
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Kind.Class()
	}
	return Other
}

// IsInternal reports whether err signals a defect in the parser rather than a
// property of its input.
func IsInternal(err error) bool { return ClassOf(err) == Internal }

// SyntaxError is the concrete type of errors reported for invalid input by the
// Scanner and the Automaton.
type SyntaxError struct {
	Kind     ErrorKind
	Location LineCol
	Offset   int // byte offset of the error in the input

	// For UnexpectedToken, the offending token.
	Token *Token

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	msg := s.Kind.String()
	if s.Token != nil {
		msg += " " + s.Token.String()
	}
	if s.err != nil {
		msg += ": " + s.err.Error()
	}
	return fmt.Sprintf("at %s: %s", s.Location, msg)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Is reports whether target is the ErrorKind of s.
func (s *SyntaxError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == s.Kind
}

// InternalError reports a violated invariant in the parser. It never describes
// a property of the input, and should be treated as a bug report.
type InternalError struct {
	File    string // source file where the defect was detected
	Line    int    // source line where the defect was detected
	Message string
}

// Error satisfies the error interface.
func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at %s:%d: %s", e.File, e.Line, e.Message)
}

// Internalf constructs an *InternalError recording the location of its caller.
func Internalf(msg string, args ...any) *InternalError {
	_, file, line, _ := runtime.Caller(1)
	return &InternalError{
		File:    filepath.Base(file),
		Line:    line,
		Message: fmt.Sprintf(msg, args...),
	}
}
