// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// A Scanner reads lexical tokens from a stream of codepoints. Each call to
// Next advances the scanner to the next token, or reports an error.
//
// Every token of the input is reported, including whitespace. Errors are
// terminal: once Next has reported an error, including io.EOF, it reports
// the same error on every subsequent call.
type Scanner struct {
	src io.RuneReader
	buf strings.Builder // decoded text of the current token
	tok Token
	err error

	// One rune of pushback. The last-read rune is recorded so that it can be
	// returned to the input by unrune.
	back, last readRune
	prev       mark

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

type readRune struct {
	ch   rune
	size int
	err  error
	ok   bool
}

type mark struct{ end, line, col int }

// NewScanner constructs a new lexical scanner that consumes codepoints from
// src. Use NewSource or NewSourceBOM to construct src from a byte stream.
func NewScanner(src io.RuneReader) *Scanner { return &Scanner{src: src} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	if s.err != nil {
		return s.err
	}
	s.buf.Reset()
	s.tok = Token{}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol

	ch, err := s.rune()
	if err == io.EOF {
		return s.setErr(err)
	} else if err != nil {
		return s.fail(err)
	}

	switch {
	case isSpace(ch):
		return s.scanSpace()
	case isNumStart(ch):
		return s.scanNumber(ch)
	case ch == '"':
		return s.scanString()
	}
	if k, ok := selfDelim(ch); ok {
		s.tok = Token{Kind: k}
		return nil
	}

	// Handle constants: true, false, null
	switch ch {
	case 't':
		return s.scanLiteral(True, mem.S("rue"))
	case 'f':
		return s.scanLiteral(False, mem.S("alse"))
	case 'n':
		return s.scanLiteral(Null, mem.S("ull"))
	}
	return s.failKind(UnknownToken)
}

// Token returns the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// All returns an iterator over the remaining tokens of s. The iterator stops
// at the end of input, or after yielding an error.
func (s *Scanner) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			if err := s.Next(); err == io.EOF {
				return
			} else if err != nil {
				yield(Token{}, err)
				return
			}
			if !yield(s.tok, nil) {
				return
			}
		}
	}
}

func (s *Scanner) scanSpace() error {
	for {
		ch, err := s.rune()
		if err != nil || !isSpace(ch) {
			s.unrune()
			break
		}
	}
	s.tok = Token{Kind: Whitespace}
	return nil
}

func (s *Scanner) scanNumber(start rune) error {
	var num Decimal

	ch := start
	if start == '-' {
		num.Sign = Negative
		d, err := s.requireDigit()
		if err != nil {
			return err
		}
		ch = d
	}

	// A leading zero is the entire integer part: 0.12 is OK, 01.2 is not.
	s.buf.WriteRune(ch)
	if ch != '0' {
		s.readDigits()
	}
	num.Int = s.takeBuf()

	// If a decimal point follows, consume a fractional part.
	if s.accept(isDot) {
		if err := s.readRequiredDigits(); err != nil {
			return err
		}
		num.Frac = s.takeBuf()
	}

	// If an exponent follows, consume it.
	if s.accept(isExpMark) {
		ch, err := s.rune()
		if err != nil {
			return s.failAt(err, InputEndedEarly)
		}
		switch ch {
		case '-':
			num.Exp.Sign = Negative
		case '+':
			// OK, positive is the default
		default:
			s.unrune()
		}
		if err := s.readRequiredDigits(); err != nil {
			return err
		}
		num.Exp.Digits = s.takeBuf()
	}

	s.tok = Token{Kind: Number, Num: num}
	return nil
}

func (s *Scanner) scanString() error {
	for {
		ch, err := s.rune()
		if err != nil {
			return s.failAt(err, InputEndedEarly)
		}
		switch {
		case ch == '"':
			s.tok = Token{Kind: String, Text: s.takeBuf()}
			return nil
		case ch < ' ':
			return s.failKind(ControlCharacterUnescaped)
		case ch == '\\':
			r, err := s.scanEscape()
			if err != nil {
				return err
			}
			s.buf.WriteRune(r)
		default:
			s.buf.WriteRune(ch)
		}
	}
}

// scanEscape decodes the escape sequence following a backslash.
func (s *Scanner) scanEscape() (rune, error) {
	ch, err := s.rune()
	if err != nil {
		return 0, s.failAt(err, InputEndedEarly)
	}
	switch ch {
	case '"', '\\', '/':
		return ch, nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'u':
		return s.scanUnicode()
	}
	return 0, s.failKind(UnknownEscapeSequence)
}

// pairState records progress through the second half of a surrogate pair.
type pairState byte

const (
	wantBackslash pairState = iota // after a high surrogate: want "\"
	wantU                          // want "u"
	wantLow                        // want 4 hex digits of a low surrogate
)

// scanUnicode decodes a \uXXXX escape whose "\u" has been consumed.  If the
// code unit is a high surrogate, a second escape carrying the low surrogate
// must immediately follow.
func (s *Scanner) scanUnicode() (rune, error) {
	hi, err := s.readHex4()
	if err != nil {
		return 0, err
	} else if isLowSurrogate(hi) {
		return 0, s.failKind(InvalidUnicodeCodePoint)
	} else if !isHighSurrogate(hi) {
		return hi, nil
	}

	for state := wantBackslash; ; {
		switch state {
		case wantBackslash, wantU:
			ch, err := s.rune()
			if err != nil {
				return 0, s.failAt(err, InputEndedEarly)
			} else if ch != rune(`\u`[state]) {
				return 0, s.failKind(BigMessWithSurrogatePairs)
			}
			state++

		case wantLow:
			lo, err := s.readHex4()
			if err != nil {
				return 0, err
			} else if !isLowSurrogate(lo) {
				return 0, s.failKind(BigMessWithSurrogatePairs)
			}
			r := 0x10000 + ((hi & 0x3ff) << 10) + (lo & 0x3ff)
			if !utf8.ValidRune(r) {
				return 0, s.failKind(InvalidSurrogatePairs)
			}
			return r, nil
		}
	}
}

// scanLiteral matches the remainder of a constant whose first letter has
// already been read. There is no recovery from a partial match.
func (s *Scanner) scanLiteral(kind Kind, rest mem.RO) error {
	for i := 0; i < rest.Len(); i++ {
		ch, err := s.rune()
		if err == io.EOF {
			return s.failKind(LiteralDidntMatch)
		} else if err != nil {
			return s.fail(err)
		} else if ch != rune(rest.At(i)) {
			return s.failKind(LiteralDidntMatch)
		}
	}
	s.tok = Token{Kind: kind}
	return nil
}

// rune reads the next codepoint from the input, honoring pushback. A
// codepoint that is not a valid Unicode scalar value, or an invalid byte
// sequence, is reported as InvalidEncoding.
func (s *Scanner) rune() (rune, error) {
	var next readRune
	if s.back.ok {
		next, s.back = s.back, readRune{}
	} else {
		ch, nb, err := s.src.ReadRune()
		if err == nil && ((ch == utf8.RuneError && nb == 1) || !utf8.ValidRune(ch)) {
			err = InvalidEncoding
		}
		next = readRune{ch: ch, size: nb, err: err, ok: true}
	}
	s.last = next
	s.prev = mark{end: s.end, line: s.eline, col: s.ecol}
	s.end += next.size
	if next.ch == '\n' && next.err == nil {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol += next.size
	}
	return next.ch, next.err
}

// unrune returns the most recently read codepoint (or read error) to the
// input. Only one codepoint of pushback is supported.
func (s *Scanner) unrune() {
	s.back = s.last
	s.last = readRune{}
	s.end, s.eline, s.ecol = s.prev.end, s.prev.line, s.prev.col
}

// accept consumes the next codepoint if it matches f, and reports whether it
// did so.
func (s *Scanner) accept(f func(rune) bool) bool {
	ch, err := s.rune()
	if err != nil || !f(ch) {
		s.unrune()
		return false
	}
	return true
}

// requireDigit reads a single decimal digit.
func (s *Scanner) requireDigit() (rune, error) {
	ch, err := s.rune()
	if err != nil {
		return 0, s.failAt(err, InputEndedEarly)
	} else if !isDigit(ch) {
		return 0, s.failKind(ExpectedADigit)
	}
	return ch, nil
}

// readDigits buffers decimal digits until a non-digit, which is not consumed.
func (s *Scanner) readDigits() {
	for s.accept(isDigit) {
		s.buf.WriteRune(s.last.ch)
	}
}

// readRequiredDigits buffers one or more decimal digits.
func (s *Scanner) readRequiredDigits() error {
	ch, err := s.requireDigit()
	if err != nil {
		return err
	}
	s.buf.WriteRune(ch)
	s.readDigits()
	return nil
}

// readHex4 reads exactly 4 hexadecimal digits from the input.
func (s *Scanner) readHex4() (rune, error) {
	var v rune
	for i := 0; i < 4; i++ {
		ch, err := s.rune()
		if err != nil {
			return 0, s.failAt(err, InputEndedEarly)
		}
		d, ok := hexValue(ch)
		if !ok {
			return 0, s.failKind(ExpectedAHexdigit)
		}
		v = v<<4 | d
	}
	return v, nil
}

func (s *Scanner) takeBuf() string {
	out := s.buf.String()
	s.buf.Reset()
	return out
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// fail records err as the terminal error of s. Error kinds are reported as a
// *SyntaxError at the current position; other errors (e.g., I/O failures)
// are annotated with the offset.
func (s *Scanner) fail(err error) error {
	if k, ok := err.(ErrorKind); ok {
		return s.failKind(k)
	}
	return s.setErr(posError{s.end, err})
}

// failAt is fail, but reports io.EOF as the specified kind.
func (s *Scanner) failAt(err error, eof ErrorKind) error {
	if err == io.EOF {
		return s.failKind(eof)
	}
	return s.fail(err)
}

func (s *Scanner) failKind(k ErrorKind) error {
	return s.setErr(&SyntaxError{
		Kind:     k,
		Location: LineCol{Line: s.eline + 1, Column: s.ecol},
		Offset:   s.end,
	})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isDot(ch rune) bool      { return ch == '.' }
func isExpMark(ch rune) bool  { return ch == 'e' || ch == 'E' }

func isHighSurrogate(r rune) bool { return 0xd800 <= r && r <= 0xdbff }
func isLowSurrogate(r rune) bool  { return 0xdc00 <= r && r <= 0xdfff }

func hexValue(ch rune) (rune, bool) {
	switch {
	case '0' <= ch && ch <= '9':
		return ch - '0', true
	case 'a' <= ch && ch <= 'f':
		return ch - 'a' + 10, true
	case 'A' <= ch && ch <= 'F':
		return ch - 'A' + 10, true
	}
	return 0, false
}

var self = [...]Kind{ObjectBegin, ObjectEnd, ArrayBegin, ArrayEnd, ValueSeparator, NameSeparator}

func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
