// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"bufio"
	"encoding/binary"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewSource returns a reader of codepoints that decodes r as UTF-8. Invalid
// byte sequences are delivered as (utf8.RuneError, 1), which a Scanner reports
// as InvalidEncoding.
func NewSource(r io.Reader) io.RuneReader {
	if rr, ok := r.(io.RuneReader); ok {
		return rr
	}
	return bufio.NewReader(r)
}

// NewSourceBOM is like NewSource, but honors a leading byte order mark: a
// UTF-8 BOM is discarded, and a UTF-16 BOM (either byte order) selects UTF-16
// decoding for the remainder of the input. Input without a BOM is decoded as
// strict UTF-8.
//
// UTF-16 decoding is strict as well: an unpaired surrogate or a trailing odd
// byte is delivered as (utf8.RuneError, 1).
//
// RFC 8259 forbids generating a BOM, but permits a parser to ignore one.
func NewSourceBOM(r io.Reader) io.RuneReader {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(2); len(head) == 2 {
		switch {
		case head[0] == 0xfe && head[1] == 0xff:
			br.Discard(2)
			return &utf16Source{r: br, order: binary.BigEndian}
		case head[0] == 0xff && head[1] == 0xfe:
			br.Discard(2)
			return &utf16Source{r: br, order: binary.LittleEndian}
		}
	}
	tr := unicode.BOMOverride(transform.Nop)
	return bufio.NewReader(transform.NewReader(br, tr))
}

// utf16Source decodes UTF-16 code units from r in the given byte order.
type utf16Source struct {
	r     io.Reader
	order binary.ByteOrder

	pend rune // a unit read ahead of a lone high surrogate
	held bool // pend is valid
}

// next returns the next code unit, or -1 if the input ends in the middle of
// a unit.
func (u *utf16Source) next() (rune, error) {
	if u.held {
		u.held = false
		return u.pend, nil
	}
	var buf [2]byte
	if _, err := io.ReadFull(u.r, buf[:]); err == io.ErrUnexpectedEOF {
		return -1, nil
	} else if err != nil {
		return 0, err
	}
	return rune(u.order.Uint16(buf[:])), nil
}

func (u *utf16Source) ReadRune() (rune, int, error) {
	c1, err := u.next()
	if err != nil {
		return 0, 0, err
	}
	switch {
	case c1 < 0:
		return utf8.RuneError, 1, nil
	case !utf16.IsSurrogate(c1):
		return c1, utf8.RuneLen(c1), nil
	case c1 >= 0xdc00: // low surrogate with no high
		return utf8.RuneError, 1, nil
	}
	c2, err := u.next()
	if err == io.EOF {
		return utf8.RuneError, 1, nil
	} else if err != nil {
		return 0, 0, err
	}
	if ch := utf16.DecodeRune(c1, c2); ch != utf8.RuneError {
		return ch, utf8.RuneLen(ch), nil
	}
	u.pend, u.held = c2, true
	return utf8.RuneError, 1, nil
}

// RuneSource returns a reader of the given already-decoded codepoints.
// Values that are not Unicode scalar values are reported by a Scanner as
// InvalidEncoding.
func RuneSource(rs []rune) io.RuneReader { return &runeSource{rs: rs} }

type runeSource struct{ rs []rune }

func (r *runeSource) ReadRune() (rune, int, error) {
	if len(r.rs) == 0 {
		return 0, 0, io.EOF
	}
	ch := r.rs[0]
	r.rs = r.rs[1:]
	if n := utf8.RuneLen(ch); n > 0 {
		return ch, n, nil
	}
	return ch, 1, nil
}
