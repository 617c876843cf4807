// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sign is the sign of a Decimal or of its exponent.
type Sign bool

// Constants defining the valid Sign values.
const (
	Positive Sign = false
	Negative Sign = true
)

func (s Sign) String() string {
	if s == Negative {
		return "-"
	}
	return "+"
}

// An Exponent is the optional signed exponent of a Decimal.
// An Exponent with empty Digits is absent.
type Exponent struct {
	Sign   Sign
	Digits string // ASCII decimal digits
}

// A Decimal is the exact representation of a JSON number. No rounding or
// conversion to a fixed-width type is performed; see the conversion methods
// for fallible access to machine values.
//
// Int is never empty, and has no superfluous leading zero: it is either "0"
// or begins with a nonzero digit. Frac is empty if the number has no
// fractional part.
type Decimal struct {
	Sign Sign
	Int  string // ASCII decimal digits
	Frac string // ASCII decimal digits, or "" if absent
	Exp  Exponent
}

// NewDecimal constructs a Decimal from its parts, and reports an error if the
// parts do not satisfy the invariants of a JSON number.
func NewDecimal(sign Sign, intPart, frac string, exp Exponent) (Decimal, error) {
	if intPart == "" {
		return Decimal{}, errors.New("empty integer part")
	} else if !isDigits(intPart) {
		return Decimal{}, fmt.Errorf("invalid integer part %q", intPart)
	} else if len(intPart) > 1 && intPart[0] == '0' {
		return Decimal{}, fmt.Errorf("extra leading zeroes in %q", intPart)
	} else if !isDigits(frac) {
		return Decimal{}, fmt.Errorf("invalid fraction %q", frac)
	} else if !isDigits(exp.Digits) {
		return Decimal{}, fmt.Errorf("invalid exponent %q", exp.Digits)
	}
	return Decimal{Sign: sign, Int: intPart, Frac: frac, Exp: exp}, nil
}

// ParseDecimal parses s as a single JSON number. Surrounding whitespace and
// any other content is rejected.
func ParseDecimal(s string) (Decimal, error) {
	sc := NewScanner(strings.NewReader(s))
	if err := sc.Next(); err != nil {
		return Decimal{}, fmt.Errorf("parse %q: %w", s, err)
	}
	tok := sc.Token()
	if tok.Kind != Number {
		return Decimal{}, fmt.Errorf("parse %q: got %v, want number", s, tok.Kind)
	}
	if err := sc.Next(); err != io.EOF {
		return Decimal{}, fmt.Errorf("parse %q: %w", s, InputTooLong)
	}
	return tok.Num, nil
}

// HasFrac reports whether d has a fractional part.
func (d Decimal) HasFrac() bool { return d.Frac != "" }

// HasExp reports whether d has an exponent.
func (d Decimal) HasExp() bool { return d.Exp.Digits != "" }

// IsNegative reports whether d was written with a leading minus sign.
// Note that "-0" is negative by this definition, though equal to zero.
func (d Decimal) IsNegative() bool { return d.Sign == Negative }

// IsZero reports whether d is numerically equal to zero.
func (d Decimal) IsZero() bool {
	return strings.Trim(d.Int, "0") == "" && strings.Trim(d.Frac, "0") == ""
}

// IsInteger reports whether d is numerically an integer, for example 5, 5.0,
// and 5e3 are all integers, but 5.5 and 5e-1 are not.
func (d Decimal) IsInteger() bool {
	_, scale := d.normalize()
	return scale >= 0
}

// String renders d as JSON number text. The output is numerically identical to
// the input d was parsed from, but need not be spelled the same way: an
// uppercase exponent marker or an explicit "+" sign is not preserved.
func (d Decimal) String() string {
	var sb strings.Builder
	if d.Sign == Negative {
		sb.WriteByte('-')
	}
	sb.WriteString(d.Int)
	if d.HasFrac() {
		sb.WriteByte('.')
		sb.WriteString(d.Frac)
	}
	if d.HasExp() {
		sb.WriteByte('e')
		if d.Exp.Sign == Negative {
			sb.WriteByte('-')
		}
		sb.WriteString(d.Exp.Digits)
	}
	return sb.String()
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(rune(s[i])) {
			return false
		}
	}
	return true
}
