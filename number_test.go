// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck_test

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/creachadair/jcheck"
	"github.com/google/go-cmp/cmp"
)

func mustDecimal(t *testing.T, s string) jcheck.Decimal {
	t.Helper()
	d, err := jcheck.ParseDecimal(s)
	if err != nil {
		t.Fatalf("ParseDecimal(%q): %v", s, err)
	}
	return d
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input string
		want  string // String of the result, or "" for error
	}{
		{"0", "0"},
		{"-0", "-0"},
		{"1.50", "1.50"},
		{"1E+5", "1e5"},
		{"1e-05", "1e-05"},
		{"-12.5E3", "-12.5e3"},
		{"123456789012345678901234567890", "123456789012345678901234567890"},

		{"", ""},
		{"01", ""},
		{" 1", ""},
		{"1 ", ""},
		{"+1", ""},
		{"1.", ""},
		{"true", ""},
		{"[1]", ""},
	}
	for _, test := range tests {
		d, err := jcheck.ParseDecimal(test.input)
		if test.want == "" {
			if err == nil {
				t.Errorf("ParseDecimal(%q): got %v, want error", test.input, d)
			}
			continue
		} else if err != nil {
			t.Errorf("ParseDecimal(%q): unexpected error: %v", test.input, err)
			continue
		}
		if got := d.String(); got != test.want {
			t.Errorf("ParseDecimal(%q): got %q, want %q", test.input, got, test.want)
		}

		// The rendering is itself a valid number with the same value.
		again := mustDecimal(t, d.String())
		if again != d {
			t.Errorf("Round trip %q: got %+v, want %+v", test.input, again, d)
		}
	}
}

func TestNewDecimal(t *testing.T) {
	exp := func(s jcheck.Sign, d string) jcheck.Exponent { return jcheck.Exponent{Sign: s, Digits: d} }
	tests := []struct {
		sign      jcheck.Sign
		intPart   string
		frac      string
		exp       jcheck.Exponent
		wantError bool
	}{
		{jcheck.Positive, "0", "", exp(jcheck.Positive, ""), false},
		{jcheck.Negative, "25", "125", exp(jcheck.Negative, "3"), false},
		{jcheck.Positive, "", "", exp(jcheck.Positive, ""), true},
		{jcheck.Positive, "00", "", exp(jcheck.Positive, ""), true},
		{jcheck.Positive, "012", "", exp(jcheck.Positive, ""), true},
		{jcheck.Positive, "1a", "", exp(jcheck.Positive, ""), true},
		{jcheck.Positive, "1", "x", exp(jcheck.Positive, ""), true},
		{jcheck.Positive, "1", "", exp(jcheck.Positive, "-1"), true},
	}
	for _, test := range tests {
		d, err := jcheck.NewDecimal(test.sign, test.intPart, test.frac, test.exp)
		if test.wantError {
			if err == nil {
				t.Errorf("NewDecimal(%q, %q, %+v): got %v, want error", test.intPart, test.frac, test.exp, d)
			}
			continue
		} else if err != nil {
			t.Errorf("NewDecimal(%q, %q, %+v): unexpected error: %v", test.intPart, test.frac, test.exp, err)
			continue
		}
		want := jcheck.Decimal{Sign: test.sign, Int: test.intPart, Frac: test.frac, Exp: test.exp}
		if diff := cmp.Diff(want, d); diff != "" {
			t.Errorf("NewDecimal: (-want, +got)\n%s", diff)
		}
	}
}

func TestDecimalPredicates(t *testing.T) {
	tests := []struct {
		input                         string
		neg, frac, exp, zero, integer bool
	}{
		{"0", false, false, false, true, true},
		{"-0", true, false, false, true, true},
		{"0.000e5", false, true, true, true, true},
		{"1.0", false, true, false, false, true},
		{"1e2", false, false, true, false, true},
		{"1.5e1", false, true, true, false, true},
		{"1.25e1", false, true, true, false, false},
		{"-5e-1", true, false, true, false, false},
		{"100e-2", false, false, true, false, true},
		{"0.5", false, true, false, false, false},
	}
	for _, test := range tests {
		d := mustDecimal(t, test.input)
		check := func(name string, got, want bool) {
			if got != want {
				t.Errorf("%s(%q): got %v, want %v", name, test.input, got, want)
			}
		}
		check("IsNegative", d.IsNegative(), test.neg)
		check("HasFrac", d.HasFrac(), test.frac)
		check("HasExp", d.HasExp(), test.exp)
		check("IsZero", d.IsZero(), test.zero)
		check("IsInteger", d.IsInteger(), test.integer)
	}
}

func TestDecimalInt64(t *testing.T) {
	tests := []struct {
		input string
		want  int64
		err   error
	}{
		{"0", 0, nil},
		{"-0", 0, nil},
		{"12", 12, nil},
		{"-12", -12, nil},
		{"1.5e1", 15, nil},
		{"1200e-2", 12, nil},
		{"9223372036854775807", math.MaxInt64, nil},
		{"-9223372036854775808", math.MinInt64, nil},
		{"9223372036854775808", 0, jcheck.ErrTooLarge},
		{"1e19", 0, jcheck.ErrTooLarge},
		{"1e1000000000000000", 0, jcheck.ErrTooLarge},
		{"1.5", 0, jcheck.ErrNotInteger},
		{"1e-1000000000000000", 0, jcheck.ErrNotInteger},
	}
	for _, test := range tests {
		got, err := mustDecimal(t, test.input).Int64()
		if !errors.Is(err, test.err) {
			t.Errorf("Int64(%q): got error %v, want %v", test.input, err, test.err)
		}
		if got != test.want {
			t.Errorf("Int64(%q): got %d, want %d", test.input, got, test.want)
		}
	}
}

func TestDecimalBigInt(t *testing.T) {
	const big30 = "123456789012345678901234567890"
	got, err := mustDecimal(t, "-"+big30+".000").BigInt()
	if err != nil {
		t.Fatalf("BigInt: unexpected error: %v", err)
	}
	want, _ := new(big.Int).SetString("-"+big30, 10)
	if got.Cmp(want) != 0 {
		t.Errorf("BigInt: got %v, want %v", got, want)
	}

	if got, err := mustDecimal(t, "12e3").BigInt(); err != nil || got.Int64() != 12000 {
		t.Errorf("BigInt(12e3): got %v, %v; want 12000, nil", got, err)
	}
	if _, err := mustDecimal(t, "1.25").BigInt(); !errors.Is(err, jcheck.ErrNotInteger) {
		t.Errorf("BigInt(1.25): got %v, want %v", err, jcheck.ErrNotInteger)
	}
	if _, err := mustDecimal(t, "1e999999999").BigInt(); !errors.Is(err, jcheck.ErrTooLarge) {
		t.Errorf("BigInt(1e999999999): got %v, want %v", err, jcheck.ErrTooLarge)
	}
}

func TestDecimalRat(t *testing.T) {
	tests := []struct {
		input string
		want  string // as big.Rat.RatString
	}{
		{"0", "0"},
		{"0.5", "1/2"},
		{"-1.25", "-5/4"},
		{"12e-1", "6/5"},
		{"3e2", "300"},
	}
	for _, test := range tests {
		r, err := mustDecimal(t, test.input).Rat()
		if err != nil {
			t.Errorf("Rat(%q): unexpected error: %v", test.input, err)
		} else if got := r.RatString(); got != test.want {
			t.Errorf("Rat(%q): got %s, want %s", test.input, got, test.want)
		}
	}
	if _, err := mustDecimal(t, "1e-99999999").Rat(); !errors.Is(err, jcheck.ErrTooLarge) {
		t.Errorf("Rat: got %v, want %v", err, jcheck.ErrTooLarge)
	}
}

func TestDecimalFloat64(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		err   error // for Float64
		exact error // for ExactFloat64
	}{
		{"0", 0, nil, nil},
		{"-0.5", -0.5, nil, nil},
		{"1e3", 1000, nil, nil},
		{"0.1", 0.1, nil, jcheck.ErrTooPrecise},
		{"9007199254740993", 9007199254740992, nil, jcheck.ErrTooPrecise},
		{"1e400", 0, jcheck.ErrTooLarge, jcheck.ErrTooLarge},
		{"-1e400", 0, jcheck.ErrTooLarge, jcheck.ErrTooLarge},
		{"1e-400", 0, nil, jcheck.ErrTooPrecise},
	}
	for _, test := range tests {
		d := mustDecimal(t, test.input)
		got, err := d.Float64()
		if !errors.Is(err, test.err) {
			t.Errorf("Float64(%q): got error %v, want %v", test.input, err, test.err)
		} else if got != test.want {
			t.Errorf("Float64(%q): got %v, want %v", test.input, got, test.want)
		}

		_, err = d.ExactFloat64()
		if !errors.Is(err, test.exact) {
			t.Errorf("ExactFloat64(%q): got error %v, want %v", test.input, err, test.exact)
		}
	}
}

func TestNumberError(t *testing.T) {
	_, err := mustDecimal(t, "2.5").Int64()
	var nerr *jcheck.NumberError
	if !errors.As(err, &nerr) {
		t.Fatalf("Int64: got %T, want *NumberError", err)
	}
	if nerr.Num != "2.5" || nerr.Type != "int64" {
		t.Errorf("NumberError: got %+v", nerr)
	}
	if got := err.Error(); !strings.Contains(got, "not an integer") {
		t.Errorf("Error: got %q", got)
	}
}
