// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Errors reported by the conversion methods of Decimal, wrapped in a
// *NumberError.
var (
	ErrTooLarge   = errors.New("value out of range")
	ErrNotInteger = errors.New("value is not an integer")
	ErrTooPrecise = errors.New("value cannot be represented exactly")
)

// NumberError records a failed conversion of a Decimal.
type NumberError struct {
	Num  string // the number being converted, as text
	Type string // the name of the target type
	Err  error  // one of ErrTooLarge, ErrNotInteger, ErrTooPrecise
}

// Error satisfies the error interface.
func (e *NumberError) Error() string {
	return fmt.Sprintf("convert %s to %s: %v", e.Num, e.Type, e.Err)
}

// Unwrap supports error wrapping.
func (e *NumberError) Unwrap() error { return e.Err }

func (d Decimal) convError(typ string, err error) *NumberError {
	return &NumberError{Num: d.String(), Type: typ, Err: err}
}

const (
	// Scales beyond this magnitude saturate during normalization.
	saturatedScale = 1 << 40

	// Conversions to arbitrary-precision values refuse to materialize more
	// than this many decimal digits.
	maxBigDigits = 1 << 16
)

// normalize returns the coefficient and scale of d such that the magnitude of
// d is coef × 10^scale. The coefficient has no leading or trailing zeroes; it
// is empty if d is zero.
func (d Decimal) normalize() (coef string, scale int64) {
	coef = d.Int + d.Frac
	scale = -int64(len(d.Frac))

	if e := strings.TrimLeft(d.Exp.Digits, "0"); len(e) > 12 {
		if d.Exp.Sign == Negative {
			scale = -saturatedScale
		} else {
			scale = saturatedScale
		}
	} else if e != "" {
		v, _ := strconv.ParseInt(e, 10, 64) // cannot fail: ≤ 12 digits
		if d.Exp.Sign == Negative {
			v = -v
		}
		scale += v
	}

	coef = strings.TrimLeft(coef, "0")
	if coef == "" {
		return "", 0
	}
	trimmed := strings.TrimRight(coef, "0")
	scale += int64(len(coef) - len(trimmed))
	return trimmed, scale
}

// Int64 returns d as an int64. It reports ErrNotInteger if d has a nonzero
// fractional value, or ErrTooLarge if d is outside the range of int64.
func (d Decimal) Int64() (int64, error) {
	coef, scale := d.normalize()
	if coef == "" {
		return 0, nil
	} else if scale < 0 {
		return 0, d.convError("int64", ErrNotInteger)
	} else if int64(len(coef))+scale > 19 {
		return 0, d.convError("int64", ErrTooLarge)
	}
	text := coef + strings.Repeat("0", int(scale))
	if d.Sign == Negative {
		text = "-" + text
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, d.convError("int64", ErrTooLarge)
	}
	return v, nil
}

// BigInt returns d as an arbitrary-precision integer. It reports ErrNotInteger
// if d has a nonzero fractional value, or ErrTooLarge if d has more decimal
// digits than the conversion is willing to allocate.
func (d Decimal) BigInt() (*big.Int, error) {
	coef, scale := d.normalize()
	if coef == "" {
		return new(big.Int), nil
	} else if scale < 0 {
		return nil, d.convError("big.Int", ErrNotInteger)
	} else if int64(len(coef))+scale > maxBigDigits {
		return nil, d.convError("big.Int", ErrTooLarge)
	}
	z, _ := new(big.Int).SetString(coef, 10)
	if scale > 0 {
		z.Mul(z, pow10(scale))
	}
	if d.Sign == Negative {
		z.Neg(z)
	}
	return z, nil
}

// Rat returns the exact value of d as a rational number. It reports
// ErrTooLarge if the exponent of d is too large in magnitude to materialize.
func (d Decimal) Rat() (*big.Rat, error) {
	coef, scale := d.normalize()
	if coef == "" {
		return new(big.Rat), nil
	} else if scale > maxBigDigits || scale < -maxBigDigits || len(coef) > maxBigDigits {
		return nil, d.convError("big.Rat", ErrTooLarge)
	}
	num, _ := new(big.Int).SetString(coef, 10)
	r := new(big.Rat)
	if scale >= 0 {
		r.SetInt(num.Mul(num, pow10(scale)))
	} else {
		r.SetFrac(num, pow10(-scale))
	}
	if d.Sign == Negative {
		r.Neg(r)
	}
	return r, nil
}

// Float64 returns the float64 value nearest to d. It reports ErrTooLarge if
// the magnitude of d exceeds the range of float64. Precision may be lost; use
// ExactFloat64 to detect this.
func (d Decimal) Float64() (float64, error) {
	f, err := strconv.ParseFloat(d.String(), 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, d.convError("float64", ErrTooLarge)
	}
	return f, nil
}

// ExactFloat64 returns d as a float64 if that conversion is exact. It reports
// ErrTooLarge if d exceeds the range of float64, and ErrTooPrecise if the
// nearest float64 differs from d.
func (d Decimal) ExactFloat64() (float64, error) {
	f, err := d.Float64()
	if err != nil {
		return 0, err
	}
	r, err := d.Rat()
	if err != nil {
		// The float did not overflow, so the exponent must be hugely negative.
		return 0, d.convError("float64", ErrTooPrecise)
	}
	if new(big.Rat).SetFloat64(f).Cmp(r) != 0 {
		return 0, d.convError("float64", ErrTooPrecise)
	}
	return f, nil
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}
