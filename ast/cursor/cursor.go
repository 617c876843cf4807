// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the syntax tree of a JSON value.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jcheck/ast"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method. This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var zero T
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("wrong value type %s", c.Value().Type())
	}
	return out, nil
}

// Pointer resolves a JSON Pointer (RFC 6901) relative to v, and returns the
// value it denotes. The empty pointer denotes v itself.
func Pointer(v ast.Value, ptr string) (ast.Value, error) {
	path, err := ParsePointer(ptr)
	if err != nil {
		return nil, err
	}
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("pointer %q: %w", ptr, err)
	}
	return c.Value(), nil
}

// ParsePointer parses a JSON Pointer (RFC 6901) into a sequence of string
// path elements suitable for Cursor.Down.
func ParsePointer(ptr string) ([]any, error) {
	if ptr == "" {
		return nil, nil
	} else if ptr[0] != '/' {
		return nil, fmt.Errorf("invalid pointer %q: must begin with /", ptr)
	}
	var path []any
	for _, tok := range strings.Split(ptr[1:], "/") {
		dec, err := unescapeToken(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid pointer %q: %w", ptr, err)
		}
		path = append(path, dec)
	}
	return path, nil
}

func unescapeToken(tok string) (string, error) {
	if !strings.Contains(tok, "~") {
		return tok, nil
	}
	var sb strings.Builder
	for i := 0; i < len(tok); i++ {
		if tok[i] != '~' {
			sb.WriteByte(tok[i])
			continue
		}
		i++
		if i == len(tok) || (tok[i] != '0' && tok[i] != '1') {
			return "", fmt.Errorf("invalid escape in %q", tok)
		}
		sb.WriteByte("~/"[tok[i]-'0'])
	}
	return sb.String(), nil
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
type Cursor struct {
	org ast.Value
	stk []ast.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []ast.Value {
	return append([]ast.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are either strings or integers. If the
// path cannot be completely consumed, traversal stops at the last value
// reached and an error is recorded. Use Err to recover the error.
//
// A string element applied to an object selects the value of the first member
// with that key. Applied to an array, the string must be a decimal index
// without leading zeroes, as in a JSON Pointer.
//
// An integer element selects the value at that offset in an array, or the
// value of the member at that offset in an object. Negative indices count
// backward from the end (-1 is last, -2 second last).
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			switch e := cur.(type) {
			case *ast.Object:
				m := e.Find(t)
				if m == nil {
					return c.setErrorf("key %q not found", t)
				}
				cur = c.push(m.Value)
			case *ast.Array:
				i, ok := parseIndex(t)
				if !ok {
					return c.setErrorf("invalid array index %q", t)
				} else if i >= e.Len() {
					return c.setErrorf("array index %d out of bounds (n=%d)", i, e.Len())
				}
				cur = c.push(e.Values[i])
			default:
				return c.setErrorf("cannot traverse %s with %q", typeOf(cur), t)
			}

		case int:
			switch e := cur.(type) {
			case *ast.Array:
				i, ok := fixArrayBound(e.Len(), t)
				if !ok {
					return c.setErrorf("array index %d out of bounds (n=%d)", t, e.Len())
				}
				cur = c.push(e.Values[i])
			case *ast.Object:
				i, ok := fixArrayBound(e.Len(), t)
				if !ok {
					return c.setErrorf("object index %d out of bounds (n=%d)", t, e.Len())
				}
				cur = c.push(e.Members[i].Value)
			default:
				return c.setErrorf("cannot traverse %s with %d", typeOf(cur), t)
			}

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v ast.Value) ast.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func typeOf(v ast.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Type()
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func parseIndex(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	i, err := strconv.Atoi(s)
	return i, err == nil
}
