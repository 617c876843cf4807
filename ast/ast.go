// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values,
// and a parser that constructs syntax trees from JSON source.
package ast

import (
	"strings"

	"github.com/creachadair/jcheck"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// Span reports the location of the value in its source text.
	Span() jcheck.Span

	// Type reports the name of the JSON type of the value: "object", "array",
	// "number", "string", "boolean", or "null".
	Type() string

	// JSON renders the value as compact JSON text.
	JSON() string
}

func newSpan(pos, end int) jcheck.Span { return jcheck.Span{Pos: pos, End: end} }

// An Object is a collection of key-value members. Members are in input order,
// and duplicate keys are retained.
type Object struct {
	pos, end int
	Members  []*Member
}

// Span satisfies the Value interface.
func (o Object) Span() jcheck.Span { return newSpan(o.pos, o.end) }

// Type satisfies the Value interface.
func (Object) Type() string { return "object" }

// JSON satisfies the Value interface.
func (o Object) JSON() string { return render(o) }

// Len reports the number of members of o.
func (o Object) Len() int { return len(o.Members) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// FindLast returns the last member of o with the given key, or nil.
// This matches the behavior of decoders for which the last duplicate wins.
func (o Object) FindLast(key string) *Member {
	for i := len(o.Members) - 1; i >= 0; i-- {
		if m := o.Members[i]; m.Key == key {
			return m
		}
	}
	return nil
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	pos, end int

	Key   string
	Value Value
}

// Span reports the location of m from the start of its key to the end of its
// value.
func (m Member) Span() jcheck.Span { return newSpan(m.pos, m.end) }

// An Array is a sequence of values.
type Array struct {
	pos, end int

	Values []Value
}

// Span satisfies the Value interface.
func (a Array) Span() jcheck.Span { return newSpan(a.pos, a.end) }

// Type satisfies the Value interface.
func (Array) Type() string { return "array" }

// JSON satisfies the Value interface.
func (a Array) JSON() string { return render(a) }

// Len reports the number of elements of a.
func (a Array) Len() int { return len(a.Values) }

// A Number is a numeric value. The value is exact; see jcheck.Decimal for
// conversions.
type Number struct {
	pos, end int
	jcheck.Decimal
}

// Span satisfies the Value interface.
func (n Number) Span() jcheck.Span { return newSpan(n.pos, n.end) }

// Type satisfies the Value interface.
func (Number) Type() string { return "number" }

// JSON satisfies the Value interface.
func (n Number) JSON() string { return n.Decimal.String() }

// A String is a string value.
type String struct {
	pos, end int
	Value    string // decoded
}

// Span satisfies the Value interface.
func (s String) Span() jcheck.Span { return newSpan(s.pos, s.end) }

// Type satisfies the Value interface.
func (String) Type() string { return "string" }

// JSON satisfies the Value interface.
func (s String) JSON() string { return jcheck.Quote(s.Value) }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	pos, end int
	Value    bool
}

// Span satisfies the Value interface.
func (b Bool) Span() jcheck.Span { return newSpan(b.pos, b.end) }

// Type satisfies the Value interface.
func (Bool) Type() string { return "boolean" }

// JSON satisfies the Value interface.
func (b Bool) JSON() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Null represents the null constant.
type Null struct{ pos, end int }

// Span satisfies the Value interface.
func (n Null) Span() jcheck.Span { return newSpan(n.pos, n.end) }

// Type satisfies the Value interface.
func (Null) Type() string { return "null" }

// JSON satisfies the Value interface.
func (Null) JSON() string { return "null" }

// render writes the compact JSON text of v. Arrays and objects are walked
// with an explicit stack, so deeply nested values do not consume goroutine
// stack in proportion to their depth.
func render(v Value) string {
	var sb strings.Builder

	// Each frame is a container and the index of its next child.
	type frame struct {
		v Value
		i int
	}
	stk := []frame{{v: v}}
	for len(stk) != 0 {
		top := &stk[len(stk)-1]
		var next Value
		switch t := top.v.(type) {
		case *Array:
			if top.i == 0 {
				sb.WriteByte('[')
			}
			if top.i == len(t.Values) {
				sb.WriteByte(']')
				stk = stk[:len(stk)-1]
				continue
			} else if top.i > 0 {
				sb.WriteByte(',')
			}
			next = t.Values[top.i]
		case *Object:
			if top.i == 0 {
				sb.WriteByte('{')
			}
			if top.i == len(t.Members) {
				sb.WriteByte('}')
				stk = stk[:len(stk)-1]
				continue
			} else if top.i > 0 {
				sb.WriteByte(',')
			}
			m := t.Members[top.i]
			sb.WriteString(jcheck.Quote(m.Key))
			sb.WriteByte(':')
			next = m.Value
		case Array:
			top.v = &t
			continue
		case Object:
			top.v = &t
			continue
		default:
			sb.WriteString(t.JSON())
			stk = stk[:len(stk)-1]
			continue
		}
		top.i++
		stk = append(stk, frame{v: next})
	}
	return sb.String()
}
