// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bytes"
	"io"
	"strings"

	"github.com/creachadair/jcheck"
	"github.com/creachadair/mds/stack"
)

// Parse parses and returns a single JSON value from r. Leading and trailing
// whitespace is permitted, but nothing else.
func Parse(r io.Reader, opts *jcheck.Options) (Value, error) {
	b := NewBuilder()
	if err := jcheck.NewStream(r, opts).Parse(b); err != nil {
		return nil, err
	}
	return b.Result()
}

// ParseBytes is Parse on the contents of data.
func ParseBytes(data []byte, opts *jcheck.Options) (Value, error) {
	return Parse(bytes.NewReader(data), opts)
}

// ParseString is Parse on the contents of s.
func ParseString(s string, opts *jcheck.Options) (Value, error) {
	return Parse(strings.NewReader(s), opts)
}

// A Builder implements the jcheck.Handler interface to construct an abstract
// syntax tree for a JSON value. Construction does not recurse, so the depth of
// the input is limited only by the options of the stream.
//
// A Builder is single-use: after EndOfInput, Result reports the value.
type Builder struct {
	stk  *stack.Stack[Value]   // open arrays and objects, innermost on top
	keys *stack.Stack[*Member] // members awaiting a value, innermost on top

	result Value
	done   bool
}

// NewBuilder constructs an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		stk:  stack.New[Value](),
		keys: stack.New[*Member](),
	}
}

// Result returns the value constructed by b. It reports an error if the
// builder has not received a complete value.
func (b *Builder) Result() (Value, error) {
	if !b.done || b.result == nil {
		return nil, jcheck.Internalf("incomplete value (done=%v)", b.done)
	}
	return b.result, nil
}

// attach adds a complete value v to the innermost open container, or records
// it as the result if there is none.
func (b *Builder) attach(v Value) error {
	top, ok := b.stk.Peek(0)
	if !ok {
		if b.result != nil {
			return jcheck.Internalf("multiple top-level values")
		}
		b.result = v
		return nil
	}
	switch t := top.(type) {
	case *Array:
		t.Values = append(t.Values, v)
	case *Object:
		m, ok := b.keys.Pop()
		if !ok {
			return jcheck.Internalf("object value %s with no pending key", v.Type())
		}
		m.Value = v
		m.end = v.Span().End
	default:
		return jcheck.Internalf("unexpected container %T", top)
	}
	return nil
}

// BeginArray implements part of the jcheck.Handler interface.
func (b *Builder) BeginArray(loc jcheck.Location) error {
	b.stk.Push(&Array{pos: loc.Span.Pos})
	return nil
}

// BeginObject implements part of the jcheck.Handler interface.
func (b *Builder) BeginObject(loc jcheck.Location) error {
	b.stk.Push(&Object{pos: loc.Span.Pos})
	return nil
}

// Key implements part of the jcheck.Handler interface.
func (b *Builder) Key(key string, loc jcheck.Location) error {
	// The object this member belongs to is atop the stack. Add the new member
	// to its collection eagerly, so that the value can be filled in later.
	top, _ := b.stk.Peek(0)
	obj, ok := top.(*Object)
	if !ok {
		return jcheck.Internalf("key %q outside an object", key)
	}
	m := &Member{pos: loc.Span.Pos, Key: key}
	obj.Members = append(obj.Members, m)
	b.keys.Push(m)
	return nil
}

// Value implements part of the jcheck.Handler interface.
func (b *Builder) Value(tok jcheck.Token, loc jcheck.Location) error {
	pos, end := loc.Span.Pos, loc.Span.End
	switch tok.Kind {
	case jcheck.Number:
		return b.attach(&Number{pos: pos, end: end, Decimal: tok.Num})
	case jcheck.String:
		return b.attach(&String{pos: pos, end: end, Value: tok.Text})
	case jcheck.True, jcheck.False:
		return b.attach(&Bool{pos: pos, end: end, Value: tok.Kind == jcheck.True})
	case jcheck.Null:
		return b.attach(&Null{pos: pos, end: end})
	}
	return jcheck.Internalf("unknown value %v", tok.Kind)
}

// Close implements part of the jcheck.Handler interface.
func (b *Builder) Close(loc jcheck.Location) error {
	v, ok := b.stk.Pop()
	if !ok {
		return jcheck.Internalf("close with no open value")
	}
	switch t := v.(type) {
	case *Array:
		t.end = loc.Span.End
	case *Object:
		t.end = loc.Span.End
	}
	return b.attach(v)
}

// EndOfInput implements part of the jcheck.Handler interface.
func (b *Builder) EndOfInput(loc jcheck.Location) error {
	if !b.stk.IsEmpty() || !b.keys.IsEmpty() {
		return jcheck.Internalf("end of input with %d open values and %d pending keys",
			b.stk.Len(), b.keys.Len())
	}
	b.done = true
	return nil
}
