// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"io"
	"log/slog"
)

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures arrays and objects are correctly balanced.
//
// The Location passed to each method is that of the token that triggered the
// event.
type Handler interface {
	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Location) error

	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Location) error

	// Report the decoded key of an object member. The value of the member is
	// reported next, by Value or by a Begin method.
	Key(key string, loc Location) error

	// Report a scalar value: a number, string, or constant.
	Value(tok Token, loc Location) error

	// End the most-recently-opened array or object, whose close bracket is at
	// loc.
	Close(loc Location) error

	// EndOfInput reports that the input is complete and valid.
	EndOfInput(loc Location) error
}

// Options control the behavior of a Stream. A nil *Options is ready for use
// and provides default values as described.
type Options struct {
	// The maximum nesting depth of arrays and objects. If zero, use
	// DefaultMaxDepth. If negative, nesting is unlimited.
	MaxDepth int

	// If true, honor a byte order mark at the start of the input. Otherwise a
	// BOM is rejected as an unknown token.
	AllowBOM bool

	// If non-nil, report each transition of the automaton at LevelTrace.
	Logger *slog.Logger
}

func (o *Options) maxDepth() int {
	if o == nil {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) allowBOM() bool { return o != nil && o.AllowBOM }

func (o *Options) logger() *slog.Logger {
	if o == nil {
		return nil
	}
	return o.Logger
}

func (o *Options) source(r io.Reader) io.RuneReader {
	if o.allowBOM() {
		return NewSourceBOM(r)
	}
	return NewSource(r)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	a *Automaton
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader, opts *Options) *Stream {
	return NewStreamFromRunes(opts.source(r), opts)
}

// NewStreamFromRunes constructs a new Stream that consumes already-decoded
// codepoints from src. The AllowBOM option has no effect.
func NewStreamFromRunes(src io.RuneReader, opts *Options) *Stream {
	a := NewAutomaton(NewScanner(src))
	a.SetMaxDepth(opts.maxDepth())
	a.SetLogger(opts.logger())
	return &Stream{a: a}
}

// Automaton returns the automaton underlying s.
func (s *Stream) Automaton() *Automaton { return s.a }

// Parse parses the input stream and delivers events to h until either an
// error occurs or the input is exhausted. If h == nil, the input is validated
// without reporting events.
//
// In case of invalid input, the returned error has type [*SyntaxError]. An
// error reported by h is returned without modification.
func (s *Stream) Parse(h Handler) error {
	for {
		if err := s.a.Next(); err != nil {
			return err
		}
		act := s.a.Action()
		if act.Kind == TheEnd {
			if h != nil {
				return h.EndOfInput(s.a.Location())
			}
			return nil
		} else if act.Kind == Nothing || h == nil {
			continue
		}
		if err := dispatch(h, act, s.a.Location()); err != nil {
			return err
		}
	}
}

func dispatch(h Handler, act Action, loc Location) error {
	switch act.Kind {
	case NewArray:
		return h.BeginArray(loc)
	case NewObject:
		return h.BeginObject(loc)
	case NewKey:
		return h.Key(act.Key, loc)
	case Push:
		return h.Value(act.Value, loc)
	case Close:
		return h.Close(loc)
	}
	return Internalf("unexpected action %v", act.Kind)
}
