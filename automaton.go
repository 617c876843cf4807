// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"

	"github.com/creachadair/jcheck/internal/logutil"
	"github.com/creachadair/mds/stack"
)

// DefaultMaxDepth is the nesting depth limit applied when none is specified.
const DefaultMaxDepth = 10000

// LevelTrace is the logging level at which an Automaton reports each
// transition, when a logger is set.
const LevelTrace = logutil.LevelTrace

// State is a state of the grammar automaton.
type State byte

// Constants defining the valid State values.
const (
	Begin                    State = iota // before the top-level value
	InArrayEmpty                          // after "["
	InArrayLastWasValue                   // after an array element
	InArrayLastWasDelim                   // after "," in an array
	InObjectEmpty                         // after "{"
	InObjectLastWasKey                    // after a member key
	InObjectLastWasNameDelim              // after ":"
	InObjectLastWasValue                  // after a member value
	InObjectLastWasDelim                  // after "," in an object
	End                                   // after the top-level value
	Ended                                 // finished, successfully or not
)

var stateStr = [...]string{
	Begin:                    "Begin",
	InArrayEmpty:             "InArrayEmpty",
	InArrayLastWasValue:      "InArrayLastWasValue",
	InArrayLastWasDelim:      "InArrayLastWasDelim",
	InObjectEmpty:            "InObjectEmpty",
	InObjectLastWasKey:       "InObjectLastWasKey",
	InObjectLastWasNameDelim: "InObjectLastWasNameDelim",
	InObjectLastWasValue:     "InObjectLastWasValue",
	InObjectLastWasDelim:     "InObjectLastWasDelim",
	End:                      "End",
	Ended:                    "Ended",
}

func (s State) String() string {
	if int(s) < len(stateStr) {
		return stateStr[s]
	}
	return "State(?)"
}

// ActionKind is the type of an Action.
type ActionKind byte

// Constants defining the valid ActionKind values.
const (
	Nothing   ActionKind = iota // token consumed, no structural effect
	NewArray                    // begin an array
	NewObject                   // begin an object
	NewKey                      // a member key; see Action.Key
	Push                        // a scalar value; see Action.Value
	Close                       // end the innermost array or object
	TheEnd                      // the input is complete and valid
)

var actionStr = [...]string{
	Nothing:   "Nothing",
	NewArray:  "NewArray",
	NewObject: "NewObject",
	NewKey:    "NewKey",
	Push:      "Push",
	Close:     "Close",
	TheEnd:    "TheEnd",
}

func (k ActionKind) String() string {
	if int(k) < len(actionStr) {
		return actionStr[k]
	}
	return "ActionKind(?)"
}

// An Action is a structural instruction emitted by the Automaton for a
// downstream consumer.
type Action struct {
	Kind ActionKind

	// For NewKey, the decoded key. For a Push or Close that completes an
	// object member, the key of that member.
	Key string

	// For Push, the scalar token.
	Value Token
}

// marker is an entry of the context stack.
type marker byte

const (
	arrayMarker marker = iota + 1
	objectMarker
)

func (m marker) String() string {
	if m == arrayMarker {
		return "array"
	}
	return "object"
}

// An Automaton consumes tokens from a Scanner and validates them against the
// JSON grammar, emitting one Action per token.
//
// Call Next to advance the automaton. After the input is accepted, Next
// reports a TheEnd action, and thereafter returns io.EOF. Errors are
// terminal: after an error, every call to Next returns the same error.
type Automaton struct {
	sc    *Scanner
	state State
	act   Action
	err   error

	ctx  *stack.Stack[marker] // open arrays and objects, innermost on top
	keys *stack.Stack[string] // keys awaiting a value, innermost on top

	maxDepth int
	log      *slog.Logger
}

// NewAutomaton constructs an automaton that consumes tokens from sc.
func NewAutomaton(sc *Scanner) *Automaton {
	return &Automaton{
		sc:       sc,
		state:    Begin,
		ctx:      stack.New[marker](),
		keys:     stack.New[string](),
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth sets the maximum nesting depth of arrays and objects. If n == 0
// the limit is DefaultMaxDepth; if n < 0 nesting is unlimited.
func (a *Automaton) SetMaxDepth(n int) {
	if n == 0 {
		n = DefaultMaxDepth
	}
	a.maxDepth = n
}

// SetLogger sets a logger to which the automaton reports each transition at
// LevelTrace. If logger == nil, logging is disabled.
func (a *Automaton) SetLogger(logger *slog.Logger) { a.log = logger }

// State reports the current state of the automaton.
func (a *Automaton) State() State { return a.state }

// Depth reports the current nesting depth.
func (a *Automaton) Depth() int { return a.ctx.Len() }

// Action returns the current action.
func (a *Automaton) Action() Action { return a.act }

// Location returns the location of the most recent token.
func (a *Automaton) Location() Location { return a.sc.Location() }

// Err returns the last error reported by Next.
func (a *Automaton) Err() error { return a.err }

// Next advances a to the next action, or reports an error. After the TheEnd
// action, Next returns io.EOF.
func (a *Automaton) Next() error {
	if a.err != nil {
		return a.err
	} else if a.state == Ended {
		a.err = io.EOF
		return a.err
	}

	var tok Token
	serr := a.sc.Next()
	if serr == nil {
		tok = a.sc.Token()
	}
	next, act, err := a.step(tok, serr)
	if a.log != nil && a.log.Enabled(context.Background(), LevelTrace) {
		logutil.Trace(a.log, "transition",
			"state", a.state, "token", tokenLabel(tok, serr), "next", next, "depth", a.ctx.Len())
	}
	if err != nil {
		a.state, a.act, a.err = Ended, Action{}, err
		return err
	}
	a.state, a.act = next, act
	return nil
}

// All returns an iterator over the remaining actions of a, up to and
// including TheEnd. The iterator stops after yielding an error.
func (a *Automaton) All() iter.Seq2[Action, error] {
	return func(yield func(Action, error) bool) {
		for {
			if err := a.Next(); err == io.EOF {
				return
			} else if err != nil {
				yield(Action{}, err)
				return
			}
			if !yield(a.act, nil) {
				return
			}
		}
	}
}

// step is the transition function of the automaton. Given the current state
// and either the next token (serr == nil) or the error from the scanner, it
// returns the next state and the action to emit.
func (a *Automaton) step(tok Token, serr error) (State, Action, error) {
	if serr != nil {
		return a.stepError(serr)
	}
	if tok.Kind == Whitespace {
		return a.state, Action{Kind: Nothing}, nil
	}

	switch a.state {
	case Begin:
		if isOpen(tok.Kind) {
			return a.open(tok.Kind)
		} else if tok.Kind.IsScalar() {
			return End, Action{Kind: Push, Value: tok}, nil
		}

	case InArrayEmpty, InArrayLastWasDelim:
		if isOpen(tok.Kind) {
			return a.open(tok.Kind)
		} else if tok.Kind.IsScalar() {
			return InArrayLastWasValue, Action{Kind: Push, Value: tok}, nil
		} else if tok.Kind == ArrayEnd && a.state == InArrayEmpty {
			return a.close(tok.Kind)
		}

	case InArrayLastWasValue:
		switch tok.Kind {
		case ValueSeparator:
			return InArrayLastWasDelim, Action{Kind: Nothing}, nil
		case ArrayEnd:
			return a.close(tok.Kind)
		}

	case InObjectEmpty, InObjectLastWasDelim:
		if tok.Kind == String {
			a.keys.Push(tok.Text)
			return InObjectLastWasKey, Action{Kind: NewKey, Key: tok.Text}, nil
		} else if tok.Kind == ObjectEnd && a.state == InObjectEmpty {
			return a.close(tok.Kind)
		}

	case InObjectLastWasKey:
		if tok.Kind == NameSeparator {
			return InObjectLastWasNameDelim, Action{Kind: Nothing}, nil
		}

	case InObjectLastWasNameDelim:
		if isOpen(tok.Kind) {
			return a.open(tok.Kind) // the key remains pending until the close
		} else if tok.Kind.IsScalar() {
			key, ok := a.keys.Pop()
			if !ok {
				return Ended, Action{}, Internalf("value %v with no pending key", tok)
			}
			return InObjectLastWasValue, Action{Kind: Push, Key: key, Value: tok}, nil
		}

	case InObjectLastWasValue:
		switch tok.Kind {
		case ValueSeparator:
			return InObjectLastWasDelim, Action{Kind: Nothing}, nil
		case ObjectEnd:
			return a.close(tok.Kind)
		}

	case End:
		return Ended, Action{}, a.syntaxError(InputTooLong, &tok, nil)

	default:
		return Ended, Action{}, Internalf("step in state %v", a.state)
	}
	return Ended, Action{}, a.syntaxError(UnexpectedToken, &tok, nil)
}

// stepError handles the end of input or a failure from the scanner.
func (a *Automaton) stepError(serr error) (State, Action, error) {
	if a.state == End {
		if serr == io.EOF {
			if !a.ctx.IsEmpty() || !a.keys.IsEmpty() {
				return Ended, Action{}, Internalf("end of input with %d open contexts and %d pending keys",
					a.ctx.Len(), a.keys.Len())
			}
			return Ended, Action{Kind: TheEnd}, nil
		}

		// A malformed token after the value is extra input, not a lexical error.
		var lex *SyntaxError
		if errors.As(serr, &lex) {
			return Ended, Action{}, a.syntaxError(InputTooLong, nil, serr)
		}
		return Ended, Action{}, serr
	}
	if serr == io.EOF {
		return Ended, Action{}, a.syntaxError(InputEndedEarly, nil, nil)
	}
	return Ended, Action{}, serr
}

// open pushes a new context for the given opening bracket.
func (a *Automaton) open(kind Kind) (State, Action, error) {
	if a.maxDepth >= 0 && a.ctx.Len() >= a.maxDepth {
		tok := Token{Kind: kind}
		return Ended, Action{}, a.syntaxError(NestingTooDeep, &tok, nil)
	}
	if kind == ArrayBegin {
		a.ctx.Push(arrayMarker)
		return InArrayEmpty, Action{Kind: NewArray}, nil
	}
	a.ctx.Push(objectMarker)
	return InObjectEmpty, Action{Kind: NewObject}, nil
}

// close pops the innermost context, which must match the closing bracket, and
// resumes the enclosing context.
func (a *Automaton) close(kind Kind) (State, Action, error) {
	want := arrayMarker
	if kind == ObjectEnd {
		want = objectMarker
	}
	m, ok := a.ctx.Pop()
	if !ok {
		return Ended, Action{}, Internalf("close %v with no open context", kind)
	} else if m != want {
		return Ended, Action{}, Internalf("close %v does not match open %v", kind, m)
	}

	top, ok := a.ctx.Peek(0)
	switch {
	case !ok:
		return End, Action{Kind: Close}, nil
	case top == arrayMarker:
		return InArrayLastWasValue, Action{Kind: Close}, nil
	}

	// The closed value completes a member of the enclosing object.
	key, ok := a.keys.Pop()
	if !ok {
		return Ended, Action{}, Internalf("close %v in object with no pending key", kind)
	}
	return InObjectLastWasValue, Action{Kind: Close, Key: key}, nil
}

func (a *Automaton) syntaxError(kind ErrorKind, tok *Token, cause error) *SyntaxError {
	loc := a.sc.Location()
	return &SyntaxError{
		Kind:     kind,
		Location: loc.First,
		Offset:   loc.Span.Pos,
		Token:    tok,
		err:      cause,
	}
}

func isOpen(k Kind) bool { return k == ArrayBegin || k == ObjectBegin }

func tokenLabel(tok Token, err error) string {
	if err == io.EOF {
		return "EOF"
	} else if err != nil {
		return "error"
	}
	return tok.String()
}
