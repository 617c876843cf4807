// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jcheck

import "github.com/creachadair/jcheck/internal/escape"

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid        Kind = iota // invalid token
	ArrayBegin                 // left square bracket "["
	ArrayEnd                   // right square bracket "]"
	ObjectBegin                // left brace "{"
	ObjectEnd                  // right brace "}"
	NameSeparator              // colon ":"
	ValueSeparator             // comma ","
	Number                     // number
	String                     // quoted string
	True                       // constant: true
	False                      // constant: false
	Null                       // constant: null
	Whitespace                 // a maximal run of space, tab, CR, LF
)

var tokenStr = [...]string{
	Invalid:        "invalid token",
	ArrayBegin:     `"["`,
	ArrayEnd:       `"]"`,
	ObjectBegin:    `"{"`,
	ObjectEnd:      `"}"`,
	NameSeparator:  `":"`,
	ValueSeparator: `","`,
	Number:         "number",
	String:         "string",
	True:           "true",
	False:          "false",
	Null:           "null",
	Whitespace:     "whitespace",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// IsScalar reports whether k is a complete JSON value by itself: a number,
// string, or one of the constants.
func (k Kind) IsScalar() bool {
	switch k {
	case Number, String, True, False, Null:
		return true
	}
	return false
}

// A Token is a single lexical token. Tokens are self-contained, and do not
// refer back to the input they were read from.
type Token struct {
	Kind Kind
	Text string  // for String: the decoded contents, without quotes
	Num  Decimal // for Number: the value
}

// String renders t for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case String:
		return "string " + string(escape.Quote(t.Text))
	case Number:
		return "number " + t.Num.String()
	}
	return t.Kind.String()
}
