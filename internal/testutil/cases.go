// Package testutil defines support code for unit tests.
package testutil

import "github.com/creachadair/jcheck"

// A Case is an input paired with the outcome of parsing it.
type Case struct {
	Name  string
	Input string

	// The kind of error reported for Input, or 0 if Input is valid.
	Kind jcheck.ErrorKind
}

// Valid reports whether c describes an input that should be accepted.
func (c Case) Valid() bool { return c.Kind == 0 }

// Cases are shared inputs with their expected outcomes.
var Cases = []Case{
	// Accepted scalars
	{"Zero", "0", 0},
	{"NegZero", "-0", 0},
	{"Int", "12345", 0},
	{"Float", "-1.5e+10", 0},
	{"UpperExp", "1E5", 0},
	{"ZeroFrac", "0.0", 0},
	{"EmptyString", `""`, 0},
	{"Escapes", `"\"\\\/\b\f\n\r\t"`, 0},
	{"UnicodeEscape", `"\u00e9\u0041"`, 0},
	{"SurrogatePair", `"\ud83d\ude00"`, 0},
	{"True", "true", 0},
	{"False", "false", 0},
	{"Null", "null", 0},
	{"Padded", "\n\t 1 \r\n", 0},

	// Accepted structures
	{"EmptyArray", "[]", 0},
	{"EmptyObject", "{}", 0},
	{"SpacedArray", " [ ] ", 0},
	{"MixedArray", "[1,2,3,{}]", 0},
	{"ObjectArray", `{"a":[1,2]}`, 0},
	{"DuplicateKeys", `{"a":1,"a":2}`, 0},
	{"NestedArrays", "[[[]]]", 0},
	{"EmptyKeys", `{"":{"":[null]}}`, 0},
	{"Spaced", `{ "a" : [ true , false ] , "b" : { } }`, 0},

	// Lexical errors
	{"LeadingPlus", "+1", jcheck.UnknownToken},
	{"LeadingDot", ".5", jcheck.UnknownToken},
	{"RawControl", "[\x00]", jcheck.UnknownToken},
	{"UnexpectedBOM", "\ufeff1", jcheck.UnknownToken},
	{"MinusLetter", "-a", jcheck.ExpectedADigit},
	{"DotLetter", "1.x", jcheck.ExpectedADigit},
	{"ExpLetter", "1ex", jcheck.ExpectedADigit},
	{"BadHex", `"\u12G4"`, jcheck.ExpectedAHexdigit},
	{"ShortLiteral", "tru", jcheck.LiteralDidntMatch},
	{"WrongLiteral", "trux", jcheck.LiteralDidntMatch},
	{"WrongNull", "nul!", jcheck.LiteralDidntMatch},
	{"ControlInString", "\"a\x01\"", jcheck.ControlCharacterUnescaped},
	{"NewlineInString", "\"a\nb\"", jcheck.ControlCharacterUnescaped},
	{"UnknownEscape", `"\x"`, jcheck.UnknownEscapeSequence},
	{"LoneLow", `"\udc00"`, jcheck.InvalidUnicodeCodePoint},
	{"LoneHigh", `"\ud800"`, jcheck.BigMessWithSurrogatePairs},
	{"HighThenText", `"\ud800x"`, jcheck.BigMessWithSurrogatePairs},
	{"HighThenBMP", `"\ud800A"`, jcheck.BigMessWithSurrogatePairs},
	{"HighThenEscape", `"\ud800\n"`, jcheck.BigMessWithSurrogatePairs},
	{"InvalidByte", "\xff", jcheck.InvalidEncoding},
	{"EncodedSurrogate", "[\"\xed\xa0\x80\"]", jcheck.InvalidEncoding},
	{"Overlong", "\"\xc0\xaf\"", jcheck.InvalidEncoding},

	// Grammar errors
	{"Empty", "", jcheck.InputEndedEarly},
	{"Blank", "   ", jcheck.InputEndedEarly},
	{"OpenArray", "[", jcheck.InputEndedEarly},
	{"OpenObject", "{", jcheck.InputEndedEarly},
	{"MissingValue", `{"a":`, jcheck.InputEndedEarly},
	{"BareMinus", "-", jcheck.InputEndedEarly},
	{"BareDot", "1.", jcheck.InputEndedEarly},
	{"BareExp", "1e", jcheck.InputEndedEarly},
	{"BareExpSign", "1e+", jcheck.InputEndedEarly},
	{"OpenString", `"abc`, jcheck.InputEndedEarly},
	{"OpenPair", `"\ud800`, jcheck.InputEndedEarly},
	{"OpenHex", `"\u12`, jcheck.InputEndedEarly},
	{"LeadingZero", "[0123]", jcheck.UnexpectedToken},
	{"TrailingComma", "[1,2,]", jcheck.UnexpectedToken},
	{"TrailingMember", `{"a":1,}`, jcheck.UnexpectedToken},
	{"LeadingComma", "[,1]", jcheck.UnexpectedToken},
	{"MissingComma", "[1 2]", jcheck.UnexpectedToken},
	{"MissingMemberComma", `{"a":1 "b":2}`, jcheck.UnexpectedToken},
	{"MissingColon", `{"a" 1}`, jcheck.UnexpectedToken},
	{"NumberKey", "{1:2}", jcheck.UnexpectedToken},
	{"ColonInArray", `["a":1]`, jcheck.UnexpectedToken},
	{"BareClose", "]", jcheck.UnexpectedToken},
	{"Mismatched", "[}", jcheck.UnexpectedToken},
	{"TwoValues", "1 2", jcheck.InputTooLong},
	{"TwoObjects", "{}{}", jcheck.InputTooLong},
	{"ExtraClose", "[1]]", jcheck.InputTooLong},
	{"ZeroThenDigit", "01", jcheck.InputTooLong},
	{"TrailingGarbage", "1 x", jcheck.InputTooLong},
	{"TrailingBadString", `null "\q"`, jcheck.InputTooLong},
}
