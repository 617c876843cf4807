// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jcheck implements a strict RFC 8259 JSON validator and parser.
//
// Input flows through a pipeline of pull-based stages:
//
//	source (io.RuneReader) → Scanner → Automaton → Stream → Handler
//
// Each stage pulls from the one before it, on demand. Nothing is buffered
// beyond the current token, the stack of open arrays and objects, and the
// keys of the object members whose values are incomplete.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from a source of codepoints and call its Next method to iterate over the
// stream. Next advances to the next input token and returns nil, or reports an
// error:
//
//	s := jcheck.NewScanner(jcheck.NewSource(input))
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// Tokens are decoded as they are scanned: a String token carries its decoded
// text, and a Number token carries an exact Decimal.
//
// # Validation
//
// The Automaton type consumes tokens from a Scanner and checks them against the
// grammar, producing one Action per token. The Stream type drives an Automaton
// and delivers its actions to a Handler. To check an input without building
// anything, use Validate:
//
//	if err := jcheck.Validate(input, nil); err != nil {
//	   log.Fatalf("Invalid JSON: %v", err)
//	}
//
// To construct a tree of values, see package ast.
//
// # Errors
//
// Invalid input is reported as a *SyntaxError whose Kind identifies the
// problem. Each ErrorKind belongs to a Class, either Lexical (a malformed
// token) or Grammar (a misplaced token). A violated invariant of the parser
// itself is reported as an *InternalError, of class Internal; such an error
// does not describe the input.
//
//	switch jcheck.ClassOf(err) {
//	case jcheck.Lexical, jcheck.Grammar:
//	   log.Printf("Input rejected: %v", err)
//	case jcheck.Internal:
//	   log.Printf("Parser defect: %v", err)
//	}
package jcheck
