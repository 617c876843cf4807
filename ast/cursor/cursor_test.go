// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package cursor_test

import (
	"testing"

	"github.com/creachadair/jcheck/ast"
	"github.com/creachadair/jcheck/ast/cursor"
	"github.com/google/go-cmp/cmp"
)

const testJSON = `{
  "list": [
    {"x": 1},
    {"x": 2}
  ],
  "y": {"hello": "there"},
  "o": ["hi", "yourself"],
  "xyz": {"p": true, "d": true, "q": false},
  "a/b": {"m~n": 5, "": 6}
}`

func mustParse(t *testing.T) *ast.Object {
	t.Helper()
	v, err := ast.ParseString(testJSON, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v.(*ast.Object)
}

func TestCursor(t *testing.T) {
	v := mustParse(t)
	list := v.Find("list").Value.(*ast.Array)
	xyz := v.Find("xyz").Value.(*ast.Object)

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"WrongType", []any{true}, v, true},
		{"ObjIndex", []any{0}, list, false},
		{"ObjIndexNeg", []any{-4}, v.Find("y").Value, false},
		{"ObjRange", []any{11}, v, true},

		{"ArrayPos", []any{"list", 1}, list.Values[1], false},
		{"ArrayNeg", []any{"list", -1}, list.Values[1], false},
		{"ArrayString", []any{"list", "0", "x"}, list.Values[0].(*ast.Object).Find("x").Value, false},
		{"ArrayRange", []any{"o", 25}, v.Find("o").Value, true},
		{"ArrayStringRange", []any{"o", "2"}, v.Find("o").Value, true},
		{"ArrayLeadingZero", []any{"o", "01"}, v.Find("o").Value, true},
		{"ArrayNotIndex", []any{"o", "x"}, v.Find("o").Value, true},
		{"ObjPath", []any{"xyz", "d"}, xyz.Find("d").Value, false},
		{"ScalarPath", []any{"xyz", "d", "e"}, xyz.Find("d").Value, true},
		{"ScalarIndex", []any{"y", "hello", 0}, v.Find("y").Value.(*ast.Object).Find("hello").Value, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := cursor.New(v).Down(tc.path...)
			err := c.Err()
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Down %+v: unexpected error: %v", tc.path, err)
				}
			} else if tc.fail {
				t.Fatalf("Down %+v: got %s, want error", tc.path, c.Value().JSON())
			}
			if got := c.Value(); got != tc.want {
				t.Errorf("Down %+v: got %s, want %s", tc.path, got.JSON(), tc.want.JSON())
			}
		})
	}
}

func TestCursorMoves(t *testing.T) {
	v := mustParse(t)
	c := cursor.New(v)
	if !c.AtOrigin() || c.Origin() != ast.Value(v) {
		t.Fatal("New cursor is not at its origin")
	}
	c.Down("list", 0, "x")
	if got := len(c.Path()); got != 4 {
		t.Errorf("Path: got %d values, want 4", got)
	}
	if got := c.Up().Up().Value().Type(); got != "array" {
		t.Errorf("Up: got %s, want array", got)
	}
	c.Down("bogus")
	if c.Err() == nil {
		t.Error("Down(bogus): got nil error")
	}
	c.Reset()
	if !c.AtOrigin() || c.Err() != nil {
		t.Errorf("Reset: AtOrigin=%v, Err=%v", c.AtOrigin(), c.Err())
	}
	if c.Up().Value() != ast.Value(v) {
		t.Error("Up at origin moved the cursor")
	}
}

func TestPath(t *testing.T) {
	v := mustParse(t)

	s, err := cursor.Path[*ast.String](v, "o", 1)
	if err != nil {
		t.Fatalf("Path: unexpected error: %v", err)
	} else if s.Value != "yourself" {
		t.Errorf("Path: got %q, want yourself", s.Value)
	}

	if n, err := cursor.Path[*ast.Number](v, "o", 1); err == nil {
		t.Errorf("Path: got %v, want type error", n)
	}
	if n, err := cursor.Path[*ast.Number](v, "o", 2); err == nil {
		t.Errorf("Path: got %v, want range error", n)
	}
}

func TestPointer(t *testing.T) {
	v := mustParse(t)
	tests := []struct {
		ptr  string
		want string // JSON of the result, or "" for error
	}{
		{"", v.JSON()},
		{"/list", `[{"x":1},{"x":2}]`},
		{"/list/1/x", "2"},
		{"/y/hello", `"there"`},
		{"/a~1b/m~0n", "5"},
		{"/a~1b/", "6"},
		{"/xyz/q", "false"},

		{"list", ""},
		{"/list/-", ""},
		{"/list/2", ""},
		{"/a~2b", ""},
		{"/a~", ""},
		{"/nonesuch", ""},
	}
	for _, test := range tests {
		got, err := cursor.Pointer(v, test.ptr)
		if test.want == "" {
			if err == nil {
				t.Errorf("Pointer(%q): got %s, want error", test.ptr, got.JSON())
			}
			continue
		} else if err != nil {
			t.Errorf("Pointer(%q): unexpected error: %v", test.ptr, err)
			continue
		}
		if diff := cmp.Diff(test.want, got.JSON()); diff != "" {
			t.Errorf("Pointer(%q) (-want, +got):\n%s", test.ptr, diff)
		}
	}
}
