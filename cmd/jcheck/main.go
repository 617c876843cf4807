// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jcheck reports whether its inputs are valid JSON text, as defined
// by RFC 8259. Errors are reported with their line and column.
//
// Usage:
//
//	jcheck [flags] [FILE ...]
//
// With no files, or a file named "-", jcheck reads standard input.
// The exit status is 0 if all inputs are valid, 1 if any input has a syntax
// error, 2 if the checker itself failed, and 3 for usage or I/O errors.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jcheck"
	"github.com/creachadair/jcheck/ast"
	"github.com/creachadair/jcheck/ast/cursor"
	"github.com/creachadair/jcheck/internal/config"
	"github.com/tailscale/hujson"
)

// Exit codes.
const (
	exitOK       = 0
	exitSyntax   = 1
	exitInternal = 2
	exitUsage    = 3
)

// stdin is the input read for the file name "-".
var stdin io.Reader = os.Stdin

// CLI defines the command-line interface.
type CLI struct {
	Files    []string `arg:"" optional:"" help:"Paths of JSON files to check. If none, reads from stdin." type:"path"`
	Config   string   `help:"Path of a YAML config file. If unset, the nearest jcheck.yml is used." short:"c" type:"path"`
	MaxDepth int      `help:"Maximum nesting depth (0 uses the config value, negative for no limit)." name:"max-depth"`
	AllowBOM bool     `help:"Permit a leading byte order mark." name:"allow-bom"`
	Lenient  bool     `help:"Accept comments and trailing commas (JWCC)." short:"l"`
	Tree     bool     `help:"Build a syntax tree and report the type of each value." short:"t"`
	Pointer  string   `help:"Print the value at this JSON Pointer (RFC 6901); implies --tree." short:"p"`
	LogLevel string   `help:"Log level (trace, debug, info, warn, error)." name:"log-level"`
	Quiet    bool     `help:"Report nothing; the exit status is the only output." short:"q"`
}

// exitCode is raised by the kong exit hook to end run with a status.
type exitCode int

func main() { os.Exit(run(os.Args[1:], os.Stdout, os.Stderr)) }

// run executes the program with the given arguments, and returns its exit
// status.
func run(args []string, stdout, stderr io.Writer) (code int) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("jcheck"),
		kong.Description("Check that inputs are valid JSON (RFC 8259)."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "jcheck: %v\n", err)
		return exitInternal
	}
	defer func() {
		if x := recover(); x != nil {
			c, ok := x.(exitCode)
			if !ok {
				panic(x)
			}
			code = int(c)
		}
	}()
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "jcheck: %v\n", err)
		return exitUsage
	}

	cfg, err := loadConfig(&cli)
	if err != nil {
		fmt.Fprintf(stderr, "jcheck: %v\n", err)
		return exitUsage
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "jcheck: %v\n", err)
		return exitUsage
	}

	files := cli.Files
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, name := range files {
		desc, err := checkFile(name, cfg, logger, cli.Pointer)
		if err == nil {
			if !cli.Quiet {
				fmt.Fprintf(stdout, "%s: ok%s\n", name, desc)
			}
			continue
		}
		if !cli.Quiet {
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
		}
		code = max(code, statusOf(err))
	}
	return code
}

// loadConfig reads the config file named by cli, or the nearest config file
// if none is named, and applies the flag settings over it.
func loadConfig(cli *CLI) (*config.Config, error) {
	path := cli.Config
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	cfg := config.NewConfig()
	if path != "" {
		var err error
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if cli.MaxDepth != 0 {
		cfg.MaxDepth = cli.MaxDepth
	}
	cfg.AllowBOM = cfg.AllowBOM || cli.AllowBOM
	cfg.Lenient = cfg.Lenient || cli.Lenient
	cfg.Tree = cfg.Tree || cli.Tree || cli.Pointer != ""
	if cli.LogLevel != "" {
		cfg.LogLevel = cli.LogLevel
	}
	return cfg, cfg.Check()
}

// checkFile checks the contents of the named file. If cfg.Tree is set, it
// returns a description of the value parsed, or of the value at ptr if ptr is
// not empty.
func checkFile(name string, cfg *config.Config, logger *slog.Logger, ptr string) (string, error) {
	var r io.Reader
	if name == "-" {
		r = stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	opts := cfg.Options(logger)

	if cfg.Lenient {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		if cfg.AllowBOM {
			data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
		}

		// Comments and trailing commas are replaced by spaces, so offsets in
		// the standardized text match the original. If the input is not valid
		// JWCC, check the original so the error is reported in strict terms.
		if std, err := hujson.Standardize(bytes.Clone(data)); err == nil {
			data = std
		}
		r = bytes.NewReader(data)
	}

	if !cfg.Tree {
		return "", jcheck.Validate(r, opts)
	}
	v, err := ast.Parse(r, opts)
	if err != nil {
		return "", err
	} else if ptr != "" {
		sel, err := cursor.Pointer(v, ptr)
		if err != nil {
			return "", err
		}
		return ": " + sel.JSON(), nil
	}
	return describe(v), nil
}

func describe(v ast.Value) string {
	switch t := v.(type) {
	case *ast.Object:
		return fmt.Sprintf(" (object, %d members)", t.Len())
	case *ast.Array:
		return fmt.Sprintf(" (array, %d values)", t.Len())
	}
	return " (" + v.Type() + ")"
}

// statusOf returns the exit status for a failed check.
func statusOf(err error) int {
	switch jcheck.ClassOf(err) {
	case jcheck.Lexical, jcheck.Grammar:
		return exitSyntax
	case jcheck.Internal:
		return exitInternal
	}
	return exitUsage
}
