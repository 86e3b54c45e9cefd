// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package dbgstr parses and pretty prints debug strings, the text form of nested protocol buffer
// messages as printed by DebugString or text_format:
//
//	foo: "bar" nested { x: 1 } nested { x: 2 }
//
// Parse returns the document as an *ast.Message, where repeated keys are merged into lists.
// Format renders a document as indented canonical text. All functions are safe for concurrent use.
package dbgstr

import (
	"log/slog"

	"github.com/golangee/dbgstr/ast"
	"github.com/golangee/dbgstr/encoder"
	"github.com/golangee/dbgstr/parser"
	"github.com/golangee/dbgstr/token"
)

// Parse reads a debug string. Repeated keys on the same level become an *ast.Repeated.
// Errors are either a *token.LexError or a *parser.ParseError, use token.Report to explain them.
func Parse(text string, opts ...token.Option) (*ast.Message, error) {
	return parser.NewParser("", text, opts...).Parse()
}

// Format renders v as canonical text. It never fails.
func Format(v ast.Value, opts encoder.Options) string {
	return encoder.Format(v, opts)
}

// Result is a parsed document together with the problems the lexer recovered from.
type Result struct {
	Document    *ast.Message
	Diagnostics []token.Diagnostic
}

// ParseDetailed is like Parse, but also returns diagnostics for escape runs which could not be
// decoded and for illegal characters skipped in lenient mode.
func ParseDetailed(text string, opts ...token.Option) (*Result, error) {
	p := parser.NewParser("", text, opts...)

	doc, err := p.Parse()
	if err != nil {
		return nil, err
	}

	return &Result{Document: doc, Diagnostics: p.Diagnostics()}, nil
}

// Config collects the settings of the parse and format pipeline.
type Config struct {
	Indent   int
	SortKeys bool
	WrapRoot bool
	Quote    bool
	// Lenient skips illegal characters instead of failing.
	Lenient bool
	// Logger receives diagnostics. It may be nil.
	Logger *slog.Logger
}

// DefaultConfig returns 4 spaces of indentation, unsorted keys and strict lexing.
func DefaultConfig() Config {
	return Config{Indent: 4}
}

// EncoderOptions returns the options for the encoder package.
func (c Config) EncoderOptions() encoder.Options {
	return encoder.Options{
		Indent:   c.Indent,
		SortKeys: c.SortKeys,
		WrapRoot: c.WrapRoot,
		Quote:    c.Quote,
	}
}

// LexerOptions returns the options for the token package.
func (c Config) LexerOptions() []token.Option {
	var opts []token.Option
	if c.Lenient {
		opts = append(opts, token.Lenient())
	}

	if c.Logger != nil {
		opts = append(opts, token.WithLogger(c.Logger))
	}

	return opts
}

// Pretty parses text and formats it again. Nothing is formatted if parsing fails.
func Pretty(text string, cfg Config) (string, error) {
	doc, err := Parse(text, cfg.LexerOptions()...)
	if err != nil {
		return "", err
	}

	return Format(doc, cfg.EncoderOptions()), nil
}
