// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

const (
	// sString is a double quoted text, which may contain escaped characters and escaped newlines.
	sString = `"(?:[^"\\\n]|\\[\s\S])*"`

	// sFloat requires a fraction or an exponent with suffix, which separates it from an integer.
	sFloat = `(?:\d+\.\d+(?:[eE][+-]?\d+)?|\d+[eE][+-]?\d+[fFlL]|-(?i:infinity|inf|nan)\b)`

	// sInteger is permissive on purpose, numbers are never converted.
	sInteger = `-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?`

	sBool = `(?:true|false)\b`

	sName = `[A-Za-z_][A-Za-z0-9_]*`
)

// definition contains the compiled rules. It is shared by all lexers and never modified after init.
// The order matters: the first matching rule wins.
var definition = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: sString},
	{Name: "Float", Pattern: sFloat},
	{Name: "Integer", Pattern: sInteger},
	{Name: "Bool", Pattern: sBool},
	{Name: "Name", Pattern: sName},
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Newline", Pattern: `\n+`},
	{Name: "Illegal", Pattern: `.`},
})

var (
	kinds = map[lexer.TokenType]Kind{}

	whitespace lexer.TokenType
	newline    lexer.TokenType
	illegal    lexer.TokenType
)

func init() {
	symbols := definition.Symbols()

	for name, kind := range map[string]Kind{
		"String":   String,
		"Float":    Float,
		"Integer":  Integer,
		"Bool":     Bool,
		"Name":     Name,
		"LBrace":   LBrace,
		"RBrace":   RBrace,
		"LBracket": LBracket,
		"RBracket": RBracket,
		"Colon":    Colon,
	} {
		kinds[symbols[name]] = kind
	}

	whitespace = symbols["Whitespace"]
	newline = symbols["Newline"]
	illegal = symbols["Illegal"]
}

// Option configures a Lexer.
type Option func(*options)

type options struct {
	lenient bool
	logger  *slog.Logger
}

// Lenient makes the Lexer skip illegal characters instead of failing.
// Each skipped character is reported as an IllegalCharacter Diagnostic.
func Lenient() Option {
	return func(o *options) {
		o.lenient = true
	}
}

// WithLogger logs every Diagnostic at warn level.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// Lexer can be used to get individual tokens.
// A Lexer is not safe for concurrent use, but any number of lexers may run in parallel.
type Lexer struct {
	filename    string
	src         string
	opts        options
	lex         lexer.Lexer
	err         error
	diagnostics []Diagnostic
}

// NewLexer creates a new instance, ready to start lexing src.
// The filename is only used for positions.
func NewLexer(filename, src string, opts ...Option) *Lexer {
	l := &Lexer{
		filename: filename,
		src:      src,
	}

	for _, opt := range opts {
		opt(&l.opts)
	}

	l.Reset()

	return l
}

// Reset starts lexing from the beginning again and drops all diagnostics.
func (l *Lexer) Reset() {
	l.lex, l.err = definition.LexString(l.filename, l.src)
	l.diagnostics = nil
}

// Diagnostics returns the problems which did not stop the lexer so far.
func (l *Lexer) Diagnostics() []Diagnostic {
	return l.diagnostics
}

// Token returns the next token in the input.
// At the end of the input, Token returns a token of kind EOF and io.EOF.
// An illegal character results in a *LexError, unless the Lexer is lenient.
func (l *Lexer) Token() (Token, error) {
	if l.err != nil {
		return Token{}, fmt.Errorf("unable to lex: %w", l.err)
	}

	for {
		t, err := l.lex.Next()
		if err != nil {
			return Token{}, fmt.Errorf("unable to lex: %w", err)
		}

		begin := fromLexerPos(t.Pos)

		if t.EOF() {
			return Token{Kind: EOF, Position: Position{BeginPos: begin, EndPos: begin}}, io.EOF
		}

		switch t.Type {
		case whitespace, newline:
			continue
		case illegal:
			char, _ := utf8.DecodeRuneInString(t.Value)
			if !l.opts.lenient {
				return Token{}, NewLexError(begin, char)
			}

			l.report(Diagnostic{
				Position: Position{BeginPos: begin, EndPos: begin.Advance(t.Value)},
				Kind:     IllegalCharacter,
				Message:  fmt.Sprintf("illegal character %q skipped", char),
				Text:     t.Value,
			})

			continue
		}

		tok := Token{
			Position: Position{BeginPos: begin, EndPos: begin.Advance(t.Value)},
			Kind:     kinds[t.Type],
			Text:     t.Value,
			Value:    t.Value,
		}

		if tok.Kind == String {
			value, diags := unescape(t.Value[1:len(t.Value)-1], begin.Advance(`"`))
			tok.Value = value

			for _, d := range diags {
				l.report(d)
			}
		}

		return tok, nil
	}
}

func (l *Lexer) report(d Diagnostic) {
	l.diagnostics = append(l.diagnostics, d)

	if l.opts.logger != nil {
		l.opts.logger.Warn("lexer diagnostic",
			"kind", string(d.Kind),
			"pos", d.Begin().String(),
			"text", d.Text,
		)
	}
}

// Tokenize returns all tokens of src, excluding the final EOF token.
func Tokenize(filename, src string, opts ...Option) ([]Token, []Diagnostic, error) {
	l := NewLexer(filename, src, opts...)

	var tokens []Token

	for {
		tok, err := l.Token()
		if errors.Is(err, io.EOF) {
			return tokens, l.Diagnostics(), nil
		}

		if err != nil {
			return tokens, l.Diagnostics(), err
		}

		tokens = append(tokens, tok)
	}
}

func fromLexerPos(p lexer.Position) Pos {
	return Pos{
		File:   p.Filename,
		Line:   p.Line,
		Col:    p.Column,
		Offset: p.Offset,
	}
}
