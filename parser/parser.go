// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package parser turns debug strings into document values.
//
// The grammar is parsed top-down with one token lookahead:
//
//	document   := field_list | object
//	field_list := field+
//	field      := key ':' literal | key ':'? object
//	literal    := Name | Bool | Float | Integer | String
//	object     := '{' '}' | '{' field_list '}'
//	key        := Name | Integer
//
// Fields with the same key at the same level are merged by ast.Message.Add.
package parser

import (
	"errors"
	"io"

	"github.com/golangee/dbgstr/ast"
	"github.com/golangee/dbgstr/token"
)

// tokenWithError is a struct that wraps a Token and an error that may
// have occurred while reading that Token.
type tokenWithError struct {
	tok token.Token
	err error
}

// Parser is used to get a document value from a debug string.
// A Parser parses exactly once and must not be shared between goroutines.
type Parser struct {
	lexer *token.Lexer
	// peeked contains the next token, if peek was called before next.
	peeked *tokenWithError
}

// NewParser creates a parser for src. The filename is only used for positions.
func NewParser(filename, src string, opts ...token.Option) *Parser {
	return &Parser{
		lexer: token.NewLexer(filename, src, opts...),
	}
}

// Diagnostics returns all problems the lexer recovered from.
func (p *Parser) Diagnostics() []token.Diagnostic {
	return p.lexer.Diagnostics()
}

// next returns the next token. At the end of the input an EOF token is returned without error.
func (p *Parser) next() (token.Token, error) {
	if p.peeked != nil {
		twe := p.peeked
		p.peeked = nil

		return twe.tok, twe.err
	}

	tok, err := p.lexer.Token()
	if errors.Is(err, io.EOF) {
		return tok, nil
	}

	return tok, err
}

// peek lets you look at the next token without consuming it.
func (p *Parser) peek() (token.Token, error) {
	if p.peeked == nil {
		tok, err := p.next()
		p.peeked = &tokenWithError{tok: tok, err: err}
	}

	return p.peeked.tok, p.peeked.err
}

// expect consumes the next token, which must be of the given kind.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}

	if tok.Kind != kind {
		return tok, NewParseError(tok, kind)
	}

	return tok, nil
}

// Parse reads the whole input and returns the root message.
// On error no partial result is returned.
func (p *Parser) Parse() (*ast.Message, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	var doc *ast.Message

	switch {
	case tok.Kind == token.LBrace:
		doc, err = p.object()
	case tok.Kind.IsKey():
		doc, err = p.fieldList(token.EOF)
	default:
		return nil, NewParseError(tok, token.Name, token.Integer, token.LBrace)
	}

	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}

	return doc, nil
}

// fieldList parses fields until the next token is of kind end, which is not consumed.
func (p *Parser) fieldList(end token.Kind) (*ast.Message, error) {
	msg := ast.NewMessage()

	for {
		key, value, err := p.field()
		if err != nil {
			return nil, err
		}

		msg.Add(key, value)

		tok, err := p.peek()
		if err != nil {
			return nil, err
		}

		if tok.Kind == end {
			return msg, nil
		}

		if !tok.Kind.IsKey() {
			return nil, NewParseError(tok, token.Name, token.Integer, end)
		}
	}
}

// field parses a key followed by either a literal or an object.
func (p *Parser) field() (string, ast.Value, error) {
	tok, err := p.next()
	if err != nil {
		return "", nil, err
	}

	if !tok.Kind.IsKey() {
		return "", nil, NewParseError(tok, token.Name, token.Integer)
	}

	key := tok.Text

	tok, err = p.peek()
	if err != nil {
		return "", nil, err
	}

	switch tok.Kind {
	case token.LBrace:
		msg, err := p.object()
		return key, msg, err
	case token.Colon:
		p.next() // pop the colon, we know it's there
	default:
		return "", nil, NewParseError(tok, token.Colon, token.LBrace)
	}

	tok, err = p.peek()
	if err != nil {
		return "", nil, err
	}

	if tok.Kind == token.LBrace {
		msg, err := p.object()
		return key, msg, err
	}

	if !tok.Kind.IsLiteral() {
		return "", nil, NewParseError(tok, token.Name, token.Bool, token.Float, token.Integer, token.String, token.LBrace)
	}

	p.next() // pop the literal

	if tok.Kind == token.String {
		return key, ast.NewQuoted(tok.Value), nil
	}

	return key, ast.NewScalar(tok.Text), nil
}

// object parses a message enclosed in braces.
func (p *Parser) object() (*ast.Message, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	if tok.Kind == token.RBrace {
		p.next() // pop the closing brace

		return ast.NewMessage(), nil
	}

	if !tok.Kind.IsKey() {
		return nil, NewParseError(tok, token.Name, token.Integer, token.RBrace)
	}

	msg, err := p.fieldList(token.RBrace)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}

	return msg, nil
}
