// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"fmt"
	"strings"

	"github.com/golangee/dbgstr/token"
)

// ParseError is returned when a token appeared that the parser did not expect.
// It provides alternatives for tokens that were expected instead.
type ParseError struct {
	// Found is the offending token. Its kind is token.EOF if the input ended too early.
	Found    token.Token
	Expected []token.Kind
}

// NewParseError creates a new ParseError.
func NewParseError(found token.Token, expected ...token.Kind) *ParseError {
	return &ParseError{
		Found:    found,
		Expected: expected,
	}
}

// UnexpectedEOF returns true if the input ended before the document was complete.
func (e *ParseError) UnexpectedEOF() bool {
	return e.Found.Kind == token.EOF
}

func (e *ParseError) Begin() token.Pos {
	return e.Found.Begin()
}

func (e *ParseError) End() token.Pos {
	return e.Found.End()
}

func (e *ParseError) Error() string {
	return e.Found.Begin().String() + ": " + e.Reason()
}

// Reason describes the error without its position.
func (e *ParseError) Reason() string {
	found := e.Found.Kind.String()

	switch {
	case e.Found.Kind == token.String:
		found += " " + e.Found.Text
	case e.Found.Kind.IsLiteral():
		found = fmt.Sprintf("%s %q", found, e.Found.Text)
	}

	// Build a pretty string with expected tokens
	var expectedTokens []string

	for _, kind := range e.Expected {
		expectedTokens = append(expectedTokens, kind.String())
	}

	if len(expectedTokens) == 0 {
		return "unexpected " + found
	}

	// Join the last two elements with an "or" to have a nice looking string.
	if len(expectedTokens) >= 2 {
		joined := fmt.Sprintf("%s or %s",
			expectedTokens[len(expectedTokens)-2],
			expectedTokens[len(expectedTokens)-1],
		)
		expectedTokens = expectedTokens[:len(expectedTokens)-1]
		expectedTokens[len(expectedTokens)-1] = joined
	}

	return fmt.Sprintf("unexpected %s, expected %s", found, strings.Join(expectedTokens, ", "))
}

// Hint suggests how to fix the input.
func (e *ParseError) Hint() string {
	switch {
	case e.UnexpectedEOF():
		return "the input ended early, a closing '}' or a value may be missing"
	case e.Found.Kind == token.LBracket || e.Found.Kind == token.RBracket:
		return "list and extension syntax in brackets is not supported, repeat the field instead"
	default:
		return ""
	}
}
