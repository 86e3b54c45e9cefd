// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import "fmt"

// Kind classifies a Token.
type Kind int

const (
	// EOF marks the end of the input. It is never part of the source text.
	EOF Kind = iota
	// Name is an identifier like foo_bar. Enum values are names as well.
	Name
	// Bool is either true or false.
	Bool
	// Float is a number with a fractional part or an exponent with f/l suffix.
	Float
	// Integer is a number, which may still contain a fraction or an exponent.
	Integer
	// String is a double quoted text.
	String
	// LBrace is a '{' that starts a message.
	LBrace
	// RBrace is a '}' that ends a message.
	RBrace
	// LBracket is a '['.
	LBracket
	// RBracket is a ']'.
	RBracket
	// Colon separates a key from its literal.
	Colon
)

var kindNames = [...]string{
	EOF:      "end of input",
	Name:     "Name",
	Bool:     "Bool",
	Float:    "Float",
	Integer:  "Integer",
	String:   "String",
	LBrace:   "'{'",
	RBrace:   "'}'",
	LBracket: "'['",
	RBracket: "']'",
	Colon:    "':'",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral returns true for the kinds which may appear behind a colon.
func (k Kind) IsLiteral() bool {
	switch k {
	case Name, Bool, Float, Integer, String:
		return true
	default:
		return false
	}
}

// IsKey returns true for the kinds which may name a field.
func (k Kind) IsKey() bool {
	return k == Name || k == Integer
}

// A Token is a classified slice of the input.
type Token struct {
	Position
	Kind Kind
	// Text is the raw matched text, including quotes for strings.
	Text string
	// Value is the unquoted and escape decoded text for strings. For all other kinds it equals Text.
	Value string
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return t.Kind.String()
	case String:
		return fmt.Sprintf("String(%s)", t.Text)
	case Name, Bool, Float, Integer:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
