// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package ast contains the document value which is built by the parser and rendered by the encoders.
// A value is exactly one of *Scalar, *Message or *Repeated.
package ast

import "fmt"

// Kind identifies the variant of a Value.
type Kind int

const (
	KindScalar Kind = iota + 1
	KindMessage
	KindRepeated
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindMessage:
		return "Message"
	case KindRepeated:
		return "Repeated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a node of the document tree.
// The interface is sealed, only the types of this package implement it.
type Value interface {
	Kind() Kind
	value()
}

// Scalar is an opaque literal. Names, booleans, numbers and strings are all kept as text.
type Scalar struct {
	Text string
	// Quoted is true if the literal was a string. It does not take part in equality.
	Quoted bool
}

// NewScalar creates a scalar from unquoted text.
func NewScalar(text string) *Scalar {
	return &Scalar{Text: text}
}

// NewQuoted creates a scalar which originates from a string literal.
func NewQuoted(text string) *Scalar {
	return &Scalar{Text: text, Quoted: true}
}

func (s *Scalar) Kind() Kind {
	return KindScalar
}

func (s *Scalar) value() {}

func (s *Scalar) String() string {
	return s.Text
}

// Repeated contains all values of a key, which occurred more than once in the same message.
// It is never empty and never contains another Repeated.
type Repeated struct {
	Values []Value
}

// NewRepeated creates a list of values. Nested *Repeated values are flattened.
func NewRepeated(values ...Value) *Repeated {
	r := &Repeated{}
	r.Append(values...)

	return r
}

// Append adds values to the end of the list. Nested *Repeated values are flattened.
func (r *Repeated) Append(values ...Value) *Repeated {
	for _, v := range values {
		if nested, ok := v.(*Repeated); ok {
			r.Values = append(r.Values, nested.Values...)
			continue
		}

		r.Values = append(r.Values, v)
	}

	return r
}

// Len returns the number of values.
func (r *Repeated) Len() int {
	return len(r.Values)
}

func (r *Repeated) Kind() Kind {
	return KindRepeated
}

func (r *Repeated) value() {}

// Field is a named entry of a Message.
type Field struct {
	// Key is either a name or an integer in its textual form.
	Key   string
	Value Value
}
