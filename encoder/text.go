// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package encoder renders document values as canonical debug strings or as JSON.
package encoder

import (
	"bufio"
	"io"
	"slices"
	"strings"

	"github.com/golangee/dbgstr/ast"
	"github.com/golangee/dbgstr/token"
)

// Options control the text output.
type Options struct {
	// Indent is the number of spaces per nesting level. Negative values are treated as 0.
	Indent int
	// SortKeys orders fields by key on every level instead of keeping the order of first occurrence.
	SortKeys bool
	// WrapRoot encloses the root message in braces and indents its fields by one level.
	WrapRoot bool
	// Quote puts scalars, which were parsed from string literals, back into double quotes.
	Quote bool
}

// DefaultOptions returns 4 spaces of indentation, unsorted keys and a flat root.
func DefaultOptions() Options {
	return Options{Indent: 4}
}

// Encoder writes document values as text. Each line is terminated by a newline, except the last one.
type Encoder struct {
	writer *bufio.Writer
	opts   Options
	// indent is the current level of nesting.
	indent int
	// lines counts the lines written so far, it is used to put newlines between lines.
	lines int
}

func NewEncoder(w io.Writer, opts Options) *Encoder {
	if opts.Indent < 0 {
		opts.Indent = 0
	}

	return &Encoder{
		writer: bufio.NewWriter(w),
		opts:   opts,
	}
}

// Encode writes v. A root message renders its fields without a key, a root scalar
// renders its text and a root list renders each element as a root.
// Only errors of the underlying writer are returned.
func (e *Encoder) Encode(v ast.Value) error {
	if err := e.root(v); err != nil {
		return err
	}

	return e.writer.Flush()
}

// Format renders v as text. It never fails.
func Format(v ast.Value, opts Options) string {
	var sb strings.Builder

	// a strings.Builder never returns an error
	_ = NewEncoder(&sb, opts).Encode(v)

	return sb.String()
}

func (e *Encoder) root(v ast.Value) error {
	switch v := v.(type) {
	case *ast.Message:
		if !e.opts.WrapRoot {
			return e.fields(v)
		}

		if err := e.writeLine("{"); err != nil {
			return err
		}

		e.indent++

		if err := e.fields(v); err != nil {
			return err
		}

		e.indent--

		return e.writeLine("}")
	case *ast.Scalar:
		return e.writeLine(e.scalar(v))
	case *ast.Repeated:
		for _, item := range v.Values {
			if err := e.root(item); err != nil {
				return err
			}
		}
	}

	return nil
}

// fields writes all fields of m at the current level.
func (e *Encoder) fields(m *ast.Message) error {
	fields := m.Fields
	if e.opts.SortKeys {
		fields = slices.Clone(fields)
		slices.SortStableFunc(fields, func(a, b *ast.Field) int {
			return strings.Compare(a.Key, b.Key)
		})
	}

	for _, f := range fields {
		if f == nil {
			continue
		}

		if err := e.field(f.Key, f.Value); err != nil {
			return err
		}
	}

	return nil
}

// field writes a single key with its value. Lists repeat the key for every element.
func (e *Encoder) field(key string, v ast.Value) error {
	switch v := v.(type) {
	case *ast.Scalar:
		return e.writeLine(key + ": " + e.scalar(v))
	case *ast.Message:
		if err := e.writeLine(key + " {"); err != nil {
			return err
		}

		e.indent++

		if err := e.fields(v); err != nil {
			return err
		}

		e.indent--

		return e.writeLine("}")
	case *ast.Repeated:
		for _, item := range v.Values {
			if err := e.field(key, item); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Encoder) scalar(s *ast.Scalar) string {
	if e.opts.Quote && s.Quoted {
		return token.Quote(s.Text)
	}

	return s.Text
}

// writeLine writes the indentation and str, separated from the previous line.
func (e *Encoder) writeLine(str string) error {
	if e.lines > 0 {
		if err := e.writer.WriteByte('\n'); err != nil {
			return err
		}
	}

	e.lines++

	if _, err := e.writer.WriteString(e.indentString()); err != nil {
		return err
	}

	_, err := e.writer.WriteString(str)

	return err
}

// indentString returns the whitespace for the current level.
func (e *Encoder) indentString() string {
	return strings.Repeat(" ", e.indent*e.opts.Indent)
}
