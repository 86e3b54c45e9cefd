// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LexError is returned by the Lexer for a character which does not start any token.
type LexError struct {
	Pos  Pos
	Char rune
}

// NewLexError creates a new LexError.
func NewLexError(pos Pos, char rune) *LexError {
	return &LexError{Pos: pos, Char: char}
}

func (e *LexError) Error() string {
	return e.Pos.String() + ": " + e.Reason()
}

// Reason describes the error without its position.
func (e *LexError) Reason() string {
	return fmt.Sprintf("illegal character %q", e.Char)
}

// Hint suggests how to fix the input.
func (e *LexError) Hint() string {
	return "outside of quotes only names, numbers, booleans and the characters { } [ ] : are allowed"
}

func (e *LexError) Begin() Pos {
	return e.Pos
}

func (e *LexError) End() Pos {
	return e.Pos.Advance(string(e.Char))
}

// positional is implemented by all errors which can be rendered by Report.
type positional interface {
	error
	Node
	Reason() string
}

// Report renders err as a multi-line text pointing into src.
// Errors without positional information are returned as their plain message.
func Report(src string, err error) string {
	var perr positional
	if !errors.As(err, &perr) {
		return err.Error()
	}

	posErr := NewPosError(perr, perr.Reason()).SetSource(src)
	if h, ok := perr.(interface{ Hint() string }); ok {
		posErr.SetHint(h.Hint())
	}

	return posErr.Explain()
}

type ErrDetail struct {
	Node    Node
	Message string
}

func NewErrDetail(node Node, msg string) ErrDetail {
	return ErrDetail{
		Node:    node,
		Message: msg,
	}
}

// PosError represents a very specific positional error with a lot of explaining noise. Use Explain.
type PosError struct {
	Details []ErrDetail
	Cause   error
	Hint    string
	// Source is the text the positions refer to. If empty, Explain tries to load the file.
	Source string
}

// NewPosError creates a new PosError with the given root cause and optional details.
func NewPosError(node Node, msg string, details ...ErrDetail) *PosError {
	tmp := append([]ErrDetail{}, ErrDetail{
		Node:    node,
		Message: msg,
	})
	tmp = append(tmp, details...)

	return &PosError{
		Details: tmp,
	}
}

func (p *PosError) SetCause(err error) *PosError {
	p.Cause = err
	return p
}

func (p *PosError) SetHint(str string) *PosError {
	p.Hint = str
	return p
}

func (p *PosError) SetSource(src string) *PosError {
	p.Source = src
	return p
}

func (p *PosError) Unwrap() error {
	return p.Cause
}

func (p *PosError) firstDetail() ErrDetail {
	if len(p.Details) > 0 {
		return p.Details[0]
	}

	return ErrDetail{}
}

func (p *PosError) Error() string {
	if p.Cause == nil {
		return p.firstDetail().Message
	}

	return p.firstDetail().Message + ": " + p.Cause.Error()
}

// docLines returns the source lines the given node refers to.
func (p *PosError) docLines(n Node) []string {
	if n == nil {
		return nil
	}

	if p.Source != "" {
		return strings.Split(p.Source, "\n")
	}

	buf, err := os.ReadFile(n.Begin().File)
	if err != nil {
		return nil
	}

	return strings.Split(string(buf), "\n")
}

// posLine returns the line from lines which fits to the given pos.
func posLine(lines []string, pos Pos) string {
	no := pos.Line - 1
	if no < len(lines) && no >= 0 {
		return strings.TrimRight(lines[no], "\r")
	}

	return ""
}

// Explain returns a multi-line text suited to be printed into the console.
func (p *PosError) Explain() string {
	// grab the required indent for the line numbers
	indent := 0

	for _, detail := range p.Details {
		l := len(strconv.Itoa(detail.Node.Begin().Line))
		if l > indent {
			indent = l
		}
	}

	pad := strings.Repeat(" ", indent)
	sb := &strings.Builder{}

	for i, detail := range p.Details {
		begin, end := detail.Node.Begin(), detail.Node.End()
		line := posLine(p.docLines(detail.Node), begin)

		if i == 0 || begin.File != p.Details[i-1].Node.Begin().File {
			sb.WriteString(begin.String())
			sb.WriteString("\n")
		}

		sb.WriteString(pad + " |\n")
		sb.WriteString(fmt.Sprintf("%"+strconv.Itoa(indent)+"d |", begin.Line))
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(pad + " |")
		sb.WriteString(strings.Repeat(" ", max(begin.Col-1, 0)))

		if end.Line != begin.Line || end.Col-begin.Col <= 1 {
			sb.WriteString("^~~~ ")
		} else {
			sb.WriteString(strings.Repeat("^", end.Col-begin.Col))
			sb.WriteRune(' ')
		}

		sb.WriteString(detail.Message)
		sb.WriteString("\n")

		if i < len(p.Details)-1 {
			sb.WriteString(pad)
			sb.WriteString("...\n")
		}
	}

	if p.Hint != "" {
		sb.WriteString(pad + " |\n")
		sb.WriteString(pad + " = hint: " + p.Hint + "\n")
	}

	return sb.String()
}
