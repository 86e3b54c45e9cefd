// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"strconv"
	"strings"
)

// Node contains access to the start and end positions of a token.
type Node interface {
	Begin() Pos
	End() Pos
}

// A Pos describes a resolved position within a file.
type Pos struct {
	// File contains the file name as given to the lexer. It may be empty.
	File string
	// Line denotes the one-based line number in the denoted File.
	Line int
	// Col denotes the one-based column number in the denoted Line.
	Col int
	// Offset is the zero-based byte offset in the input.
	Offset int
}

// String returns the content in the "file:line:col" format.
// The file part is omitted, if there is none.
func (p Pos) String() string {
	s := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Col)
	if p.File == "" {
		return s
	}

	return p.File + ":" + s
}

// Advance returns the position after reading s, starting at p.
func (p Pos) Advance(s string) Pos {
	p.Offset += len(s)

	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		p.Line += strings.Count(s, "\n")
		p.Col = 1 + len([]rune(s[i+1:]))

		return p
	}

	p.Col += len([]rune(s))

	return p
}

// Position is a range between two positions and implements Node.
type Position struct {
	BeginPos Pos
	EndPos   Pos
}

// Begin returns the first position of the range.
func (p Position) Begin() Pos {
	return p.BeginPos
}

// End returns the position directly behind the range.
func (p Position) End() Pos {
	return p.EndPos
}

// NewNode creates a Node spanning from begin to end.
func NewNode(begin, end Pos) Node {
	return Position{BeginPos: begin, EndPos: end}
}
