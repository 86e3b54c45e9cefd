// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package mdblock reformats debug strings inside fenced code blocks of Markdown documents.
package mdblock

import (
	"bytes"
	"slices"
	"strings"

	"github.com/golangee/dbgstr"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Languages are the info strings of code blocks which are formatted.
var Languages = []string{"textproto", "pbtxt", "prototext", "debugstring"}

// Block is a code block that was found.
type Block struct {
	// Line is the 1-based line of the first line of the block content.
	Line     int
	Language string
	// Body is the original content.
	Body string
	// Err is set, if the content could not be parsed. Such a block is left untouched.
	Err error
}

// Result is the reformatted document.
type Result struct {
	Text    string
	Blocks  []Block
	Changed int
}

// Failed returns the blocks which could not be parsed.
func (r Result) Failed() []Block {
	var failed []Block

	for _, b := range r.Blocks {
		if b.Err != nil {
			failed = append(failed, b)
		}
	}

	return failed
}

// edit replaces src[start:stop] by text.
type edit struct {
	start, stop int
	text        string
}

// Format reformats all code blocks tagged with one of Languages.
func Format(src []byte, cfg dbgstr.Config) Result {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var (
		res   Result
		edits []edit
	)

	// Walk only fails if the walker returns an error, ours never does.
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lang := strings.ToLower(string(fence.Language(src)))
		if !slices.Contains(Languages, lang) {
			return ast.WalkSkipChildren, nil
		}

		lines := fence.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		start := lines.At(0).Start
		stop := lines.At(lines.Len() - 1).Stop

		var body bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			body.Write(line.Value(src))
		}

		block := Block{
			Line:     bytes.Count(src[:start], []byte("\n")) + 1,
			Language: lang,
			Body:     body.String(),
		}

		formatted, err := dbgstr.Pretty(block.Body, cfg)
		if err != nil {
			block.Err = err
			res.Blocks = append(res.Blocks, block)

			return ast.WalkSkipChildren, nil
		}

		res.Blocks = append(res.Blocks, block)

		prefix := linePrefix(src, start)
		replacement := strings.ReplaceAll(formatted, "\n", "\n"+prefix) + "\n"

		if string(src[start:stop]) != replacement {
			edits = append(edits, edit{start: start, stop: stop, text: replacement})
			res.Changed++
		}

		return ast.WalkSkipChildren, nil
	})

	var out bytes.Buffer

	last := 0
	for _, e := range edits {
		out.Write(src[last:e.start])
		out.WriteString(e.text)
		last = e.stop
	}

	out.Write(src[last:])
	res.Text = out.String()

	return res
}

// linePrefix returns the whitespace between the start of the line containing pos and pos,
// which is the indentation of a code block inside a list or quote.
func linePrefix(src []byte, pos int) string {
	begin := bytes.LastIndexByte(src[:pos], '\n') + 1
	prefix := src[begin:pos]

	if len(bytes.TrimLeft(prefix, " \t>")) != 0 {
		return ""
	}

	return string(prefix)
}
