// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/golangee/dbgstr/ast"
	"github.com/golangee/dbgstr/token"
	"github.com/r3labs/diff/v2"
)

func msg() *ast.Message {
	return ast.NewMessage()
}

func sc(text string) *ast.Scalar {
	return ast.NewScalar(text)
}

func TestParser(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *ast.Message
	}{
		{
			name: "single scalar",
			text: "foo: 1",
			want: msg().Add("foo", sc("1")),
		},
		{
			name: "all literal kinds",
			text: `n: NAME b: true f: 1.5e3 f2: 2e10f i: -42 s: "text" inf: -inf`,
			want: msg().
				Add("n", sc("NAME")).
				Add("b", sc("true")).
				Add("f", sc("1.5e3")).
				Add("f2", sc("2e10f")).
				Add("i", sc("-42")).
				Add("s", ast.NewQuoted("text")).
				Add("inf", sc("-inf")),
		},
		{
			name: "three same keys become a list",
			text: "foo: 1 foo: 2 foo: 3",
			want: msg().Add("foo", ast.NewRepeated(sc("1"), sc("2"), sc("3"))),
		},
		{
			name: "list stays at first position",
			text: "a: 1 b: 2 a: 3",
			want: msg().
				Add("a", ast.NewRepeated(sc("1"), sc("3"))).
				Add("b", sc("2")),
		},
		{
			name: "nested messages",
			text: `foo: "bar" nested { x: 1 } nested { x: 2 }`,
			want: msg().
				Add("foo", ast.NewQuoted("bar")).
				Add("nested", ast.NewRepeated(
					msg().Add("x", sc("1")),
					msg().Add("x", sc("2")),
				)),
		},
		{
			name: "colon before message",
			text: "a: { b: 1 }",
			want: msg().Add("a", msg().Add("b", sc("1"))),
		},
		{
			name: "empty message",
			text: "a {}",
			want: msg().Add("a", msg()),
		},
		{
			name: "wrapped root",
			text: "{ a: 1\n  b: 2 }",
			want: msg().Add("a", sc("1")).Add("b", sc("2")),
		},
		{
			name: "integer keys",
			text: `1: "one" 2 { x: y } 1: "uno"`,
			want: msg().
				Add("1", ast.NewRepeated(ast.NewQuoted("one"), ast.NewQuoted("uno"))).
				Add("2", msg().Add("x", sc("y"))),
		},
		{
			name: "merge happens per level",
			text: "outer { a: 1 a: 2 } a: 3",
			want: msg().
				Add("outer", msg().Add("a", ast.NewRepeated(sc("1"), sc("2")))).
				Add("a", sc("3")),
		},
		{
			name: "escape runs are decoded",
			text: `s: "\150\145\154\154\157"`,
			want: msg().Add("s", ast.NewQuoted("hello")),
		},
		{
			name: "escape runs decode to control characters and quotes",
			text: `s: "\303\251\012" q: "\042" t: "a\x09b"`,
			want: msg().
				Add("s", ast.NewQuoted("é\n")).
				Add("q", ast.NewQuoted(`"`)).
				Add("t", ast.NewQuoted("a\tb")),
		},
		{
			name: "order of unsorted keys is kept",
			text: "{b: 1 a: 2}",
			want: msg().Add("b", sc("1")).Add("a", sc("2")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewParser("test", tt.text).Parse()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !ast.Equal(tt.want, got) {
				changes, _ := diff.Diff(tt.want, got, diff.SliceOrdering(true))
				t.Errorf("documents differ:\n%v", changes)
			}
		})
	}
}

func TestParserQuoted(t *testing.T) {
	got, err := NewParser("", `a: "x y" b: x`).Parse()
	if err != nil {
		t.Fatal(err)
	}

	a, _ := got.Get("a")
	if s, ok := a.(*ast.Scalar); !ok || !s.Quoted || s.Text != "x y" {
		t.Errorf("expected a quoted scalar, got %#v", a)
	}

	b, _ := got.Get("b")
	if s, ok := b.(*ast.Scalar); !ok || s.Quoted {
		t.Errorf("expected an unquoted scalar, got %#v", b)
	}
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
		wantEOF bool
		wantPos token.Pos
	}{
		{
			name:    "open message",
			text:    "foo: { ",
			wantErr: "unexpected end of input, expected Name, Integer or '}'",
			wantEOF: true,
			wantPos: token.Pos{File: "test", Line: 1, Col: 8, Offset: 7},
		},
		{
			name:    "empty input",
			text:    "",
			wantErr: "unexpected end of input, expected Name, Integer or '{'",
			wantEOF: true,
			wantPos: token.Pos{File: "test", Line: 1, Col: 1},
		},
		{
			name:    "missing value",
			text:    "foo:",
			wantErr: "unexpected end of input, expected Name, Bool, Float, Integer, String or '{'",
			wantEOF: true,
			wantPos: token.Pos{File: "test", Line: 1, Col: 5, Offset: 4},
		},
		{
			name:    "missing colon",
			text:    "foo 1",
			wantErr: `unexpected Integer "1", expected ':' or '{'`,
			wantPos: token.Pos{File: "test", Line: 1, Col: 5, Offset: 4},
		},
		{
			name:    "string as key",
			text:    `a: 1 "b": 2`,
			wantErr: `unexpected String "b", expected Name, Integer or end of input`,
			wantPos: token.Pos{File: "test", Line: 1, Col: 6, Offset: 5},
		},
		{
			name:    "unbalanced brace",
			text:    "a: 1\n}",
			wantErr: "unexpected '}', expected Name, Integer or end of input",
			wantPos: token.Pos{File: "test", Line: 2, Col: 1, Offset: 5},
		},
		{
			name:    "trailing field after wrapped root",
			text:    "{a: 1} b: 2",
			wantErr: `unexpected Name "b", expected end of input`,
			wantPos: token.Pos{File: "test", Line: 1, Col: 8, Offset: 7},
		},
		{
			name:    "bracket list",
			text:    "a: [1, 2]",
			wantErr: "unexpected '['",
			wantPos: token.Pos{File: "test", Line: 1, Col: 4, Offset: 3},
		},
		{
			name:    "unclosed nested message",
			text:    "a { b { c: 1 }",
			wantErr: "unexpected end of input, expected Name, Integer or '}'",
			wantEOF: true,
			wantPos: token.Pos{File: "test", Line: 1, Col: 15, Offset: 14},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewParser("test", tt.text).Parse()
			if err == nil {
				t.Fatalf("expected an error, got %v", doc)
			}

			if doc != nil {
				t.Errorf("expected no partial result, got %v", doc)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected a *ParseError, got %T: %v", err, err)
			}

			if !strings.HasPrefix(perr.Reason(), tt.wantErr) {
				t.Errorf("expected reason %q, got %q", tt.wantErr, perr.Reason())
			}

			if perr.UnexpectedEOF() != tt.wantEOF {
				t.Errorf("expected UnexpectedEOF() == %v", tt.wantEOF)
			}

			if perr.Begin() != tt.wantPos {
				t.Errorf("expected position %v, got %v", tt.wantPos, perr.Begin())
			}
		})
	}
}

func TestParserLexErrors(t *testing.T) {
	_, err := NewParser("", "a: 1\nb: $").Parse()

	var lerr *token.LexError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected a *token.LexError, got %T: %v", err, err)
	}

	if lerr.Char != '$' || lerr.Pos.Line != 2 || lerr.Pos.Col != 4 {
		t.Errorf("unexpected error %v", lerr)
	}

	p := NewParser("", "a: 1 $ b: 2", token.Lenient())

	doc, err := p.Parse()
	if err != nil {
		t.Fatalf("lenient parsing failed: %v", err)
	}

	if !ast.Equal(doc, msg().Add("a", sc("1")).Add("b", sc("2"))) {
		t.Errorf("unexpected document %#v", doc)
	}

	if len(p.Diagnostics()) != 1 || p.Diagnostics()[0].Kind != token.IllegalCharacter {
		t.Errorf("expected one illegal character diagnostic, got %v", p.Diagnostics())
	}
}

func TestParserDecodeFallback(t *testing.T) {
	p := NewParser("", `s: "\377\376"`)

	doc, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}

	if !ast.Equal(doc, msg().Add("s", ast.NewQuoted(`\377\376`))) {
		t.Errorf("expected the escape run to be kept, got %#v", doc)
	}

	if len(p.Diagnostics()) != 1 || p.Diagnostics()[0].Kind != token.DecodeFallback {
		t.Errorf("expected one decode fallback diagnostic, got %v", p.Diagnostics())
	}
}

func TestParserConcurrent(t *testing.T) {
	const text = `foo: "bar" nested { x: 1 } nested { x: 2 }`

	want, err := NewParser("", text).Parse()
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup

	errs := make(chan error, 64)

	for i := 0; i < 64; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			got, err := NewParser("", text).Parse()
			if err != nil {
				errs <- err
				return
			}

			if !ast.Equal(want, got) {
				errs <- errors.New("documents differ")
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
