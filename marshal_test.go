// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package dbgstr

import (
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/golangee/dbgstr/parser"
	"github.com/r3labs/diff/v2"
)

func ExampleUnmarshal() {
	type Animal struct {
		Name  string
		Years uint `dbgstr:"age"`
	}

	var animal Animal

	if err := Unmarshal(`name: "Gopher" age: 3`, &animal, false); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Hello %d year old %s!", animal.Years, animal.Name)
	// Output: Hello 3 year old Gopher!
}

// ExampleUnmarshal_repeated demonstrates how repeated keys are collected into slices.
func ExampleUnmarshal_repeated() {
	type Animal struct {
		Name string
		Age  uint
	}

	type Zoo struct {
		Animals []Animal `dbgstr:"animal"`
		Planets []string `dbgstr:"planet"`
	}

	input := `
		animal { name: "Dog" age: 6 }
		planet: "Earth"
		animal { name: "Cat" }
		animal { name: "Gopher" age: 3 }
		planet: "Venus"
		planet: "Mars"`

	var zoo Zoo

	if err := Unmarshal(input, &zoo, false); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s, %s, %d", zoo.Animals[2].Name, zoo.Planets[0], len(zoo.Planets))
	// Output: Gopher, Earth, 3
}

type server struct {
	Host        string
	Port        uint16
	Debug       bool
	Ratio       float32
	Offset      int8
	Tags        []string `dbgstr:"tag"`
	Limits      map[string]int
	TLS         *tls
	HTTPTimeout int64
	Ignored     string `dbgstr:"-"`
	Extra       any
}

type tls struct {
	CertFile string
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		strict  bool
		want    server
		wantErr bool
	}{
		{
			name: "all kinds",
			text: `host: "localhost" port: 8080 debug: true ratio: 0.5 offset: -3
				tag: "a" tag: "b"
				limits { cpu: 2 memory: 16 }
				tls { cert_file: "/etc/cert.pem" }
				http_timeout: 30
				extra { x: 1 x: 2 }`,
			want: server{
				Host:        "localhost",
				Port:        8080,
				Debug:       true,
				Ratio:       0.5,
				Offset:      -3,
				Tags:        []string{"a", "b"},
				Limits:      map[string]int{"cpu": 2, "memory": 16},
				TLS:         &tls{CertFile: "/etc/cert.pem"},
				HTTPTimeout: 30,
				Extra:       map[string]any{"x": []any{"1", "2"}},
			},
		},
		{
			name: "single value into slice",
			text: `tag: "only"`,
			want: server{Tags: []string{"only"}},
		},
		{
			name: "first value wins if not strict",
			text: "port: 1 port: 2",
			want: server{Port: 1},
		},
		{
			name:    "repeated value in strict mode",
			text:    "port: 1 port: 2",
			strict:  true,
			wantErr: true,
		},
		{
			name:    "missing key in strict mode",
			text:    "port: 1",
			strict:  true,
			wantErr: true,
		},
		{
			name:    "overflow",
			text:    "port: 70000",
			wantErr: true,
		},
		{
			name:    "negative unsigned",
			text:    "port: -1",
			wantErr: true,
		},
		{
			name:    "message for scalar",
			text:    "host { a: 1 }",
			wantErr: true,
		},
		{
			name:    "scalar for message",
			text:    "tls: 1",
			wantErr: true,
		},
		{
			name:    "invalid boolean",
			text:    "debug: maybe",
			wantErr: true,
		},
		{
			name:    "syntax error",
			text:    "host: {",
			wantErr: true,
		},
		{
			name: "ignored fields",
			text: `ignored: "x"`,
			want: server{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got server

			err := Unmarshal(tt.text, &got, tt.strict)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			changes, err := diff.Diff(tt.want, got)
			if err != nil {
				t.Fatal(err)
			}

			if len(changes) > 0 {
				for _, change := range changes {
					t.Errorf("%s: want %v, got %v", change.Path, change.From, change.To)
				}
			}
		})
	}
}

func TestUnmarshalErrors(t *testing.T) {
	var s server

	err := Unmarshal("host: {", &s, false)

	var perr *parser.ParseError
	if !errors.As(err, &perr) || !perr.UnexpectedEOF() {
		t.Errorf("expected a wrapped parse error, got %v", err)
	}

	err = Unmarshal("tls { cert_file { } }", &s, false)

	var uerr *UnmarshalError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected an UnmarshalError, got %v", err)
	}

	if err := Unmarshal("a: 1", nil, false); err == nil {
		t.Error("expected an error for nil")
	}

	if err := Unmarshal("a: 1", s, false); err == nil {
		t.Error("expected an error for a non-pointer")
	}
}

func TestDecodeSkipsUnexported(t *testing.T) {
	type private struct {
		Public string
		hidden string
	}

	doc, err := Parse(`public: "a" hidden: "b"`)
	if err != nil {
		t.Fatal(err)
	}

	var p private
	if err := Decode(doc, &p, false); err != nil {
		t.Fatal(err)
	}

	if p.Public != "a" || p.hidden != "" {
		t.Errorf("unexpected result %+v", p)
	}
}

func TestSnakeCase(t *testing.T) {
	for in, want := range map[string]string{
		"Name":           "name",
		"CertFile":       "cert_file",
		"HTTPTimeout":    "http_timeout",
		"NodeID":         "node_id",
		"Field2Name":     "field2_name",
		"already_snake":  "already_snake",
		"ServeHTTPProxy": "serve_http_proxy",
	} {
		if got := snakeCase(in); got != want {
			t.Errorf("snakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
