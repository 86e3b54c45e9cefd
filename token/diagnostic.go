// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

// DiagnosticKind classifies a Diagnostic.
type DiagnosticKind string

const (
	// IllegalCharacter is reported by a lenient Lexer for each skipped character.
	IllegalCharacter DiagnosticKind = "illegal-character"
	// DecodeFallback is reported when an escape run did not decode to valid UTF-8 and was kept verbatim.
	DecodeFallback DiagnosticKind = "decode-fallback"
)

// A Diagnostic is a problem in the input that did not stop the lexer.
type Diagnostic struct {
	Position
	Kind    DiagnosticKind
	Message string
	// Text is the offending part of the input.
	Text string
}

func (d Diagnostic) String() string {
	return d.Begin().String() + ": " + d.Message
}
