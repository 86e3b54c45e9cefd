// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Unescape decodes all escape runs in s, which is the content of a string literal without its quotes.
// A run is a sequence of octal (\nnn) or hex (\xHH) escapes, which is interpreted as raw bytes and decoded
// as UTF-8. Runs which are not valid UTF-8 are kept verbatim and reported as DecodeFallback.
// All other escapes are kept as they are.
func Unescape(s string) (string, []Diagnostic) {
	return unescape(s, Pos{Line: 1, Col: 1})
}

// unescape is Unescape with diagnostics relative to at, which is the position of the first byte of s.
func unescape(s string, at Pos) (string, []Diagnostic) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}

	var (
		sb    strings.Builder
		diags []Diagnostic
	)

	sb.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '\\' {
			sb.WriteByte(s[i])
			i++

			continue
		}

		if n, buf := escapeRun(s[i:]); n > 0 {
			raw := s[i : i+n]

			if utf8.Valid(buf) {
				sb.Write(buf)
			} else {
				sb.WriteString(raw)
				diags = append(diags, Diagnostic{
					Position: Position{BeginPos: at.Advance(s[:i]), EndPos: at.Advance(s[:i+n])},
					Kind:     DecodeFallback,
					Message:  fmt.Sprintf("escape run %s is not valid UTF-8 and was kept as is", raw),
					Text:     raw,
				})
			}

			i += n

			continue
		}

		// any other escape, including an escaped backslash, stays as it is
		if i+1 < len(s) {
			sb.WriteString(s[i : i+2])
			i += 2
		} else {
			sb.WriteByte('\\')
			i++
		}
	}

	return sb.String(), diags
}

// escapeRun returns the length of the maximal escape run at the start of s and its raw bytes.
func escapeRun(s string) (int, []byte) {
	var (
		n   int
		buf []byte
	)

	for l := byteEscapeLen(s); l > 0; l = byteEscapeLen(s[n:]) {
		buf = append(buf, parseByteEscape(s[n:n+l]))
		n += l
	}

	return n, buf
}

// byteEscapeLen returns the length of the octal or hex byte escape at the start of s or 0.
func byteEscapeLen(s string) int {
	if len(s) < 4 || s[0] != '\\' {
		return 0
	}

	switch {
	case s[1] >= '0' && s[1] <= '3' && isOctal(s[2]) && isOctal(s[3]):
		return 4
	case s[1] == 'x' && isHex(s[2]) && isHex(s[3]):
		return 4
	default:
		return 0
	}
}

// parseByteEscape returns the byte of an escape accepted by byteEscapeLen.
func parseByteEscape(s string) byte {
	if s[1] == 'x' {
		return hexValue(s[2])<<4 | hexValue(s[3])
	}

	return (s[1]-'0')<<6 | (s[2]-'0')<<3 | (s[3] - '0')
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
