// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package token

import (
	"strings"
	"unicode/utf8"
)

// Quote wraps s in double quotes, so that the value of the lexed String token is s again.
// Double quotes, control characters and backslashes which would start an escape run or end the literal
// are written as octal escapes. Escape runs which are not valid UTF-8 and all other escapes are kept,
// because the lexer keeps them verbatim as well.
func Quote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for i := 0; i < len(s); {
		c := s[i]

		switch {
		case c == '\\':
			if n, buf := escapeRun(s[i:]); n > 0 && !utf8.Valid(buf) {
				sb.WriteString(s[i : i+n])
				i += n
			} else if n == 0 && i+1 < len(s) {
				sb.WriteString(s[i : i+2])
				i += 2
			} else {
				writeOctal(&sb, c)
				i++
			}
		case c == '"' || c < 0x20 || c == 0x7f:
			writeOctal(&sb, c)
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}

	sb.WriteByte('"')

	return sb.String()
}

func writeOctal(sb *strings.Builder, c byte) {
	sb.WriteByte('\\')
	sb.WriteByte('0' + c>>6)
	sb.WriteByte('0' + c>>3&7)
	sb.WriteByte('0' + c&7)
}
