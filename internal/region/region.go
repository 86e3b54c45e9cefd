// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package region selects the part of an input that gets formatted.
package region

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmpty is returned by Select for an empty region, if the entire input must not be used instead.
var ErrEmpty = errors.New("empty selection")

// Region is a byte range [Begin, End) of an input.
type Region struct {
	Begin int
	End   int
}

// Empty returns true if the region does not contain anything.
func (r Region) Empty() bool {
	return r.Begin >= r.End
}

func (r Region) String() string {
	return fmt.Sprintf("%d:%d", r.Begin, r.End)
}

// Whole returns the region of the entire src.
func Whole(src string) Region {
	return Region{End: len(src)}
}

// Lines returns the region from the beginning of line from to the end of line to, including its newline.
// Lines are 1-based and to is inclusive. A to beyond the last line is clamped.
func Lines(src string, from, to int) (Region, error) {
	if from < 1 || to < from {
		return Region{}, fmt.Errorf("invalid line range %d:%d", from, to)
	}

	r := Region{Begin: -1, End: len(src)}
	line := 1

	if from == 1 {
		r.Begin = 0
	}

	for i := 0; i < len(src); i++ {
		if src[i] != '\n' {
			continue
		}

		if line == to {
			r.End = i + 1
			break
		}

		line++

		if line == from {
			r.Begin = i + 1
		}
	}

	// the empty line behind a final newline does not count
	if r.Begin < 0 || (r.Begin == len(src) && from > 1) {
		return Region{}, fmt.Errorf("line %d is beyond the end of the input", from)
	}

	return r, nil
}

// Select returns the text of r. An empty region selects the whole src if useEntire is set,
// otherwise ErrEmpty is returned.
func Select(src string, r Region, useEntire bool) (Region, string, error) {
	if r.Begin < 0 || r.End > len(src) || r.Begin > r.End {
		return Region{}, "", fmt.Errorf("region %v out of bounds for input of %d bytes", r, len(src))
	}

	if r.Empty() {
		if !useEntire {
			return Region{}, "", ErrEmpty
		}

		r = Whole(src)
	}

	return r, src[r.Begin:r.End], nil
}

// Replace returns src with the region r replaced by text. A trailing newline of the region is kept,
// so that formatted text, which never ends with a newline, does not swallow the line break.
func Replace(src string, r Region, text string) string {
	var sb strings.Builder

	sb.Grow(len(src) - (r.End - r.Begin) + len(text) + 1)
	sb.WriteString(src[:r.Begin])
	sb.WriteString(text)

	if strings.HasSuffix(src[r.Begin:r.End], "\n") && !strings.HasSuffix(text, "\n") {
		sb.WriteByte('\n')
	}

	sb.WriteString(src[r.End:])

	return sb.String()
}
