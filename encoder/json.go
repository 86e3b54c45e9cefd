// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package encoder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/golangee/dbgstr/ast"
)

// JSONOptions control the JSON output.
type JSONOptions struct {
	// Indent is the number of spaces per level. 0 produces compact output.
	Indent   int
	SortKeys bool
}

// MarshalJSON converts v into JSON. Messages become objects with their fields in order,
// lists become arrays and scalars become strings.
func MarshalJSON(v ast.Value, opts JSONOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, v, opts.SortKeys); err != nil {
		return nil, err
	}

	if opts.Indent <= 0 {
		return buf.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", strings.Repeat(" ", opts.Indent)); err != nil {
		return nil, fmt.Errorf("cannot indent json: %w", err)
	}

	return out.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v ast.Value, sortKeys bool) error {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case *ast.Scalar:
		return appendString(buf, v.Text)
	case *ast.Repeated:
		buf.WriteByte('[')

		for i, item := range v.Values {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := appendJSON(buf, item, sortKeys); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case *ast.Message:
		fields := v.Fields
		if sortKeys {
			fields = slices.Clone(fields)
			slices.SortStableFunc(fields, func(a, b *ast.Field) int {
				return strings.Compare(a.Key, b.Key)
			})
		}

		buf.WriteByte('{')

		written := 0

		for _, f := range fields {
			if f == nil {
				continue
			}

			if written > 0 {
				buf.WriteByte(',')
			}

			written++

			if err := appendString(buf, f.Key); err != nil {
				return err
			}

			buf.WriteByte(':')

			if err := appendJSON(buf, f.Value, sortKeys); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot convert %T to json", v)
	}

	return nil
}

func appendString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	buf.Write(b)

	return nil
}
