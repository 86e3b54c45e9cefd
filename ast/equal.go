// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package ast

import (
	"errors"
	"strings"
)

// Equal reports whether a and b have the same shape, keys, order and texts.
// Scalar.Quoted is ignored.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *Scalar:
		b, ok := b.(*Scalar)
		return ok && a.Text == b.Text
	case *Message:
		b, ok := b.(*Message)
		if !ok || len(a.Fields) != len(b.Fields) {
			return false
		}

		for i, f := range a.Fields {
			if f.Key != b.Fields[i].Key || !Equal(f.Value, b.Fields[i].Value) {
				return false
			}
		}

		return true
	case *Repeated:
		b, ok := b.(*Repeated)
		if !ok || len(a.Values) != len(b.Values) {
			return false
		}

		for i, v := range a.Values {
			if !Equal(v, b.Values[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// SkipChildren can be returned by a WalkFunc to not descend into the current value.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for each value. The path contains the keys from the root, a repeated value
// has the same path as its list.
type WalkFunc func(path []string, v Value) error

// Walk visits v and all values below it depth-first in field order.
// Walking stops at the first error which is returned, except SkipChildren.
func Walk(v Value, fn WalkFunc) error {
	return walk(nil, v, fn)
}

func walk(path []string, v Value, fn WalkFunc) error {
	if err := fn(path, v); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}

		return err
	}

	switch v := v.(type) {
	case *Message:
		for _, f := range v.Fields {
			if err := walk(append(path[:len(path):len(path)], f.Key), f.Value, fn); err != nil {
				return err
			}
		}
	case *Repeated:
		for _, item := range v.Values {
			if err := walk(path, item, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

// Path joins keys of a WalkFunc path with dots.
func Path(path []string) string {
	return strings.Join(path, ".")
}
