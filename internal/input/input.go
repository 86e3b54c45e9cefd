// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package input reads files, standard input and compressed dumps.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Stdin is the name which reads from standard input.
const Stdin = "-"

// Open returns a reader for the named file. Files ending with .gz or .zst are decompressed.
// The caller must close the reader.
func Open(name string) (io.ReadCloser, error) {
	if name == Stdin {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	r, err := Decompress(f, name)
	if err != nil {
		f.Close()
		return nil, err
	}

	return r, nil
}

// Decompress wraps r depending on the extension of name. Closing the result also closes r.
func Decompress(r io.ReadCloser, name string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("cannot read gzip %s: %w", name, err)
		}

		return &closer{Reader: z, close: []func() error{z.Close, r.Close}}, nil
	case ".zst", ".zstd":
		z, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("cannot read zstd %s: %w", name, err)
		}

		return &closer{Reader: z, close: []func() error{func() error { z.Close(); return nil }, r.Close}}, nil
	default:
		return r, nil
	}
}

// ReadAll returns the decompressed contents of the named file.
func ReadAll(name string) (string, error) {
	r, err := Open(name)
	if err != nil {
		return "", err
	}
	defer r.Close()

	buf, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", name, err)
	}

	return string(buf), nil
}

// IsCompressed returns true if Open decompresses the named file.
func IsCompressed(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".zst", ".zstd":
		return true
	default:
		return false
	}
}

// closer closes a decompressor and the underlying file in order.
type closer struct {
	io.Reader
	close []func() error
}

func (c *closer) Close() error {
	var first error

	for _, fn := range c.close {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
