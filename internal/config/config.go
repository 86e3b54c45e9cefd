// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Package config loads the settings of the command line tool and the HTTP service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/golangee/dbgstr"
)

type Config struct {
	// Formatting
	Indent   int
	SortKeys bool
	WrapRoot bool
	Quote    bool

	// Lenient skips illegal characters instead of failing.
	Lenient bool

	// UseEntireFile formats the whole input, if no region was selected.
	UseEntireFile bool

	// HTTP service
	Port         string
	MaxBodyBytes int64
}

// settings mirrors the keys of a JSON settings file. Absent keys keep the current value.
type settings struct {
	Indent                     *int  `json:"indent"`
	SortKeys                   *bool `json:"sort_keys"`
	UseEntireFileIfNoSelection *bool `json:"use_entire_file_if_no_selection"`
	WrapRoot                   *bool `json:"wrap_root"`
	Quote                      *bool `json:"quote"`
	Lenient                    *bool `json:"lenient"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Indent:        4,
		UseEntireFile: true,
		Port:          "8095",
		MaxBodyBytes:  1 << 20, // 1MB
	}
}

// Load reads the environment on top of the defaults.
func Load() Config {
	def := Default()

	cfg := Config{
		Indent:   envInt("DBGSTR_INDENT", def.Indent),
		SortKeys: envBool("DBGSTR_SORT_KEYS", def.SortKeys),
		WrapRoot: envBool("DBGSTR_WRAP_ROOT", def.WrapRoot),
		Quote:    envBool("DBGSTR_QUOTE", def.Quote),
		Lenient:  envBool("DBGSTR_LENIENT", def.Lenient),

		UseEntireFile: envBool("DBGSTR_USE_ENTIRE_FILE", def.UseEntireFile),

		Port:         envOr("PORT", def.Port),
		MaxBodyBytes: envInt64("DBGSTR_MAX_BODY_BYTES", def.MaxBodyBytes),
	}

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}

	return cfg
}

// LoadFile applies a JSON settings file to c and returns the result.
func (c Config) LoadFile(path string) (Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("cannot read settings: %w", err)
	}

	var s settings
	if err := json.Unmarshal(buf, &s); err != nil {
		return c, fmt.Errorf("cannot parse settings %s: %w", path, err)
	}

	if s.Indent != nil {
		c.Indent = *s.Indent
	}
	if s.SortKeys != nil {
		c.SortKeys = *s.SortKeys
	}
	if s.UseEntireFileIfNoSelection != nil {
		c.UseEntireFile = *s.UseEntireFileIfNoSelection
	}
	if s.WrapRoot != nil {
		c.WrapRoot = *s.WrapRoot
	}
	if s.Quote != nil {
		c.Quote = *s.Quote
	}
	if s.Lenient != nil {
		c.Lenient = *s.Lenient
	}

	return c, nil
}

func (c Config) Validate() error {
	if c.Indent < 0 || c.Indent > 16 {
		return fmt.Errorf("indent must be between 0 and 16, got %d", c.Indent)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.ParseUint(c.Port, 10, 16); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("DBGSTR_MAX_BODY_BYTES must be positive")
	}
	return nil
}

// Pipeline returns the settings for dbgstr.Pretty.
func (c Config) Pipeline() dbgstr.Config {
	return dbgstr.Config{
		Indent:   c.Indent,
		SortKeys: c.SortKeys,
		WrapRoot: c.WrapRoot,
		Quote:    c.Quote,
		Lenient:  c.Lenient,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
