// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DBGSTR_INDENT", "DBGSTR_SORT_KEYS", "DBGSTR_USE_ENTIRE_FILE", "PORT", "DBGSTR_MAX_BODY_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must be valid: %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DBGSTR_INDENT", "2")
	t.Setenv("DBGSTR_SORT_KEYS", "true")
	t.Setenv("DBGSTR_USE_ENTIRE_FILE", "false")
	t.Setenv("PORT", "9000")
	t.Setenv("DBGSTR_MAX_BODY_BYTES", "-5")

	cfg := Load()
	if cfg.Indent != 2 || !cfg.SortKeys || cfg.UseEntireFile || cfg.Port != "9000" {
		t.Errorf("unexpected config %+v", cfg)
	}

	if cfg.MaxBodyBytes != Default().MaxBodyBytes {
		t.Errorf("expected the default body limit, got %d", cfg.MaxBodyBytes)
	}

	if p := cfg.Pipeline(); p.Indent != 2 || !p.SortKeys {
		t.Errorf("unexpected pipeline config %+v", p)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"indent": 2, "sort_keys": true, "use_entire_file_if_no_selection": false}`), 0o600); err != nil {
		t.Fatal(err)
	}

	base := Default()
	base.Quote = true

	cfg, err := base.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Indent != 2 || !cfg.SortKeys || cfg.UseEntireFile || !cfg.Quote {
		t.Errorf("unexpected config %+v", cfg)
	}

	if _, err := base.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative indent", func(c *Config) { c.Indent = -1 }},
		{"huge indent", func(c *Config) { c.Indent = 100 }},
		{"empty port", func(c *Config) { c.Port = "" }},
		{"invalid port", func(c *Config) { c.Port = "http" }},
		{"no body", func(c *Config) { c.MaxBodyBytes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)

			if err := cfg.Validate(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
