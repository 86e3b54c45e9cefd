// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

// Command dbgstr pretty prints protocol buffer debug strings.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/golangee/dbgstr/internal/config"
	"github.com/golangee/dbgstr/internal/version"
	"github.com/urfave/cli/v2"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dbgstr:", err)
		os.Exit(1)
	}
}

// formatFlags are shared by all commands which format text.
func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "JSON settings `FILE`"},
		&cli.IntFlag{Name: "indent", Value: 4, Usage: "spaces per nesting level"},
		&cli.BoolFlag{Name: "sort-keys", Usage: "order fields by key"},
		&cli.BoolFlag{Name: "wrap-root", Usage: "enclose the root message in braces"},
		&cli.BoolFlag{Name: "quote", Usage: "keep string values in quotes"},
		&cli.BoolFlag{Name: "lenient", Usage: "skip illegal characters instead of failing"},
		&cli.BoolFlag{Name: "write", Aliases: []string{"w"}, Usage: "write the result back to the file"},
		&cli.BoolFlag{Name: "verbose", Usage: "log debug output"},
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "dbgstr",
		Usage:     "pretty print protocol buffer debug strings",
		Version:   version.String(),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			formatCommand(),
			markdownCommand(),
			serveCommand(),
		},
	}
}

// loadConfig merges the environment, the settings file and the flags, in that order.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Load()

	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}

	if c.IsSet("indent") {
		cfg.Indent = c.Int("indent")
	}

	for flag, target := range map[string]*bool{
		"sort-keys": &cfg.SortKeys,
		"wrap-root": &cfg.WrapRoot,
		"quote":     &cfg.Quote,
		"lenient":   &cfg.Lenient,
	} {
		if c.IsSet(flag) {
			*target = c.Bool(flag)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// newLogger writes warnings to stderr, verbose adds debug output.
func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))
}
