// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golangee/dbgstr/internal/input"
	"github.com/golangee/dbgstr/internal/mdblock"
	"github.com/golangee/dbgstr/token"
	"github.com/urfave/cli/v2"
)

func markdownCommand() *cli.Command {
	return &cli.Command{
		Name:      "markdown",
		Aliases:   []string{"md"},
		Usage:     "format debug strings in fenced code blocks (" + strings.Join(mdblock.Languages, ", ") + ")",
		ArgsUsage: "FILE...",
		Flags:     formatFlags(),
		Action:    runMarkdown,
	}
}

func runMarkdown(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("no markdown files given")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	pipeline := cfg.Pipeline()
	pipeline.Logger = newLogger(c)

	failed := 0

	for _, name := range c.Args().Slice() {
		src, err := readInput(c, name)
		if err != nil {
			return err
		}

		res := mdblock.Format([]byte(src), pipeline)

		for _, b := range res.Failed() {
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%s:%d: %s\n", name, b.Line, token.Report(b.Body, b.Err))
		}

		if c.Bool("write") && name != input.Stdin {
			if res.Changed == 0 {
				continue
			}

			if err := os.WriteFile(name, []byte(res.Text), 0o644); err != nil {
				return err
			}

			pipeline.Logger.Debug("formatted code blocks", "file", name, "changed", res.Changed)

			continue
		}

		io.WriteString(c.App.Writer, res.Text)
	}

	if failed > 0 {
		return fmt.Errorf("%d code blocks could not be parsed", failed)
	}

	return nil
}
