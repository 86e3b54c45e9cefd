// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golangee/dbgstr"
	"github.com/golangee/dbgstr/encoder"
	"github.com/golangee/dbgstr/internal/input"
	"github.com/golangee/dbgstr/internal/region"
	"github.com/golangee/dbgstr/token"
	"github.com/urfave/cli/v2"
)

func formatCommand() *cli.Command {
	return &cli.Command{
		Name:      "format",
		Aliases:   []string{"fmt"},
		Usage:     "format debug strings from files or standard input",
		ArgsUsage: "[FILE...]",
		Flags: append(formatFlags(),
			&cli.StringFlag{Name: "lines", Usage: "only format the lines `FROM:TO`"},
			&cli.BoolFlag{Name: "json", Usage: "print the document as JSON"},
		),
		Action: runFormat,
	}
}

func runFormat(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	pipeline := cfg.Pipeline()
	pipeline.Logger = newLogger(c)

	files := c.Args().Slice()
	if len(files) == 0 {
		files = []string{input.Stdin}
	}

	failed := 0

	for _, name := range files {
		src, err := readInput(c, name)
		if err != nil {
			return err
		}

		r := region.Region{}
		if lines := c.String("lines"); lines != "" {
			if r, err = parseLines(src, lines); err != nil {
				return err
			}
		}

		r, text, err := region.Select(src, r, cfg.UseEntireFile)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		var out string

		if c.Bool("json") {
			out, err = toJSON(text, pipeline)
		} else {
			out, err = dbgstr.Pretty(text, pipeline)
		}

		if err != nil {
			failed++
			fmt.Fprintf(c.App.ErrWriter, "%s: %s\n", name, token.Report(text, err))

			continue
		}

		if c.Bool("json") {
			fmt.Fprintln(c.App.Writer, out)
			continue
		}

		result := region.Replace(src, r, out)

		if c.Bool("write") && name != input.Stdin {
			if input.IsCompressed(name) {
				return fmt.Errorf("%s: cannot write compressed files", name)
			}

			if result == src {
				continue
			}

			if err := os.WriteFile(name, []byte(result), 0o644); err != nil {
				return err
			}

			continue
		}

		io.WriteString(c.App.Writer, result)

		if !strings.HasSuffix(result, "\n") {
			io.WriteString(c.App.Writer, "\n")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be parsed", failed, len(files))
	}

	return nil
}

func readInput(c *cli.Context, name string) (string, error) {
	if name != input.Stdin {
		return input.ReadAll(name)
	}

	buf, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", fmt.Errorf("cannot read standard input: %w", err)
	}

	return string(buf), nil
}

// parseLines reads a FROM:TO line range, TO may be omitted for a single line.
func parseLines(src, lines string) (region.Region, error) {
	fromText, toText, found := strings.Cut(lines, ":")

	from, err := strconv.Atoi(fromText)
	if err != nil {
		return region.Region{}, fmt.Errorf("invalid line range %q", lines)
	}

	to := from
	if found {
		if to, err = strconv.Atoi(toText); err != nil {
			return region.Region{}, fmt.Errorf("invalid line range %q", lines)
		}
	}

	return region.Lines(src, from, to)
}

func toJSON(text string, cfg dbgstr.Config) (string, error) {
	doc, err := dbgstr.Parse(text, cfg.LexerOptions()...)
	if err != nil {
		return "", err
	}

	buf, err := encoder.MarshalJSON(doc, encoder.JSONOptions{Indent: cfg.Indent, SortKeys: cfg.SortKeys})
	if err != nil {
		return "", err
	}

	return string(buf), nil
}
