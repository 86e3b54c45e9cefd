// SPDX-FileCopyrightText: © 2021 The dbgstr authors <https://github.com/golangee/dbgstr/blob/main/AUTHORS>
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/golangee/dbgstr"
	"github.com/golangee/dbgstr/encoder"
	"github.com/golangee/dbgstr/token"
)

// syntaxError is the response for input that could not be parsed.
type syntaxError struct {
	Error  string `json:"error"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	// Report is the error rendered against the input.
	Report string `json:"report"`
}

type diagnostic struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

type parseResponse struct {
	Document    json.RawMessage `json:"document"`
	Diagnostics []diagnostic    `json:"diagnostics"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.pipelineConfig(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, ok := readBody(w, r)
	if !ok {
		return
	}

	out, err := dbgstr.Pretty(text, cfg)
	if err != nil {
		s.writeSyntaxError(w, text, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, out)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.pipelineConfig(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, ok := readBody(w, r)
	if !ok {
		return
	}

	res, err := dbgstr.ParseDetailed(text, cfg.LexerOptions()...)
	if err != nil {
		s.writeSyntaxError(w, text, err)
		return
	}

	doc, err := encoder.MarshalJSON(res.Document, encoder.JSONOptions{SortKeys: cfg.SortKeys})
	if err != nil {
		jsonError(w, "failed to encode document", http.StatusInternalServerError)
		return
	}

	resp := parseResponse{
		Document:    doc,
		Diagnostics: []diagnostic{},
	}

	for _, d := range res.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, diagnostic{
			Kind:    string(d.Kind),
			Message: d.Message,
			Line:    d.Begin().Line,
			Column:  d.Begin().Col,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// pipelineConfig applies the query parameters of r to the configured defaults.
func (s *Server) pipelineConfig(r *http.Request) (dbgstr.Config, error) {
	cfg := s.cfg.Pipeline()
	cfg.Logger = s.log

	q := r.URL.Query()

	if v := q.Get("indent"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 16 {
			return cfg, fmt.Errorf("indent must be a number between 0 and 16")
		}

		cfg.Indent = n
	}

	for name, target := range map[string]*bool{
		"sort_keys": &cfg.SortKeys,
		"wrap_root": &cfg.WrapRoot,
		"quote":     &cfg.Quote,
		"lenient":   &cfg.Lenient,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s must be a boolean", name)
		}

		*target = b
	}

	return cfg, nil
}

// readBody returns the request body or writes an error response.
func readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	buf, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return "", false
		}

		jsonError(w, "failed to read body", http.StatusBadRequest)
		return "", false
	}

	return string(buf), true
}

func (s *Server) writeSyntaxError(w http.ResponseWriter, text string, err error) {
	resp := syntaxError{
		Error:  err.Error(),
		Report: token.Report(text, err),
	}

	var node token.Node
	if errors.As(err, &node) {
		resp.Line = node.Begin().Line
		resp.Column = node.Begin().Col
	}

	s.log.Debug("syntax error", "error", err)

	writeJSON(w, http.StatusUnprocessableEntity, resp)
}
