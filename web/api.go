package web

import (
	"bytes"
	"io"
	"net/http"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/errors"
	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/formatter"
	"github.com/robinvdvleuten/tclcodec/loader"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	CommitSHA string `json:"commit"`
	ReadOnly  bool   `json:"readOnly"`
}

// TokenJSON is a decoded word with its position in the request body.
type TokenJSON struct {
	Text   string `json:"text"`
	Style  string `json:"style"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

type ParseResponse struct {
	Mode   string             `json:"mode"`
	Value  ast.Value          `json:"value,omitempty"`
	Tokens []TokenJSON        `json:"tokens,omitempty"`
	Errors []errors.ErrorJSON `json:"errors"`
}

type ErrorResponse struct {
	Errors []errors.ErrorJSON `json:"errors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   s.Version,
		CommitSHA: s.CommitSHA,
		ReadOnly:  s.ReadOnly,
	})
}

// handleParse handles POST requests to /api/parse. The body is list-format
// text; the "as" and "escape" query parameters override the server
// defaults. Decode errors are answered with 422.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	mode := s.Mode
	if as := r.URL.Query().Get("as"); as != "" {
		m, err := loader.ParseMode(as)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = m
	}

	escapeMode := s.Escape
	if e := r.URL.Query().Get("escape"); e != "" {
		m, err := escape.ParseMode(e)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		escapeMode = m
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusRequestEntityTooLarge)
		return
	}

	ldr := loader.New(loader.WithMode(mode), loader.WithEscapeMode(escapeMode))
	result, err := ldr.LoadBytes(r.Context(), "<request>", body)
	if err != nil {
		writeJSONResponse(w, http.StatusUnprocessableEntity, ParseResponse{
			Mode:   mode.String(),
			Errors: []errors.ErrorJSON{errors.NewJSONFormatter().ToJSON(err)},
		})
		return
	}

	response := ParseResponse{
		Mode:   mode.String(),
		Value:  result.Value,
		Errors: []errors.ErrorJSON{},
	}
	for _, tok := range result.Tokens {
		response.Tokens = append(response.Tokens, TokenJSON{
			Text:   tok.Text,
			Style:  tok.Style.String(),
			Line:   tok.Line,
			Column: tok.Column,
			Offset: tok.Start,
		})
	}

	writeJSONResponse(w, http.StatusOK, response)
}

// handleDump handles POST requests to /api/dump. The body is a JSON
// document; the response is its list-format text. "raw=1" drops the outer
// braces and "lines=1" puts each top-level element on its own line.
func (s *Server) handleDump(w http.ResponseWriter, r *http.Request) {
	value, err := ast.DecodeJSON(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeJSONResponse(w, http.StatusUnprocessableEntity, ErrorResponse{
			Errors: []errors.ErrorJSON{errors.NewJSONFormatter().ToJSON(err)},
		})
		return
	}

	// lines=1 implies raw=1, as --lines implies --raw on the command line.
	query := r.URL.Query()
	lines := query.Get("lines") == "1"

	var opts []formatter.Option
	if lines || query.Get("raw") == "1" {
		opts = append(opts, formatter.WithRaw())
	}
	if lines {
		opts = append(opts, formatter.WithLineSeparated())
	}

	var buf bytes.Buffer
	if err := formatter.New(opts...).Format(r.Context(), value, &buf); err != nil {
		writeJSONResponse(w, http.StatusUnprocessableEntity, ErrorResponse{
			Errors: []errors.ErrorJSON{errors.NewJSONFormatter().ToJSON(err)},
		})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
