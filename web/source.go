package web

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/errors"
)

// writeJSONResponse writes a JSON response to the http.ResponseWriter.
// If encoding fails, it writes an error response.
func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

type SourceResponse struct {
	Filepath string             `json:"filepath"`
	Source   string             `json:"source"`
	Mode     string             `json:"mode"`
	Value    ast.Value          `json:"value,omitempty"`
	Errors   []errors.ErrorJSON `json:"errors"`
}

// buildResponse creates a SourceResponse from the current source state.
// Must be called with s.mu held for reading.
func (s *Server) buildResponse() *SourceResponse {
	response := &SourceResponse{
		Filepath: s.sourceFile,
		Source:   string(s.source),
		Mode:     s.Mode.String(),
		Errors:   []errors.ErrorJSON{},
	}
	if s.result != nil {
		response.Value = s.result.Value
	}
	if s.loadErr != nil {
		response.Errors = append(response.Errors, errors.NewJSONFormatter().ToJSON(s.loadErr))
	}
	return response
}

// handleGetSource handles GET requests to /api/source.
// Returns the file content, its decoded value and decode errors as JSON.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	if s.sourceFile == "" {
		http.Error(w, "No source file configured", http.StatusNotFound)
		return
	}

	s.mu.RLock()
	response := s.buildResponse()
	s.mu.RUnlock()

	writeJSONResponse(w, http.StatusOK, response)
}

// handlePutSource handles PUT requests to /api/source.
// Writes the provided content to the file and returns decode errors.
func (s *Server) handlePutSource(w http.ResponseWriter, r *http.Request) {
	if s.sourceFile == "" {
		http.Error(w, "No source file configured", http.StatusNotFound)
		return
	}

	var request struct {
		Source string `json:"source"`
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := os.WriteFile(s.sourceFile, []byte(request.Source), 0600); err != nil {
		http.Error(w, "Failed to write file", http.StatusInternalServerError)
		return
	}

	if err := s.reloadSource(r.Context()); err != nil {
		http.Error(w, "Failed to reload source", http.StatusInternalServerError)
		return
	}

	s.mu.RLock()
	response := s.buildResponse()
	s.mu.RUnlock()

	s.broadcast("reload")
	writeJSONResponse(w, http.StatusOK, response)
}
