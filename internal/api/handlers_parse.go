package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dgallion1/fddparse/internal/parser"
	"github.com/dgallion1/fddparse/internal/segment"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// handleParse segments the "fdd" text field into a heading -> content object.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readParseRequest(w, r)
	if !ok {
		return
	}
	sections := segment.Segment(req.FDD)
	s.log.Debug("segmented document",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Int("bytes", len(req.FDD)),
		zap.Int("sections", len(sections)),
	)
	respondJSON(w, http.StatusOK, sections)
}

// handleParseSections returns every section in document order, duplicates
// included, with their byte offsets.
func (s *Server) handleParseSections(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readParseRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"sections": segment.Sections(req.FDD),
	})
}

func (s *Server) readParseRequest(w http.ResponseWriter, r *http.Request) (ParseRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxTextBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request body exceeds max size (%d bytes)", s.cfg.MaxTextBytes), http.StatusRequestEntityTooLarge)
			return ParseRequest{}, false
		}
		jsonError(w, "failed to read request body", http.StatusBadRequest)
		return ParseRequest{}, false
	}

	req, err := decodeParseRequest(body)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.Is(err, errInvalidJSON):
			jsonError(w, err.Error(), http.StatusBadRequest)
		case errors.As(err, &verr):
			respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   "invalid request body",
				"details": verr.Details,
			})
		default:
			s.log.Error("decode request failed", zap.Error(err))
			jsonError(w, "failed to decode request", http.StatusInternalServerError)
		}
		return ParseRequest{}, false
	}
	return req, true
}

// handleParseFile converts an uploaded document to text and segments it.
func (s *Server) handleParseFile(w http.ResponseWriter, r *http.Request) {
	// Limit total request size.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	p, err := parser.ForFile(filename, parser.Options{PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext})
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("parse upload failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("filename", filename),
			zap.Error(err),
		)
		jsonError(w, "failed to parse file: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	respondJSON(w, http.StatusOK, segment.Segment(text))
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	respondJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "unnamed"
	}
	return name
}
