package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"ahorro-energia/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"mensaje"`
}

var (
	errUnsupportedMedia = errors.New("content type must be application/json")
	errInvalidBody      = errors.New("invalid request body")
)

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return errUnsupportedMedia
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// writeJSON codifica en un buffer primero para no escribir el header si falla.
func writeJSON(w http.ResponseWriter, logger zerolog.Logger, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error().Err(err).Msg("error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Warn().Err(err).Msg("error writing response")
	}
}

func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, errUnsupportedMedia):
		writeJSON(w, logger, http.StatusUnsupportedMediaType, errorResponse{Error: "unsupported_media_type", Message: err.Error()})
		return
	case errors.Is(err, errInvalidBody):
		writeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: "invalid_body", Message: err.Error()})
		return
	}

	kind, ok := service.KindOf(err)
	if !ok {
		logger.Error().Err(err).Msg("unexpected error")
		writeJSON(w, logger, http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal server error"})
		return
	}

	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrMunicipalityExists):
		status = http.StatusConflict
	case kind == service.KindArithmetic:
		status = http.StatusUnprocessableEntity
	case kind == service.KindNotFound:
		status = http.StatusNotFound
	}

	logger.Debug().Err(err).Str("kind", string(kind)).Int("status", status).Msg("request rejected")
	writeJSON(w, logger, status, errorResponse{Error: string(kind), Message: err.Error()})
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
