// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the admin API.
// Handlers are grouped by concern and receive their dependencies through
// the handler struct. All responses are JSON; errors carry a stable "kind"
// string the admin UI switches on.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"shopadmin/internal/store"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeJSON serializes v with the given status. Encoding failures are logged
// but not surfaced; headers are already out.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps a store error to its HTTP status and error kind.
// Unrecognized errors become an opaque 500; the detail goes to the log only.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found", Kind: "not_found"})
	case errors.Is(err, store.ErrDuplicateSlug):
		writeJSON(w, http.StatusConflict, errorBody{Error: "slug already exists", Kind: "duplicate_slug"})
	case errors.Is(err, store.ErrStaleVersion):
		writeJSON(w, http.StatusConflict, errorBody{
			Error: "a newer version exists; reload and retry",
			Kind:  "stale_version",
		})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error", Kind: "internal"})
	}
}

// writeValidationError reports a 400 with the first validation failure.
func writeValidationError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg, Kind: "validation"})
}

// decodeJSON decodes a request body into v, rejecting unknown fields so
// client typos fail loudly instead of silently dropping data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// pathID parses the {id} route parameter. Writes the 400 itself on failure;
// callers just return when ok is false.
func pathID(w http.ResponseWriter, r *http.Request) (id uuid.UUID, ok bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeValidationError(w, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// listResponse is the envelope for paginated collection endpoints.
type listResponse struct {
	Items  any `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
