// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shopadmin/internal/cache"
	"shopadmin/internal/store"
)

// Public serves the unauthenticated storefront read path. Only published
// content is visible here; drafts and scheduled items return 404 even when
// an older version of the same slug was once published.
type Public struct {
	contentStore *store.ContentStore
	respCache    *cache.ResponseCache
}

// NewPublic creates the public handler group.
func NewPublic(contentStore *store.ContentStore, respCache *cache.ResponseCache) *Public {
	return &Public{contentStore: contentStore, respCache: respCache}
}

// GetContent handles GET /public/content/{slug}. Responses are cached in
// Redis; writes to the slug invalidate the entry.
func (h *Public) GetContent(w http.ResponseWriter, r *http.Request) {
	slugVal := chi.URLParam(r, "slug")
	key := cache.ContentKey(slugVal)

	if body, ok := h.respCache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	item, err := h.contentStore.GetLatestPublished(slugVal)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(item); err != nil {
		slog.Error("public content encode failed", "slug", slugVal, "error", err)
		writeError(w, err)
		return
	}

	h.respCache.Set(r.Context(), key, buf.Bytes())
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

// Health handles GET /health for load balancer checks.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
