// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shopadmin/internal/cache"
	"shopadmin/internal/middleware"
	"shopadmin/internal/models"
	"shopadmin/internal/store"
)

// Content groups the versioned content endpoints. Every write records an
// audit entry and invalidates the public response cache for the slug.
type Content struct {
	contentStore *store.ContentStore
	auditStore   *store.AuditStore
	respCache    *cache.ResponseCache
}

// NewContent creates the content handler group.
func NewContent(contentStore *store.ContentStore, auditStore *store.AuditStore, respCache *cache.ResponseCache) *Content {
	return &Content{contentStore: contentStore, auditStore: auditStore, respCache: respCache}
}

type createContentRequest struct {
	Slug   string             `json:"slug"`
	Type   models.ContentType `json:"type"`
	Title  string             `json:"title"`
	Blocks json.RawMessage    `json:"blocks"`
	// Publish immediately on create when true; default is draft.
	Published bool `json:"published"`
}

// Create handles POST /api/content: version 1 of a new content item.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	var req createContentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if msg := validateContentCreate(req.Slug, req.Title, req.Blocks); msg != "" {
		writeValidationError(w, msg)
		return
	}
	if req.Type == "" {
		req.Type = models.ContentTypePage
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	status := models.ContentStatusDraft
	if req.Published {
		status = models.ContentStatusPublished
	}

	created, err := h.contentStore.Create(&models.ContentVersion{
		Slug:      req.Slug,
		Type:      req.Type,
		Status:    status,
		Title:     req.Title,
		Blocks:    req.Blocks,
		CreatedBy: actor,
		UpdatedBy: actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditStore.Record(actor, "content.create", created.Slug, fmt.Sprintf("version %d", created.Version))
	h.respCache.Invalidate(r.Context(), cache.ContentKey(created.Slug))
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/content: one row per slug, each the current version,
// filtered by type, derived publish state, and a title/slug search term.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ContentFilter{
		Type:   models.ContentType(q.Get("type")),
		State:  models.PublishState(q.Get("status")),
		Search: q.Get("search"),
	}
	limit, offset := pagination(r)

	items, total, err := h.contentStore.ListLatest(filter, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Limit: limit, Offset: offset})
}

// Get handles GET /api/content/{slug}: the current version, any state.
func (h *Content) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.contentStore.GetLatest(chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type updateContentRequest struct {
	// BaseVersion is the version the editor loaded. The edit fails with
	// stale_version if someone else appended a newer one since.
	BaseVersion int             `json:"base_version"`
	Title       string          `json:"title"`
	Blocks      json.RawMessage `json:"blocks"`
}

// Update handles PUT /api/content/{slug}: appends the next version on top of
// base_version. Prior versions are never modified.
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	slugVal := chi.URLParam(r, "slug")

	var req updateContentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if req.BaseVersion < 1 {
		writeValidationError(w, "base_version is required")
		return
	}
	if msg := validateContentBody(req.Title, req.Blocks); msg != "" {
		writeValidationError(w, msg)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	created, err := h.contentStore.Append(slugVal, req.BaseVersion, store.AppendInput{
		Title:  req.Title,
		Blocks: req.Blocks,
		Editor: actor,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditStore.Record(actor, "content.update", slugVal, fmt.Sprintf("version %d", created.Version))
	h.respCache.Invalidate(r.Context(), cache.ContentKey(slugVal))
	writeJSON(w, http.StatusOK, created)
}

// Versions handles GET /api/content/{slug}/versions: the full history,
// newest first.
func (h *Content) Versions(w http.ResponseWriter, r *http.Request) {
	slugVal := chi.URLParam(r, "slug")
	limit, offset := pagination(r)

	items, total, err := h.contentStore.ListVersions(slugVal, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if total == 0 {
		writeError(w, store.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Limit: limit, Offset: offset})
}

type publishRequest struct {
	// PublishAt in the future schedules; absent or past publishes now.
	PublishAt *time.Time `json:"publish_at,omitempty"`
}

// Publish handles POST /api/content/{slug}/publish. The body is optional;
// an empty body publishes immediately.
func (h *Content) Publish(w http.ResponseWriter, r *http.Request) {
	slugVal := chi.URLParam(r, "slug")

	var req publishRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeValidationError(w, "invalid JSON body")
			return
		}
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	updated, err := h.contentStore.Publish(slugVal, req.PublishAt, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	action := "content.publish"
	if updated.State() == models.StateScheduled {
		action = "content.schedule"
	}
	h.auditStore.Record(actor, action, slugVal, fmt.Sprintf("version %d", updated.Version))
	h.respCache.Invalidate(r.Context(), cache.ContentKey(slugVal))
	writeJSON(w, http.StatusOK, updated)
}

// Unpublish handles DELETE /api/content/{slug}/publish: back to draft with
// both publish timestamps cleared. Cancelling a schedule goes through here too.
func (h *Content) Unpublish(w http.ResponseWriter, r *http.Request) {
	slugVal := chi.URLParam(r, "slug")

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	updated, err := h.contentStore.Unpublish(slugVal, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	h.auditStore.Record(actor, "content.unpublish", slugVal, fmt.Sprintf("version %d", updated.Version))
	h.respCache.Invalidate(r.Context(), cache.ContentKey(slugVal))
	writeJSON(w, http.StatusOK, updated)
}

// DueSchedules handles GET /api/content/schedules/due: items whose scheduled
// publish time has arrived. The external scheduler polls this and calls
// Publish on each slug it returns.
func (h *Content) DueSchedules(w http.ResponseWriter, r *http.Request) {
	limit, _ := pagination(r)

	items, err := h.contentStore.ListDueSchedules(time.Now().UTC(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: len(items), Limit: limit})
}
