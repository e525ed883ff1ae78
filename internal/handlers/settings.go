package handlers

import (
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"shopadmin/internal/middleware"
	"shopadmin/internal/store"
)

const maxSettingValueLen = 10_000

// Settings groups the storefront configuration endpoints.
type Settings struct {
	settingStore *store.SettingStore
	auditStore   *store.AuditStore
}

// NewSettings creates the settings handler group.
func NewSettings(settingStore *store.SettingStore, auditStore *store.AuditStore) *Settings {
	return &Settings{settingStore: settingStore, auditStore: auditStore}
}

// List handles GET /api/settings.
func (h *Settings) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.settingStore.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type settingRequest struct {
	Value string `json:"value"`
}

// Set handles PUT /api/settings/{key}: upsert of one key.
func (h *Settings) Set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var req settingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if utf8.RuneCountInString(req.Value) > maxSettingValueLen {
		writeValidationError(w, "value is too long")
		return
	}

	updated, err := h.settingStore.Set(key, req.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, "setting.set", key, "")
	writeJSON(w, http.StatusOK, updated)
}
