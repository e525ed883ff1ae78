// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"shopadmin/internal/middleware"
	"shopadmin/internal/models"
	"shopadmin/internal/store"
)

// Users groups the staff account endpoints. Login itself happens at the
// identity provider; these records exist for staff management and role
// assignment. All routes here are admin-only.
type Users struct {
	userStore  *store.UserStore
	auditStore *store.AuditStore
}

// NewUsers creates the staff account handler group.
func NewUsers(userStore *store.UserStore, auditStore *store.AuditStore) *Users {
	return &Users{userStore: userStore, auditStore: auditStore}
}

// List handles GET /api/users.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.userStore.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type createUserRequest struct {
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	DisplayName string      `json:"display_name"`
	Role        models.Role `json:"role"`
}

// Create handles POST /api/users.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeValidationError(w, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		writeValidationError(w, "password must be at least 8 characters")
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleEditor {
		writeValidationError(w, "role must be admin or editor")
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = req.Email
	}

	created, err := h.userStore.Create(req.Email, req.Password, req.DisplayName, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, "user.create", created.Email, string(created.Role))
	writeJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/users/{id}. A staff member cannot delete their
// own account through the API; that guard lives at the identity provider.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.userStore.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, "user.delete", id.String(), "")
	w.WriteHeader(http.StatusNoContent)
}
