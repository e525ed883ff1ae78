package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"shopadmin/internal/middleware"
	"shopadmin/internal/store"
)

// Reviews groups the review moderation endpoints.
type Reviews struct {
	reviewStore *store.ReviewStore
	auditStore  *store.AuditStore
}

// NewReviews creates the review handler group.
func NewReviews(reviewStore *store.ReviewStore, auditStore *store.AuditStore) *Reviews {
	return &Reviews{reviewStore: reviewStore, auditStore: auditStore}
}

// List handles GET /api/reviews with approved and product filters.
func (h *Reviews) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter store.ReviewFilter
	if v := q.Get("approved"); v != "" {
		approved := v == "true"
		filter.Approved = &approved
	}
	if v := q.Get("product_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeValidationError(w, "invalid product_id")
			return
		}
		filter.ProductID = &id
	}
	limit, offset := pagination(r)

	items, total, err := h.reviewStore.List(filter, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Limit: limit, Offset: offset})
}

type reviewApprovalRequest struct {
	Approved bool `json:"approved"`
}

// SetApproval handles PUT /api/reviews/{id}/approval: approve or hide.
func (h *Reviews) SetApproval(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req reviewApprovalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}

	updated, err := h.reviewStore.SetApproved(id, req.Approved)
	if err != nil {
		writeError(w, err)
		return
	}

	action := "review.hide"
	if req.Approved {
		action = "review.approve"
	}
	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, action, id.String(), "")
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/reviews/{id} for spam and abuse.
func (h *Reviews) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.reviewStore.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, "review.delete", id.String(), "")
	w.WriteHeader(http.StatusNoContent)
}
