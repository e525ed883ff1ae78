// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"shopadmin/internal/middleware"
	"shopadmin/internal/models"
	"shopadmin/internal/store"
)

// Orders groups the order management endpoints. Orders are created by the
// storefront; the admin only inspects them and moves them through
// fulfillment.
type Orders struct {
	orderStore *store.OrderStore
	auditStore *store.AuditStore
}

// NewOrders creates the order handler group.
func NewOrders(orderStore *store.OrderStore, auditStore *store.AuditStore) *Orders {
	return &Orders{orderStore: orderStore, auditStore: auditStore}
}

// List handles GET /api/orders with status and customer filters.
func (h *Orders) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter store.OrderFilter
	if v := q.Get("status"); v != "" {
		status := models.OrderStatus(v)
		if !models.ValidOrderStatus(status) {
			writeValidationError(w, "unknown order status")
			return
		}
		filter.Status = status
	}
	if v := q.Get("customer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeValidationError(w, "invalid customer_id")
			return
		}
		filter.CustomerID = &id
	}
	limit, offset := pagination(r)

	items, total, err := h.orderStore.List(filter, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Limit: limit, Offset: offset})
}

// Get handles GET /api/orders/{id}, including line items.
func (h *Orders) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	order, err := h.orderStore.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type orderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus handles PUT /api/orders/{id}/status.
func (h *Orders) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		writeValidationError(w, "unknown order status")
		return
	}

	updated, err := h.orderStore.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, "order.status", updated.Number, string(req.Status))
	writeJSON(w, http.StatusOK, updated)
}
