// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"shopadmin/internal/cache"
	"shopadmin/internal/models"
	"shopadmin/internal/store"
)

// Dashboard aggregates store-wide numbers for the admin landing page.
// The summary is expensive (it fans out over most tables), so the whole
// response is cached in Redis for a few minutes.
type Dashboard struct {
	statsStore    *store.StatsStore
	orderStore    *store.OrderStore
	productStore  *store.ProductStore
	customerStore *store.CustomerStore
	reviewStore   *store.ReviewStore
	auditStore    *store.AuditStore
	respCache     *cache.ResponseCache
}

// NewDashboard creates the dashboard handler.
func NewDashboard(statsStore *store.StatsStore, orderStore *store.OrderStore, productStore *store.ProductStore, customerStore *store.CustomerStore, reviewStore *store.ReviewStore, auditStore *store.AuditStore, respCache *cache.ResponseCache) *Dashboard {
	return &Dashboard{
		statsStore:    statsStore,
		orderStore:    orderStore,
		productStore:  productStore,
		customerStore: customerStore,
		reviewStore:   reviewStore,
		auditStore:    auditStore,
		respCache:     respCache,
	}
}

type dashboardResponse struct {
	OrdersByStatus map[models.OrderStatus]int  `json:"orders_by_status"`
	RevenueCents   int64                       `json:"revenue_cents"`
	ContentByState map[models.PublishState]int `json:"content_by_state"`
	ProductCount   int                         `json:"product_count"`
	CustomerCount  int                         `json:"customer_count"`
	PendingReviews int                         `json:"pending_reviews"`
	RecentOrders   []*models.Order             `json:"recent_orders"`
	RecentActivity []*models.AuditEntry        `json:"recent_activity"`
}

// Get handles GET /api/dashboard.
func (h *Dashboard) Get(w http.ResponseWriter, r *http.Request) {
	key := cache.DashboardKey()
	if body, ok := h.respCache.Get(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
		return
	}

	resp, err := h.build()
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(resp); err != nil {
		slog.Error("dashboard encode failed", "error", err)
		writeError(w, err)
		return
	}

	h.respCache.Set(r.Context(), key, buf.Bytes())
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

func (h *Dashboard) build() (*dashboardResponse, error) {
	ordersByStatus, err := h.statsStore.OrdersByStatus()
	if err != nil {
		return nil, err
	}
	revenue, err := h.statsStore.Revenue()
	if err != nil {
		return nil, err
	}
	contentByState, err := h.statsStore.ContentByState()
	if err != nil {
		return nil, err
	}
	productCount, err := h.productStore.Count()
	if err != nil {
		return nil, err
	}
	customerCount, err := h.customerStore.Count()
	if err != nil {
		return nil, err
	}
	pendingReviews, err := h.reviewStore.CountPending()
	if err != nil {
		return nil, err
	}
	recentOrders, err := h.orderStore.Recent(5)
	if err != nil {
		return nil, err
	}
	recentActivity, err := h.auditStore.Recent(10)
	if err != nil {
		return nil, err
	}

	return &dashboardResponse{
		OrdersByStatus: ordersByStatus,
		RevenueCents:   revenue,
		ContentByState: contentByState,
		ProductCount:   productCount,
		CustomerCount:  customerCount,
		PendingReviews: pendingReviews,
		RecentOrders:   recentOrders,
		RecentActivity: recentActivity,
	}, nil
}
