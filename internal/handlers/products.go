// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"shopadmin/internal/middleware"
	"shopadmin/internal/models"
	"shopadmin/internal/slug"
	"shopadmin/internal/store"
)

// Products groups the catalog endpoints: products and their categories.
type Products struct {
	productStore  *store.ProductStore
	categoryStore *store.CategoryStore
	auditStore    *store.AuditStore
}

// NewProducts creates the catalog handler group.
func NewProducts(productStore *store.ProductStore, categoryStore *store.CategoryStore, auditStore *store.AuditStore) *Products {
	return &Products{productStore: productStore, categoryStore: categoryStore, auditStore: auditStore}
}

type productRequest struct {
	SKU         string     `json:"sku"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description,omitempty"`
	PriceCents  int64      `json:"price_cents"`
	Currency    string     `json:"currency"`
	Stock       int        `json:"stock"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Active      *bool      `json:"active,omitempty"`
}

func (req *productRequest) toModel() *models.Product {
	p := &models.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    req.Currency,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		Active:      true,
	}
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Name)
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	return p
}

// List handles GET /api/products with category, active, and search filters.
func (h *Products) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ProductFilter{Search: q.Get("q")}
	if v := q.Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeValidationError(w, "invalid category_id")
			return
		}
		filter.CategoryID = &id
	}
	if v := q.Get("active"); v != "" {
		active := v == "true"
		filter.Active = &active
	}
	limit, offset := pagination(r)

	items, total, err := h.productStore.List(filter, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Limit: limit, Offset: offset})
}

// Get handles GET /api/products/{id}.
func (h *Products) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.productStore.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create handles POST /api/products.
func (h *Products) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	p := req.toModel()
	if msg := validateProduct(p.SKU, p.Name, p.Slug, p.Currency, p.PriceCents); msg != "" {
		writeValidationError(w, msg)
		return
	}

	created, err := h.productStore.Create(p)
	if err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, "product.create", created.SKU, created.Name)
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/products/{id}. Full replacement of the editable
// fields; the storefront owns stock decrements, this path is for corrections.
func (h *Products) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	p := req.toModel()
	p.ID = id
	if msg := validateProduct(p.SKU, p.Name, p.Slug, p.Currency, p.PriceCents); msg != "" {
		writeValidationError(w, msg)
		return
	}

	updated, err := h.productStore.Update(p)
	if err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, "product.update", updated.SKU, updated.Name)
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/products/{id}.
func (h *Products) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.productStore.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	actor := middleware.IdentityFromCtx(r.Context()).Actor()
	h.auditStore.Record(actor, "product.delete", id.String(), "")
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /api/categories.
func (h *Products) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.categoryStore.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type categoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateCategory handles POST /api/categories.
func (h *Products) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, "invalid JSON body")
		return
	}
	if req.Name == "" {
		writeValidationError(w, "name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}
	if !slug.Valid(req.Slug) {
		writeValidationError(w, "slug must be lowercase letters, digits, and single hyphens")
		return
	}

	created, err := h.categoryStore.Create(req.Name, req.Slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteCategory handles DELETE /api/categories/{id}. Products keep their
// rows; the FK sets their category to null.
func (h *Products) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.categoryStore.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
