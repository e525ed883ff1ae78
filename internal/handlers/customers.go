package handlers

import (
	"net/http"

	"shopadmin/internal/store"
)

// Customers serves read-only shopper account views. Accounts are created and
// edited through the storefront.
type Customers struct {
	customerStore *store.CustomerStore
}

// NewCustomers creates the customer handler group.
func NewCustomers(customerStore *store.CustomerStore) *Customers {
	return &Customers{customerStore: customerStore}
}

// List handles GET /api/customers with an email/name search.
func (h *Customers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	items, total, err := h.customerStore.List(r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Items: items, Total: total, Limit: limit, Offset: offset})
}

// Get handles GET /api/customers/{id}, including the order count.
func (h *Customers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.customerStore.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
