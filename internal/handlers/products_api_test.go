package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"shopadmin/internal/models"
)

func createTestProduct(t *testing.T, api *testAPI, sku, name string) *models.Product {
	t.Helper()

	rec := api.do(t, http.MethodPost, "/api/products", fmt.Sprintf(
		`{"sku":%q,"name":%q,"price_cents":1295,"currency":"EUR","stock":10}`, sku, name))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create product: got %d, body %s", rec.Code, rec.Body.Bytes())
	}
	var p models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	t.Cleanup(func() {
		api.db.Exec("DELETE FROM products WHERE id = $1", p.ID)
	})
	return &p
}

func TestProductCreateGeneratesSlug(t *testing.T) {
	api := newTestAPI(t)

	suffix := newTestSlug()
	p := createTestProduct(t, api, "MUG-"+suffix, "Mug "+suffix)
	if p.Slug != "mug-"+suffix {
		t.Errorf("slug: got %q, want mug-%s", p.Slug, suffix)
	}
	if !p.Active {
		t.Error("new products should default to active")
	}
}

func TestProductUpdateAndGet(t *testing.T) {
	api := newTestAPI(t)

	suffix := newTestSlug()
	p := createTestProduct(t, api, "MUG-"+suffix, "Mug "+suffix)

	rec := api.do(t, http.MethodPut, "/api/products/"+p.ID.String(), fmt.Sprintf(
		`{"sku":%q,"name":"Renamed Mug","slug":%q,"price_cents":1495,"currency":"EUR","stock":5,"active":false}`,
		p.SKU, p.Slug))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d, body %s", rec.Code, rec.Body.Bytes())
	}

	rec = api.do(t, http.MethodGet, "/api/products/"+p.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got %d", rec.Code)
	}
	var got models.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Renamed Mug" || got.PriceCents != 1495 || got.Active {
		t.Errorf("updated product: %+v", got)
	}
}

func TestProductValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/products",
		`{"sku":"","name":"No SKU","price_cents":100,"currency":"EUR"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing sku: got %d, want 400", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/api/products",
		`{"sku":"NEG-1","name":"Negative","price_cents":-5,"currency":"EUR"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative price: got %d, want 400", rec.Code)
	}
}

func TestProductDelete(t *testing.T) {
	api := newTestAPI(t)

	suffix := newTestSlug()
	p := createTestProduct(t, api, "MUG-"+suffix, "Mug "+suffix)

	if rec := api.do(t, http.MethodDelete, "/api/products/"+p.ID.String(), ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d", rec.Code)
	}
	if rec := api.do(t, http.MethodGet, "/api/products/"+p.ID.String(), ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: got %d, want 404", rec.Code)
	}
}

func TestCategoryCreateAndList(t *testing.T) {
	api := newTestAPI(t)

	name := "Cat " + newTestSlug()
	rec := api.do(t, http.MethodPost, "/api/categories", fmt.Sprintf(`{"name":%q}`, name))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category: got %d, body %s", rec.Code, rec.Body.Bytes())
	}
	var created models.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	t.Cleanup(func() {
		api.db.Exec("DELETE FROM categories WHERE id = $1", created.ID)
	})

	rec = api.do(t, http.MethodGet, "/api/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var cats []*models.Category
	if err := json.Unmarshal(rec.Body.Bytes(), &cats); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	found := false
	for _, c := range cats {
		if c.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("created category missing from list")
	}
}

func TestUserRoutesAreAdminOnly(t *testing.T) {
	api := newTestAPI(t)

	if rec := api.doAs(t, http.MethodGet, "/api/users", "", "editor"); rec.Code != http.StatusForbidden {
		t.Errorf("editor listing users: got %d, want 403", rec.Code)
	}
	if rec := api.doAs(t, http.MethodGet, "/api/users", "", "admin"); rec.Code != http.StatusOK {
		t.Errorf("admin listing users: got %d, want 200", rec.Code)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	api := newTestAPI(t)

	key := "test_" + newTestSlug()
	t.Cleanup(func() {
		api.db.Exec("DELETE FROM settings WHERE key = $1", key)
	})

	rec := api.do(t, http.MethodPut, "/api/settings/"+key, `{"value":"EUR"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set: got %d, body %s", rec.Code, rec.Body.Bytes())
	}

	rec = api.do(t, http.MethodGet, "/api/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var settings []*models.Setting
	if err := json.Unmarshal(rec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, s := range settings {
		if s.Key == key && s.Value == "EUR" {
			found = true
		}
	}
	if !found {
		t.Error("setting missing from list")
	}
}

func TestDashboard(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: got %d, body %s", rec.Code, rec.Body.Bytes())
	}
	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.OrdersByStatus == nil || resp.ContentByState == nil {
		t.Error("expected aggregate maps to be present")
	}

	// Second read comes from the cache and must match.
	rec2 := api.do(t, http.MethodGet, "/api/dashboard", "")
	if rec2.Code != http.StatusOK {
		t.Fatalf("cached dashboard: got %d", rec2.Code)
	}
	if rec.Body.String() != rec2.Body.String() {
		t.Error("cached dashboard differs from first read")
	}
}
