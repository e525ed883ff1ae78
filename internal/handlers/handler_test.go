// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Redis are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"shopadmin/internal/auth"
	"shopadmin/internal/cache"
	"shopadmin/internal/database"
	"shopadmin/internal/middleware"
	"shopadmin/internal/store"
)

const testJWTSecret = "handler-test-secret"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "shopadmin")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "shopadmin")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedis opens the Redis test database, skipping if unreachable.
func testRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_HOST", "localhost") + ":" + envOr("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       15,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(context.Background(), "resp:*").Result()
		if len(keys) > 0 {
			client.Del(context.Background(), keys...)
		}
		client.Close()
	})
	return client
}

// testAPI wires the full handler set behind a chi router, the way main does.
type testAPI struct {
	router chi.Router
	db     *sql.DB
	cache  *cache.ResponseCache
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db := testDB(t)
	respCache := cache.NewResponseCache(testRedis(t), time.Minute)

	contentStore := store.NewContentStore(db)
	auditStore := store.NewAuditStore(db)
	productStore := store.NewProductStore(db)
	categoryStore := store.NewCategoryStore(db)
	orderStore := store.NewOrderStore(db)
	customerStore := store.NewCustomerStore(db)
	reviewStore := store.NewReviewStore(db)
	userStore := store.NewUserStore(db)
	settingStore := store.NewSettingStore(db)
	statsStore := store.NewStatsStore(db)

	content := NewContent(contentStore, auditStore, respCache)
	public := NewPublic(contentStore, respCache)
	products := NewProducts(productStore, categoryStore, auditStore)
	orders := NewOrders(orderStore, auditStore)
	customers := NewCustomers(customerStore)
	reviews := NewReviews(reviewStore, auditStore)
	users := NewUsers(userStore, auditStore)
	settings := NewSettings(settingStore, auditStore)
	dashboard := NewDashboard(statsStore, orderStore, productStore, customerStore, reviewStore, auditStore, respCache)

	verifier := auth.NewVerifier(testJWTSecret)

	r := chi.NewRouter()
	r.Get("/health", Health)
	r.Get("/public/content/{slug}", public.GetContent)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))

		r.Route("/content", func(r chi.Router) {
			r.Post("/", content.Create)
			r.Get("/", content.List)
			r.Get("/schedules/due", content.DueSchedules)
			r.Get("/{slug}", content.Get)
			r.Put("/{slug}", content.Update)
			r.Get("/{slug}/versions", content.Versions)
			r.Post("/{slug}/publish", content.Publish)
			r.Delete("/{slug}/publish", content.Unpublish)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Post("/", products.Create)
			r.Get("/{id}", products.Get)
			r.Put("/{id}", products.Update)
			r.Delete("/{id}", products.Delete)
		})
		r.Get("/categories", products.ListCategories)
		r.Post("/categories", products.CreateCategory)
		r.Delete("/categories/{id}", products.DeleteCategory)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Get("/{id}", orders.Get)
			r.Put("/{id}/status", orders.UpdateStatus)
		})

		r.Get("/customers", customers.List)
		r.Get("/customers/{id}", customers.Get)

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviews.List)
			r.Put("/{id}/approval", reviews.SetApproval)
			r.Delete("/{id}", reviews.Delete)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/users", users.List)
			r.Post("/users", users.Create)
			r.Delete("/users/{id}", users.Delete)
		})

		r.Get("/settings", settings.List)
		r.Put("/settings/{key}", settings.Set)

		r.Get("/dashboard", dashboard.Get)
	})

	return &testAPI{router: r, db: db, cache: respCache}
}

// token signs a bearer token the verifier accepts.
func token(t *testing.T, role string) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "staff-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name: "Test Staff",
		Role: role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

// do runs one request through the router as an authenticated editor.
func (api *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	return api.doAs(t, method, path, body, "editor")
}

func (api *testAPI) doAs(t *testing.T, method, path, body, role string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, role))
	}
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func (api *testAPI) doAnon(t *testing.T, method, path string) *httptest.ResponseRecorder {
	return api.doAs(t, method, path, "", "")
}

// cleanupContent removes every version of a slug after the test.
func (api *testAPI) cleanupContent(t *testing.T, slug string) {
	t.Helper()
	t.Cleanup(func() {
		api.db.Exec("DELETE FROM content_versions WHERE slug = $1", slug)
		api.cache.Invalidate(context.Background(), cache.ContentKey(slug))
	})
}

func newTestSlug() string {
	return "t-" + strings.ToLower(strings.ReplaceAll(time.Now().Format("150405.000000000"), ".", ""))
}
