package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"shopadmin/internal/models"
)

func decodeContent(t *testing.T, body []byte) *models.ContentVersion {
	t.Helper()
	var cv models.ContentVersion
	if err := json.Unmarshal(body, &cv); err != nil {
		t.Fatalf("decode content response: %v\nbody: %s", err, body)
	}
	return &cv
}

func decodeErrorKind(t *testing.T, body []byte) string {
	t.Helper()
	var e struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		t.Fatalf("decode error response: %v\nbody: %s", err, body)
	}
	return e.Kind
}

func TestContentCreateAndGet(t *testing.T) {
	api := newTestAPI(t)
	slug := newTestSlug()
	api.cleanupContent(t, slug)

	rec := api.do(t, http.MethodPost, "/api/content", fmt.Sprintf(
		`{"slug":%q,"type":"page","title":"First Draft","blocks":[{"kind":"text","text":"hi"}]}`, slug))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", rec.Code, rec.Body.Bytes())
	}
	created := decodeContent(t, rec.Body.Bytes())
	if created.Version != 1 || created.Status != models.ContentStatusDraft {
		t.Errorf("created: version %d status %q", created.Version, created.Status)
	}
	if created.CreatedBy != "Test Staff" {
		t.Errorf("created_by: got %q, want token display name", created.CreatedBy)
	}

	rec = api.do(t, http.MethodGet, "/api/content/"+slug, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got %d", rec.Code)
	}
	got := decodeContent(t, rec.Body.Bytes())
	if got.Title != "First Draft" {
		t.Errorf("title: got %q", got.Title)
	}
}

func TestContentCreateDuplicateSlug(t *testing.T) {
	api := newTestAPI(t)
	slug := newTestSlug()
	api.cleanupContent(t, slug)

	body := fmt.Sprintf(`{"slug":%q,"title":"One"}`, slug)
	if rec := api.do(t, http.MethodPost, "/api/content", body); rec.Code != http.StatusCreated {
		t.Fatalf("first create: got %d", rec.Code)
	}

	rec := api.do(t, http.MethodPost, "/api/content", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second create: got %d, want 409", rec.Code)
	}
	if kind := decodeErrorKind(t, rec.Body.Bytes()); kind != "duplicate_slug" {
		t.Errorf("kind: got %q, want duplicate_slug", kind)
	}
}

func TestContentCreateRejectsBadSlug(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/content", `{"slug":"Not A Slug","title":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	if kind := decodeErrorKind(t, rec.Body.Bytes()); kind != "validation" {
		t.Errorf("kind: got %q, want validation", kind)
	}
}

func TestContentUpdateAppendsVersion(t *testing.T) {
	api := newTestAPI(t)
	slug := newTestSlug()
	api.cleanupContent(t, slug)

	api.do(t, http.MethodPost, "/api/content", fmt.Sprintf(`{"slug":%q,"title":"v1"}`, slug))

	rec := api.do(t, http.MethodPut, "/api/content/"+slug,
		`{"base_version":1,"title":"v2","blocks":[{"kind":"text","text":"updated"}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: got %d, body %s", rec.Code, rec.Body.Bytes())
	}
	updated := decodeContent(t, rec.Body.Bytes())
	if updated.Version != 2 || updated.Title != "v2" {
		t.Errorf("updated: version %d title %q", updated.Version, updated.Title)
	}

	// Editing on the same base again must fail: version 2 is current now.
	rec = api.do(t, http.MethodPut, "/api/content/"+slug, `{"base_version":1,"title":"v2-again"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("stale update: got %d, want 409", rec.Code)
	}
	if kind := decodeErrorKind(t, rec.Body.Bytes()); kind != "stale_version" {
		t.Errorf("kind: got %q, want stale_version", kind)
	}
}

func TestContentVersionsHistory(t *testing.T) {
	api := newTestAPI(t)
	slug := newTestSlug()
	api.cleanupContent(t, slug)

	api.do(t, http.MethodPost, "/api/content", fmt.Sprintf(`{"slug":%q,"title":"v1"}`, slug))
	api.do(t, http.MethodPut, "/api/content/"+slug, `{"base_version":1,"title":"v2"}`)
	api.do(t, http.MethodPut, "/api/content/"+slug, `{"base_version":2,"title":"v3"}`)

	rec := api.do(t, http.MethodGet, "/api/content/"+slug+"/versions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("versions: got %d", rec.Code)
	}
	var resp struct {
		Items []*models.ContentVersion `json:"items"`
		Total int                      `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 3 || len(resp.Items) != 3 {
		t.Fatalf("got total %d, %d items, want 3", resp.Total, len(resp.Items))
	}
	// Newest first.
	if resp.Items[0].Version != 3 || resp.Items[2].Version != 1 {
		t.Errorf("order: got versions %d..%d", resp.Items[0].Version, resp.Items[2].Version)
	}

	rec = api.do(t, http.MethodGet, "/api/content/no-such-slug/versions", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug versions: got %d, want 404", rec.Code)
	}
}

func TestContentPublishFlow(t *testing.T) {
	api := newTestAPI(t)
	slug := newTestSlug()
	api.cleanupContent(t, slug)

	api.do(t, http.MethodPost, "/api/content", fmt.Sprintf(`{"slug":%q,"title":"About"}`, slug))

	// Draft is invisible publicly.
	if rec := api.doAnon(t, http.MethodGet, "/public/content/"+slug); rec.Code != http.StatusNotFound {
		t.Fatalf("public draft: got %d, want 404", rec.Code)
	}

	// Publish immediately.
	rec := api.do(t, http.MethodPost, "/api/content/"+slug+"/publish", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("publish: got %d, body %s", rec.Code, rec.Body.Bytes())
	}
	published := decodeContent(t, rec.Body.Bytes())
	if published.State() != models.StatePublished || published.PublishedAt == nil {
		t.Errorf("published: state %q, published_at %v", published.State(), published.PublishedAt)
	}

	// Now the public endpoint serves it, and a second read hits the cache.
	for i := 0; i < 2; i++ {
		rec = api.doAnon(t, http.MethodGet, "/public/content/"+slug)
		if rec.Code != http.StatusOK {
			t.Fatalf("public read %d: got %d", i, rec.Code)
		}
	}

	// Unpublish takes it back down and invalidates the cache.
	rec = api.do(t, http.MethodDelete, "/api/content/"+slug+"/publish", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("unpublish: got %d", rec.Code)
	}
	if rec := api.doAnon(t, http.MethodGet, "/public/content/"+slug); rec.Code != http.StatusNotFound {
		t.Errorf("public after unpublish: got %d, want 404", rec.Code)
	}
}

func TestContentScheduleAndDueList(t *testing.T) {
	api := newTestAPI(t)
	slug := newTestSlug()
	api.cleanupContent(t, slug)

	api.do(t, http.MethodPost, "/api/content", fmt.Sprintf(`{"slug":%q,"title":"Launch"}`, slug))

	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	rec := api.do(t, http.MethodPost, "/api/content/"+slug+"/publish",
		fmt.Sprintf(`{"publish_at":%q}`, future))
	if rec.Code != http.StatusOK {
		t.Fatalf("schedule: got %d, body %s", rec.Code, rec.Body.Bytes())
	}
	scheduled := decodeContent(t, rec.Body.Bytes())
	if scheduled.State() != models.StateScheduled {
		t.Fatalf("state: got %q, want scheduled", scheduled.State())
	}
	if scheduled.Status != models.ContentStatusDraft {
		t.Errorf("stored status: got %q, want draft", scheduled.Status)
	}

	// An hour out it is not due yet.
	rec = api.do(t, http.MethodGet, "/api/content/schedules/due", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("due list: got %d", rec.Code)
	}
	var due struct {
		Items []*models.ContentVersion `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &due); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, item := range due.Items {
		if item.Slug == slug {
			t.Errorf("slug %q listed as due an hour early", slug)
		}
	}
}

func TestContentRequiresAuth(t *testing.T) {
	api := newTestAPI(t)

	if rec := api.doAnon(t, http.MethodGet, "/api/content"); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list: got %d, want 401", rec.Code)
	}
}
