package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"shopadmin/internal/slug"
)

// Validation limits for content and catalog fields.
const (
	maxTitleLen  = 300
	maxSlugLen   = 300
	maxBlocksLen = 500_000
	maxNameLen   = 300
	maxSKULen    = 64

	defaultPageSize = 20
	maxPageSize     = 100
)

// validateContentCreate checks the fields of a new content item and returns
// the first error found, or "".
func validateContentCreate(slugVal, title string, blocks json.RawMessage) string {
	if slugVal == "" {
		return "slug is required"
	}
	if utf8.RuneCountInString(slugVal) > maxSlugLen {
		return "slug is too long (max 300 characters)"
	}
	if !slug.Valid(slugVal) {
		return "slug must be lowercase letters, digits, and single hyphens"
	}
	return validateContentBody(title, blocks)
}

// validateContentBody checks the editable fields shared by create and edit.
func validateContentBody(title string, blocks json.RawMessage) string {
	if strings.TrimSpace(title) == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "title is too long (max 300 characters)"
	}
	if len(blocks) > maxBlocksLen {
		return "blocks payload is too large"
	}
	if len(blocks) > 0 && !json.Valid(blocks) {
		return "blocks must be valid JSON"
	}
	return ""
}

// validateProduct checks product fields and returns the first error found.
func validateProduct(sku, name, slugVal, currency string, priceCents int64) string {
	if strings.TrimSpace(sku) == "" {
		return "sku is required"
	}
	if utf8.RuneCountInString(sku) > maxSKULen {
		return "sku is too long (max 64 characters)"
	}
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 300 characters)"
	}
	if slugVal != "" && !slug.Valid(slugVal) {
		return "slug must be lowercase letters, digits, and single hyphens"
	}
	if priceCents < 0 {
		return "price must not be negative"
	}
	if len(currency) != 3 {
		return "currency must be a 3-letter code"
	}
	return ""
}

// pagination reads limit plus either page (1-based) or offset query
// parameters, clamping to sane bounds. page wins when both are present.
func pagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 1 {
		offset = (v - 1) * limit
	}
	return limit, offset
}
