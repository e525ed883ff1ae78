package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry records one admin action (publish, order status change, ...)
// for the dashboard activity feed. Append-only.
type AuditEntry struct {
	ID        uuid.UUID `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
