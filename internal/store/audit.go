// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"shopadmin/internal/models"
)

// AuditStore records admin actions for the dashboard activity feed.
// Append-only; entries are never edited.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore creates a new AuditStore with the given database connection.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Record appends an audit entry. Failures are logged but not returned —
// an audit miss must never fail the action it describes.
func (s *AuditStore) Record(actor, action, entity, detail string) {
	_, err := s.db.Exec(`
		INSERT INTO audit_log (actor, action, entity, detail)
		VALUES ($1, $2, $3, $4)
	`, actor, action, entity, detail)
	if err != nil {
		slog.Warn("audit record failed",
			"action", action,
			"entity", entity,
			"error", err,
		)
	}
}

// Recent returns the n most recent audit entries, newest first.
func (s *AuditStore) Recent(n int) ([]*models.AuditEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, actor, action, entity, detail, created_at
		FROM audit_log ORDER BY created_at DESC LIMIT $1
	`, n)
	if err != nil {
		return nil, fmt.Errorf("recent audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Entity, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
