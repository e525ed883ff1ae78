// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"shopadmin/internal/models"
)

// StatsStore aggregates the dashboard numbers. All queries are simple
// scalar reductions; anything heavier belongs in the external analytics
// pipeline.
type StatsStore struct {
	db *sql.DB
}

// NewStatsStore creates a new StatsStore with the given database connection.
func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

// OrdersByStatus returns the number of orders per status.
func (s *StatsStore) OrdersByStatus() (map[models.OrderStatus]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("orders by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.OrderStatus]int)
	for rows.Next() {
		var status models.OrderStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan order status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// Revenue returns the total of paid and shipped orders, in cents.
func (s *StatsStore) Revenue() (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRow(`
		SELECT SUM(total_cents) FROM orders WHERE status IN ('paid', 'shipped')
	`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("revenue: %w", err)
	}
	return total.Int64, nil
}

// ContentByState returns the number of content items per derived publish
// state, counting each slug once at its latest version.
func (s *StatsStore) ContentByState() (map[models.PublishState]int, error) {
	rows, err := s.db.Query(`
		WITH latest AS (
			SELECT DISTINCT ON (slug) status, scheduled_publish_at
			FROM content_versions
			ORDER BY slug, version DESC
		)
		SELECT
			CASE
				WHEN status = 'published' THEN 'published'
				WHEN scheduled_publish_at IS NOT NULL THEN 'scheduled'
				ELSE 'draft'
			END AS state,
			COUNT(*)
		FROM latest
		GROUP BY state
	`)
	if err != nil {
		return nil, fmt.Errorf("content by state: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.PublishState]int)
	for rows.Next() {
		var state models.PublishState
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, fmt.Errorf("scan content state count: %w", err)
		}
		counts[state] = n
	}
	return counts, rows.Err()
}
