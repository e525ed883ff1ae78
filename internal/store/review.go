// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// ReviewStore handles product review moderation queries.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// ReviewFilter narrows a review listing. Zero values mean "any".
type ReviewFilter struct {
	ProductID *uuid.UUID
	Approved  *bool
}

// List returns a page of reviews, newest first, plus the total count.
func (s *ReviewStore) List(f ReviewFilter, limit, offset int) ([]*models.Review, int, error) {
	var conds []string
	var args []any

	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		conds = append(conds, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.Approved != nil {
		args = append(args, *f.Approved)
		conds = append(conds, fmt.Sprintf("approved = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := s.db.Query(`
		SELECT id, product_id, customer_id, rating, body, approved, created_at
		FROM reviews `+where+`
		ORDER BY created_at DESC
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.CustomerID, &r.Rating, &r.Body, &r.Approved, &r.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, &r)
	}
	return reviews, total, rows.Err()
}

// SetApproved approves or rejects a review.
func (s *ReviewStore) SetApproved(id uuid.UUID, approved bool) (*models.Review, error) {
	var r models.Review
	err := s.db.QueryRow(`
		UPDATE reviews SET approved = $1 WHERE id = $2
		RETURNING id, product_id, customer_id, rating, body, approved, created_at
	`, approved, id).Scan(&r.ID, &r.ProductID, &r.CustomerID, &r.Rating, &r.Body, &r.Approved, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set review approved: %w", err)
	}
	return &r, nil
}

// Delete removes a review by ID.
func (s *ReviewStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountPending returns the number of reviews awaiting moderation.
func (s *ReviewStore) CountPending() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM reviews WHERE approved = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending reviews: %w", err)
	}
	return count, nil
}
