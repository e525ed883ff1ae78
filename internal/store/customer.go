// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shopadmin/internal/models"
)

// CustomerStore handles all customer database operations.
type CustomerStore struct {
	db *sql.DB
}

// NewCustomerStore creates a new CustomerStore with the given database connection.
func NewCustomerStore(db *sql.DB) *CustomerStore {
	return &CustomerStore{db: db}
}

// List returns a page of customers matching an optional search over email
// and name, newest first, plus the total count.
func (s *CustomerStore) List(search string, limit, offset int) ([]*models.Customer, int, error) {
	where := ""
	args := []any{}
	if search != "" {
		where = "WHERE email ILIKE $1 OR name ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM customers `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := s.db.Query(`
		SELECT id, email, name, created_at FROM customers `+where+`
		ORDER BY created_at DESC
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Email, &c.Name, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	return customers, total, rows.Err()
}

// FindByID retrieves a customer by UUID, including their order count.
func (s *CustomerStore) FindByID(id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	err := s.db.QueryRow(`
		SELECT c.id, c.email, c.name, c.created_at,
		       (SELECT COUNT(*) FROM orders o WHERE o.customer_id = c.id)
		FROM customers c WHERE c.id = $1
	`, id).Scan(&c.ID, &c.Email, &c.Name, &c.CreatedAt, &c.OrderCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find customer by id: %w", err)
	}
	return &c, nil
}

// Count returns the total number of customers.
func (s *CustomerStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}
