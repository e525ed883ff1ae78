// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"shopadmin/internal/models"
)

// SettingStore handles storefront key/value settings.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore creates a new SettingStore with the given database connection.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get retrieves a setting by key.
func (s *SettingStore) Get(key string) (*models.Setting, error) {
	var st models.Setting
	err := s.db.QueryRow(`
		SELECT key, value, updated_at FROM settings WHERE key = $1
	`, key).Scan(&st.Key, &st.Value, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &st, nil
}

// List returns all settings ordered by key.
func (s *SettingStore) List() ([]*models.Setting, error) {
	rows, err := s.db.Query(`SELECT key, value, updated_at FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []*models.Setting
	for rows.Next() {
		var st models.Setting
		if err := rows.Scan(&st.Key, &st.Value, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, &st)
	}
	return settings, rows.Err()
}

// Set upserts a setting value.
func (s *SettingStore) Set(key, value string) (*models.Setting, error) {
	var st models.Setting
	err := s.db.QueryRow(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING key, value, updated_at
	`, key, value).Scan(&st.Key, &st.Value, &st.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("set setting: %w", err)
	}
	return &st, nil
}
