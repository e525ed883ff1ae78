// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"shopadmin/internal/models"
)

// contentColumns lists all columns for content_versions SELECTs.
const contentColumns = `id, slug, version, type, status, title, blocks,
	published_at, scheduled_publish_at, created_by, updated_by, created_at, updated_at`

// uniqueViolation is the PostgreSQL error code raised when an INSERT loses
// the race on the (slug, version) unique index.
const uniqueViolation = "23505"

// ContentStore is the versioned content record store. Every edit of a
// content item is one immutable row keyed by (slug, version); the current
// record of a slug is derived as its maximum version at query time. There is
// deliberately no stored "current" flag — an earlier schema had one and it
// drifted from the true maximum under concurrent writes (see migration
// 00004).
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// scanContentVersion scans a single content_versions row.
func scanContentVersion(scanner interface{ Scan(...any) error }) (*models.ContentVersion, error) {
	var c models.ContentVersion
	err := scanner.Scan(
		&c.ID, &c.Slug, &c.Version, &c.Type, &c.Status, &c.Title, &c.Blocks,
		&c.PublishedAt, &c.ScheduledPublishAt, &c.CreatedBy, &c.UpdatedBy,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts version 1 of a new content item. The slug must never have
// been used before: any existing row for it, whatever its version or status,
// fails the insert with ErrDuplicateSlug. Creating directly in published
// status stamps published_at.
func (s *ContentStore) Create(c *models.ContentVersion) (*models.ContentVersion, error) {
	if c.Status == "" {
		c.Status = models.ContentStatusDraft
	}
	if c.Status == models.ContentStatusPublished && c.PublishedAt == nil {
		now := time.Now().UTC()
		c.PublishedAt = &now
	}
	blocks := c.Blocks
	if blocks == nil {
		blocks = json.RawMessage(`[]`)
	}

	// The NOT EXISTS guard checks the whole version history, not just a
	// current row. Two concurrent creates of the same slug can both pass
	// it; the (slug, version) unique index breaks that tie.
	row := s.db.QueryRow(`
		INSERT INTO content_versions
			(slug, version, type, status, title, blocks, published_at, created_by, updated_by)
		SELECT $1, 1, $2, $3, $4, $5, $6, $7, $7
		WHERE NOT EXISTS (
			SELECT 1 FROM content_versions WHERE slug = $1
		)
		RETURNING `+contentColumns,
		c.Slug, c.Type, c.Status, c.Title, []byte(blocks), c.PublishedAt, c.CreatedBy,
	)

	created, err := scanContentVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create content %q: %w", c.Slug, err)
	}
	return created, nil
}

// AppendInput carries the editable fields of a content edit. A nil Blocks
// keeps the prior version's payload.
type AppendInput struct {
	Title  string
	Blocks json.RawMessage
	Editor string
}

// Append creates version priorVersion+1 of a slug by copying the current row
// forward and applying the edited fields. Status and both publish timestamps
// are inherited unchanged — a published item stays published across edits.
//
// The insert is conditional on priorVersion still being the maximum version
// of the slug; if another editor advanced it first, no row matches and the
// call fails with ErrStaleVersion. Prior versions are never touched.
func (s *ContentStore) Append(slug string, priorVersion int, in AppendInput) (*models.ContentVersion, error) {
	row := s.db.QueryRow(`
		INSERT INTO content_versions
			(slug, version, type, status, title, blocks,
			 published_at, scheduled_publish_at, created_by, updated_by)
		SELECT cur.slug, cur.version + 1, cur.type, cur.status, $3,
		       COALESCE($4, cur.blocks),
		       cur.published_at, cur.scheduled_publish_at, $5, $5
		FROM content_versions cur
		WHERE cur.slug = $1 AND cur.version = $2
		  AND NOT EXISTS (
			SELECT 1 FROM content_versions newer
			WHERE newer.slug = cur.slug AND newer.version > cur.version
		  )
		RETURNING `+contentColumns,
		slug, priorVersion, in.Title, []byte(in.Blocks), in.Editor,
	)

	created, err := scanContentVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.staleOrMissing(slug)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Lost the insert race after passing the NOT EXISTS check.
			return nil, ErrStaleVersion
		}
		return nil, fmt.Errorf("append content %q v%d: %w", slug, priorVersion, err)
	}
	return created, nil
}

// ListVersions returns a page of a slug's history, newest version first,
// plus the total number of versions. A total of zero means the slug has
// never existed.
func (s *ContentStore) ListVersions(slug string, limit, offset int) ([]*models.ContentVersion, int, error) {
	var total int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM content_versions WHERE slug = $1
	`, slug).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count versions %q: %w", slug, err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	rows, err := s.db.Query(`
		SELECT `+contentColumns+`
		FROM content_versions
		WHERE slug = $1
		ORDER BY version DESC
		LIMIT $2 OFFSET $3
	`, slug, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list versions %q: %w", slug, err)
	}
	defer rows.Close()

	var versions []*models.ContentVersion
	for rows.Next() {
		v, err := scanContentVersion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, total, rows.Err()
}

// staleOrMissing disambiguates a zero-row conditional write: if the slug has
// no rows at all the caller gets ErrNotFound, otherwise the version it was
// holding is stale.
func (s *ContentStore) staleOrMissing(slug string) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM content_versions WHERE slug = $1)
	`, slug).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check slug %q: %w", slug, err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStaleVersion
}
