// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content_latest.go is the latest-version resolver: every notion of "the
// current record" in this file is computed from the version numbers at query
// time. Nothing here reads or writes a stored current marker.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopadmin/internal/models"
)

// ContentFilter narrows a latest-per-slug listing. Zero values mean "any".
// State filters on the derived publish state, so "scheduled" matches drafts
// with a pending publish time.
type ContentFilter struct {
	Type   models.ContentType
	State  models.PublishState
	Search string
}

// GetLatest returns the current record for a slug: the row with the maximum
// version number. Returns ErrNotFound if the slug has no rows.
func (s *ContentStore) GetLatest(slug string) (*models.ContentVersion, error) {
	row := s.db.QueryRow(`
		SELECT `+contentColumns+`
		FROM content_versions
		WHERE slug = $1
		ORDER BY version DESC
		LIMIT 1
	`, slug)

	cv, err := scanContentVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get latest %q: %w", slug, err)
	}
	return cv, nil
}

// GetLatestPublished returns the current record for a slug only if that
// record is published. The order matters: resolve the latest version first,
// then check its status. Checking status first could surface an old
// published version of a slug whose newest edit is a draft.
func (s *ContentStore) GetLatestPublished(slug string) (*models.ContentVersion, error) {
	cv, err := s.GetLatest(slug)
	if err != nil {
		return nil, err
	}
	if !cv.IsPublished() {
		return nil, ErrNotFound
	}
	return cv, nil
}

// ListLatest returns one record per slug — each slug's maximum version —
// filtered, sorted by updated_at descending, and paginated. The reduction to
// latest-per-slug happens before the filter is applied, so a status filter
// sees only current records, never historical ones.
func (s *ContentStore) ListLatest(f ContentFilter, limit, offset int) ([]*models.ContentVersion, int, error) {
	where, args := buildContentFilter(f)

	latestCTE := `
		WITH latest AS (
			SELECT DISTINCT ON (slug) ` + contentColumns + `
			FROM content_versions
			ORDER BY slug, version DESC
		)`

	var total int
	err := s.db.QueryRow(
		latestCTE+` SELECT COUNT(*) FROM latest `+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count latest content: %w", err)
	}

	args = append(args, limit, offset)
	rows, err := s.db.Query(
		latestCTE+`
		SELECT `+contentColumns+` FROM latest `+where+`
		ORDER BY updated_at DESC
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list latest content: %w", err)
	}
	defer rows.Close()

	var items []*models.ContentVersion
	for rows.Next() {
		cv, err := scanContentVersion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan latest content: %w", err)
		}
		items = append(items, cv)
	}
	return items, total, rows.Err()
}

// ListDueSchedules returns current records whose scheduled publish time has
// elapsed. The external publish cron feeds these slugs back into Publish;
// the store itself never promotes a schedule. The reduction to latest rows
// matters here too: an appended edit copies the pending schedule forward, so
// superseded rows may still carry one.
func (s *ContentStore) ListDueSchedules(now time.Time, limit int) ([]*models.ContentVersion, error) {
	rows, err := s.db.Query(`
		WITH latest AS (
			SELECT DISTINCT ON (slug) `+contentColumns+`
			FROM content_versions
			ORDER BY slug, version DESC
		)
		SELECT `+contentColumns+`
		FROM latest
		WHERE scheduled_publish_at IS NOT NULL AND scheduled_publish_at <= $1
		ORDER BY scheduled_publish_at ASC
		LIMIT $2
	`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list due schedules: %w", err)
	}
	defer rows.Close()

	var items []*models.ContentVersion
	for rows.Next() {
		cv, err := scanContentVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan due schedule: %w", err)
		}
		items = append(items, cv)
	}
	return items, rows.Err()
}

// buildContentFilter translates a ContentFilter into a WHERE clause and its
// positional args. Conditions apply to the already-reduced latest set.
func buildContentFilter(f ContentFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Type != "" {
		args = append(args, f.Type)
		conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
	}

	switch f.State {
	case models.StateDraft:
		conds = append(conds, "status = 'draft' AND scheduled_publish_at IS NULL")
	case models.StateScheduled:
		conds = append(conds, "status = 'draft' AND scheduled_publish_at IS NOT NULL")
	case models.StatePublished:
		conds = append(conds, "status = 'published'")
	}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR slug ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}
