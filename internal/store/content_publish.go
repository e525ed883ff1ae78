// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content_publish.go drives the publish state machine. Publish and unpublish
// mutate the current version's status fields in place — a pure status change
// never allocates a new version number. Only content edits (Append) do.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shopadmin/internal/models"
)

// Publish transitions a slug's current record per the requested publish
// time. A nil or elapsed publishAt publishes immediately; a future one
// records the schedule and leaves the record in draft until the external
// cron calls Publish again with no time.
//
// The UPDATE is keyed on the (slug, version) pair read just before it, so a
// concurrent Append makes this call fail with ErrStaleVersion instead of
// publishing a superseded version. Two status-only writes racing on the same
// version both match the predicate; the second simply wins. Extending the
// key with a revision counter would close that gap if it ever matters.
func (s *ContentStore) Publish(slug string, publishAt *time.Time, actor string) (*models.ContentVersion, error) {
	cur, err := s.GetLatest(slug)
	if err != nil {
		return nil, err
	}

	ch := models.PublishTransition(time.Now().UTC(), publishAt)
	return s.applyChange(cur, ch, actor)
}

// Unpublish takes a slug's current record back to plain draft, clearing the
// publish timestamp and any pending schedule. In place, no new version.
func (s *ContentStore) Unpublish(slug string, actor string) (*models.ContentVersion, error) {
	cur, err := s.GetLatest(slug)
	if err != nil {
		return nil, err
	}

	return s.applyChange(cur, models.UnpublishTransition(), actor)
}

// applyChange writes a publish transition onto the exact version that was
// read, failing with ErrStaleVersion if that version is no longer current.
func (s *ContentStore) applyChange(cur *models.ContentVersion, ch models.PublishChange, actor string) (*models.ContentVersion, error) {
	row := s.db.QueryRow(`
		UPDATE content_versions
		SET status = $3,
		    published_at = $4,
		    scheduled_publish_at = $5,
		    updated_by = $6,
		    updated_at = NOW()
		WHERE slug = $1 AND version = $2
		  AND NOT EXISTS (
			SELECT 1 FROM content_versions newer
			WHERE newer.slug = $1 AND newer.version > $2
		  )
		RETURNING `+contentColumns,
		cur.Slug, cur.Version, ch.Status, ch.PublishedAt, ch.ScheduledPublishAt, actor,
	)

	updated, err := scanContentVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, s.staleOrMissing(cur.Slug)
	}
	if err != nil {
		return nil, fmt.Errorf("publish change %q v%d: %w", cur.Slug, cur.Version, err)
	}
	return updated, nil
}
