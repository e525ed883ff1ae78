// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ContentType categorizes a content item. The content store treats it as an
// opaque filter key; the admin UI decides what each type means.
type ContentType string

const (
	ContentTypePage    ContentType = "page"
	ContentTypeBlog    ContentType = "blog"
	ContentTypeProduct ContentType = "product"
)

// ContentStatus is the persisted publishing status of a content version.
// Scheduling is not a distinct status: a scheduled item is a draft with
// ScheduledPublishAt set. See PublishState for the derived three-way state.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// PublishState is the logical publishing state derived from the status field
// plus the two optional timestamps.
type PublishState string

const (
	StateDraft     PublishState = "draft"
	StateScheduled PublishState = "scheduled"
	StatePublished PublishState = "published"
)

// ContentVersion is one edit of one content item. A content item (identified
// by its slug) is the set of all versions sharing that slug; the current
// record is the one with the highest version number — derived at query time,
// never stored as a flag.
//
// Version numbers start at 1 and only ever increase. Content edits append a
// new version; publish and unpublish mutate the current version in place.
type ContentVersion struct {
	ID                 uuid.UUID       `json:"id"`
	Slug               string          `json:"slug"`
	Version            int             `json:"version"`
	Type               ContentType     `json:"type"`
	Status             ContentStatus   `json:"status"`
	Title              string          `json:"title"`
	Blocks             json.RawMessage `json:"blocks"`
	PublishedAt        *time.Time      `json:"published_at,omitempty"`
	ScheduledPublishAt *time.Time      `json:"scheduled_publish_at,omitempty"`
	CreatedBy          string          `json:"created_by"`
	UpdatedBy          string          `json:"updated_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// State returns the derived publishing state of this version.
func (c *ContentVersion) State() PublishState {
	if c.Status == ContentStatusPublished {
		return StatePublished
	}
	if c.ScheduledPublishAt != nil {
		return StateScheduled
	}
	return StateDraft
}

// IsPublished returns true if the version is in published status.
func (c *ContentVersion) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

// PublishChange is the set of fields a publish or unpublish transition writes
// onto the current version. PublishedAt and ScheduledPublishAt are mutually
// exclusive: at most one is non-nil.
type PublishChange struct {
	Status             ContentStatus
	PublishedAt        *time.Time
	ScheduledPublishAt *time.Time
}

// PublishTransition computes the field changes for a publish request.
// A nil or non-future publishAt publishes immediately; a future publishAt
// leaves the item in draft with the publish time recorded (scheduled state).
// The version number is never changed by a publish.
func PublishTransition(now time.Time, publishAt *time.Time) PublishChange {
	if publishAt != nil && publishAt.After(now) {
		return PublishChange{
			Status:             ContentStatusDraft,
			ScheduledPublishAt: publishAt,
		}
	}
	return PublishChange{
		Status:      ContentStatusPublished,
		PublishedAt: &now,
	}
}

// UnpublishTransition computes the field changes for an unpublish request:
// back to draft, both timestamps cleared.
func UnpublishTransition() PublishChange {
	return PublishChange{Status: ContentStatusDraft}
}
