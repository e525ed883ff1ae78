// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all shopadmin
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods. Failures callers are expected to branch on are sentinel errors;
// everything else is wrapped I/O and surfaces as a 5xx upstream.
package store

import "errors"

var (
	// ErrNotFound means the requested record (or slug) has no rows at all.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateSlug means content creation collided with an existing
	// slug. Any historical version counts: a slug that was ever used is
	// taken forever, even if its item was unpublished long ago.
	ErrDuplicateSlug = errors.New("slug already in use")

	// ErrStaleVersion means a mutation was keyed on a version that is no
	// longer the current maximum for its slug. The caller must re-read and
	// retry (or surface the conflict); the store never retries on its own.
	ErrStaleVersion = errors.New("version is no longer current")
)
