// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - draft: one JSON payload per station/constituency storage key
  - submission_guard: per-key "already submitted on this device" flag
  - device: single-row stable device identity

# Portability

The default medium is a local sqlite file (modernc.org/sqlite); postgres
(lib/pq) is supported for shared deployments. The DDL and all queries stay in
the subset both engines accept: $N placeholders, TEXT payloads, timestamps
written from Go rather than database defaults.

# Guard Independence

submission_guard has no foreign key to draft. Deleting or corrupting a draft
must never clear the at-most-once submission flag for its key.
*/
package db
