// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the fieldtally agent.

fieldtally is an election results capture agent for polling-station and
constituency agents: it holds an in-progress results draft (Form 34A per
station, Form 34B per constituency) in a local database, merges OCR reads of
the photographed paper form into the draft, validates the numeric ledger, and
submits the finalized results at most once per device.

# Starting the Agent

The agent requires environment variables or CLI flags for configuration:

	OCR_URL=https://... SUBMIT_URL=https://... AGENT_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 4034 -ocr "https://..." -submit "https://..."

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - OCR_URL (-ocr): OCR recognition service URL
  - SUBMIT_URL (-submit): results submission endpoint URL
  - AGENT_KEY_SALT (--agent-salt): secret for agent key HMAC

Optional settings:

  - PORT (-p): server port (default: 4034)
  - DATABASE_URL (-d): sqlite file path or postgres URL (default: fieldtally.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CANDIDATES_URL (-candidates): candidate source URL for the proxy endpoint

# Architecture

The agent uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (drafts, OCR upload, submission)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain, request/response, and external-schema types
  - normalize: candidate name canonicalization
  - tally: draft constructors, totals calculator, validator
  - reconcile: OCR merge and image type gate
  - store: draft persistence and the submission guard
  - remote: HTTP clients for the three collaborators
  - engine: the fresh → drafted → submitted state machine
  - auth: agent key generation and validation
  - db: schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
