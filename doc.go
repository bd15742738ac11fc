// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Givewise API server.

Givewise is a charity donation platform; this server implements its DAO
campaign governance engine: submitted campaigns are gated by a quorum vote
among DAO members before an administrator makes them publicly live.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3442 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path
  - JWT_SECRET (--jwt-secret): Secret for session token signing

Optional settings:

  - PORT (-p): Server port (default: 3442)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - NOTIFY_WEBHOOK_URL (--webhook-url): downstream notification endpoint

# Architecture

The server uses a handler-based architecture with dependency injection:

  - governance: vote ledger, tally, state machine, coordinator
  - handlers: HTTP request handlers (campaigns, dao, admin)
  - router: Route definitions using Go 1.22+ routing
  - notify: fire-and-forget event fan-out (channel + webhook subscribers)
  - middleware: auth, CORS, logging, JSON helpers
  - models: request/response and domain types
  - auth: session token generation and validation
  - db: schema creation for PostgreSQL and SQLite
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
