// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

CLI flags take precedence over environment variables. Secrets should be
supplied via environment (a .env file is loaded at startup) but flags are
accepted for development convenience.

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite path
  - JWT_SECRET (--jwt-secret): HMAC secret for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3442)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - NOTIFY_WEBHOOK_URL (--webhook-url): downstream notification endpoint
  - BASE_URL (--base-url): public base URL
*/
package cliparse
