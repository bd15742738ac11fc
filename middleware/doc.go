// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Middleware

  - WithLogging: request/response logging with timing
  - WithAuth: Bearer token validation; stores claims in the request context
  - CORS: cross-origin support for the web frontend

# Helpers

  - JSONResponse / ErrorResponse: consistent JSON output
  - ParseJSONBody: request body decoding
  - ClaimsFromContext: session claims accessor for handlers
  - GetClientIP: client IP extraction behind proxies
*/
package middleware
