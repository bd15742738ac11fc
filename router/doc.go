// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes for the Givewise API using Go 1.22+
method/pattern routing.

Public routes: health check, metrics, campaign detail. Everything under
/dao and /admin requires a Bearer session token; the admin role is checked
inside the admin handlers.
*/
package router
