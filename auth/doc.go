// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth handles session token generation and validation.

Tokens are HS256-signed JWTs carrying the user ID and role. The
authentication workflow itself (login, member registration) is an external
service; this package only verifies tokens it issued and extracts identity.

Voting eligibility is not decided here. The token role gates admin-only
routes, but whether a member may vote is always resolved against the
dao_member table by the governance coordinator.
*/
package auth
