// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the Givewise API.

# Supported Databases

The server runs against PostgreSQL (production, github.com/lib/pq) or SQLite
(development and tests, modernc.org/sqlite). The two dialects share the same
tables; only the timestamp defaults differ, so CreateSchema picks the DDL by
database type.

# Placeholder Convention

All queries use $1..$N placeholders in strictly sequential order with no
reuse. lib/pq requires the $N form; SQLite treats $N as a named parameter
and assigns indexes in order of first occurrence, so sequential placeholders
bind positionally on both drivers.

# Key Constraints

The UNIQUE (campaign_id, member_id) constraint on the vote table is the
mechanism that prevents duplicate votes under concurrent submissions. It is
deliberately enforced at the storage layer, not only in application logic.
*/
package db
