// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Givewise API.

# Handler Types

Each handler is a struct created via a constructor:

  - CampaignHandler: campaign submission and public detail
  - DaoHandler: pending listings, vote submission, vote history, statistics
  - AdminHandler: administrator approve/reject of DAO-approved campaigns

# Governance Flow

Campaigns progress through two phases:

	POST /campaigns                       → governance record (pending/pending)
	POST /dao/campaigns/{id}/vote         → votes accumulate; quorum finalizes
	PUT  /admin/campaigns/{id}/approve    → administrator decision
	PUT  /admin/campaigns/{id}/reject       (dao_approved campaigns only)

DAO and admin operations require a Bearer session token; handlers read the
caller's identity from the request context (middleware.WithAuth). All
governance decisions are delegated to the governance.Coordinator; handlers
only translate HTTP to coordinator calls and typed errors to status codes.
*/
package handlers
