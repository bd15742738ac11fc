// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types shared across the Givewise API.

# Governance Model

A campaign carries two independent status fields:

  - dao_approval_status: pending → dao_approved | dao_rejected (quorum vote)
  - approval_status: pending → approved | rejected (administrator decision)

The DAO phase finalizes once, when the quorum of votes is reached. The
administrator phase only opens after dao_approved; dao_rejected is terminal
and sets approval_status to rejected with no administrator step.

# Votes

A vote is immutable and unique per (campaign_id, member_id). There is no
update or delete path; the ledger is append-only.

# Tallies

VoteTally is always derived from the vote ledger. The campaign row keeps
counter columns for cheap listings, but any decision-making read recounts
from the ledger inside the same transaction.
*/
package models
