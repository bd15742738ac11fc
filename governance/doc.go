// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package governance implements the DAO campaign voting engine: the vote
ledger, the derived tally, the campaign state machine, and the coordinator
that ties them together.

# Vote Path

SubmitVote runs the whole sequence as one transaction:

	eligibility check → ledger append → counter update → tally recount
	→ quorum evaluation → commit

The ledger append is a conditional insert gated on the campaign still
accepting votes, and the UNIQUE (campaign_id, member_id) constraint makes
duplicate detection atomic against concurrent submissions. Because the
append and the tally recount share a transaction, the finalization decision
is always based on a snapshot that includes the triggering vote.

# Exactly-Once Finalization

Quorum evaluation writes the new status with a conditional UPDATE ("only if
still pending"). When two votes cross the threshold concurrently, exactly
one writer's transition takes effect; the other observes zero rows affected
and becomes a no-op. dao_rejected is terminal: it sets approval_status to
rejected in the same write, with no administrator step.

# Administrator Phase

AdminApprove and AdminReject are valid only while the campaign is
dao_approved with approval_status pending, enforced by a single conditional
UPDATE. Rejection requires a non-empty reason.

# Failures

Governance errors (duplicate vote, voting closed, not eligible, ...) are
invariant violations: they surface immediately and are never retried.
Transient storage failures are retried a bounded number of times with
exponential backoff; exhaustion surfaces ErrUnavailable, and the caller may
safely retry the whole call.

# Query Surface

ListPendingForVoting, MyVotes, Campaign, GlobalStatistics and
MemberStatistics are read-only projections over the ledger and campaign
state. They never mutate.
*/
package governance
