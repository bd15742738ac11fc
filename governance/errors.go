// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package governance

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

var (
	// ErrNotEligible means the caller is not an active DAO member.
	ErrNotEligible = errors.New("caller is not an active DAO member")

	// ErrDuplicateVote means the member already voted on this campaign.
	ErrDuplicateVote = errors.New("member already voted on this campaign")

	// ErrVotingClosed means the campaign's DAO approval status is no longer pending.
	ErrVotingClosed = errors.New("voting has closed for this campaign")

	// ErrInvalidDecision means the decision is not approve or reject.
	ErrInvalidDecision = errors.New("decision must be approve or reject")

	// ErrNotReadyForAdmin means an administrator action was attempted before
	// the campaign reached dao_approved, or after the admin phase concluded.
	ErrNotReadyForAdmin = errors.New("campaign is not awaiting administrator action")

	// ErrMissingRejectionReason means an admin rejection lacked a reason.
	ErrMissingRejectionReason = errors.New("rejection reason is required")

	// ErrCampaignNotFound means the campaign does not exist.
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrUnavailable means storage retries were exhausted; the whole call is
	// safe to retry per the idempotence contract.
	ErrUnavailable = errors.New("storage temporarily unavailable")
)

// isUniqueViolation reports whether err is a unique-constraint violation
// from either supported driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isPermanent reports whether err is an invariant violation that must not be
// retried, as opposed to a transient storage fault.
func isPermanent(err error) bool {
	return errors.Is(err, ErrDuplicateVote) ||
		errors.Is(err, ErrVotingClosed) ||
		errors.Is(err, ErrCampaignNotFound)
}
