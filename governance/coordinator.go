// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package governance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/givewise/models"
)

// submitMaxTries bounds retries of the transactional vote path on transient
// storage failures. Invariant violations are never retried.
const submitMaxTries = 3

// Event type names published to the notifier.
const (
	EventVoteAccepted      = "vote.accepted"
	EventCampaignFinalized = "campaign.finalized"
	EventAdminDecision     = "campaign.admin_decided"
)

// Notifier receives fire-and-forget governance events. Implementations must
// never block the caller.
type Notifier interface {
	Notify(eventType string, data any)
}

// VoteAcceptedEvent is the payload for EventVoteAccepted.
type VoteAcceptedEvent struct {
	Vote  models.Vote      `json:"vote"`
	Tally models.VoteTally `json:"tally"`
}

// CampaignFinalizedEvent is the payload for EventCampaignFinalized.
type CampaignFinalizedEvent struct {
	CampaignID        string           `json:"campaign_id"`
	DaoApprovalStatus string           `json:"dao_approval_status"`
	Tally             models.VoteTally `json:"tally"`
}

// AdminDecisionEvent is the payload for EventAdminDecision.
type AdminDecisionEvent struct {
	CampaignID      string  `json:"campaign_id"`
	ApprovalStatus  string  `json:"approval_status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// VoteOutcome is the result of an accepted vote: the recorded vote, the
// tally it produced, and the campaign's governance state after evaluation.
type VoteOutcome struct {
	Vote      models.Vote
	Tally     models.VoteTally
	Campaign  models.Campaign
	Finalized bool
}

// Coordinator orchestrates the vote path: eligibility, ledger append,
// tally, quorum evaluation, and the administrator phase.
type Coordinator struct {
	db       *sql.DB
	notifier Notifier
	metrics  *governanceMetrics
}

// NewCoordinator wires the coordinator. notifier may be nil (no fan-out);
// promRegistry may be nil (no metrics).
func NewCoordinator(db *sql.DB, notifier Notifier, promRegistry prometheus.Registerer) *Coordinator {
	c := &Coordinator{db: db, notifier: notifier}
	if promRegistry != nil {
		c.metrics = &governanceMetrics{}
		c.metrics.init(promRegistry)
	}
	return c
}

// SubmitVote validates eligibility, appends to the ledger, recomputes the
// tally, and evaluates the quorum rule, all as a single transaction.
//
// Typed governance errors surface unchanged. Transient storage failures are
// retried with backoff; on exhaustion the error wraps ErrUnavailable and the
// whole call is safe to retry (a duplicate retry surfaces ErrDuplicateVote
// without recording a second vote).
func (c *Coordinator) SubmitVote(ctx context.Context, campaignID, memberID, decision, reason string) (*VoteOutcome, error) {
	start := time.Now()

	if decision != models.DecisionApprove && decision != models.DecisionReject {
		return nil, ErrInvalidDecision
	}

	member, err := memberByID(ctx, c.db, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil || !IsEligibleVoter(*member) {
		return nil, ErrNotEligible
	}

	op := func() (*VoteOutcome, error) {
		outcome, err := c.submitOnce(ctx, campaignID, memberID, decision, reason)
		if err != nil {
			if isPermanent(err) {
				return nil, backoff.Permanent(err)
			}
			slog.Warn("vote transaction failed, retrying", "campaign_id", campaignID, "error", err)
			return nil, err
		}
		return outcome, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	outcome, err := backoff.Retry(ctx, op, backoff.WithBackOff(bo), backoff.WithMaxTries(submitMaxTries))
	if err != nil {
		if isPermanent(err) {
			c.countRejection(err)
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if c.metrics != nil {
		c.metrics.votesTotal.WithLabelValues(decision).Inc()
		c.metrics.submitLatency.Observe(time.Since(start).Seconds())
	}

	slog.Info("vote recorded",
		"campaign_id", campaignID,
		"member_id", memberID,
		"decision", decision,
		"total_votes", outcome.Tally.TotalVotes,
	)

	if c.notifier != nil {
		c.notifier.Notify(EventVoteAccepted, VoteAcceptedEvent{
			Vote:  outcome.Vote,
			Tally: outcome.Tally,
		})
	}

	if outcome.Finalized {
		if c.metrics != nil {
			c.metrics.finalizationsTotal.WithLabelValues(outcome.Campaign.DaoApprovalStatus).Inc()
		}
		slog.Info("campaign finalized",
			"campaign_id", campaignID,
			"dao_approval_status", outcome.Campaign.DaoApprovalStatus,
			"approval_rate", outcome.Tally.ApprovalRate,
		)
		if c.notifier != nil {
			c.notifier.Notify(EventCampaignFinalized, CampaignFinalizedEvent{
				CampaignID:        campaignID,
				DaoApprovalStatus: outcome.Campaign.DaoApprovalStatus,
				Tally:             outcome.Tally,
			})
		}
	}

	return outcome, nil
}

// submitOnce runs one attempt of the transactional vote path. The append
// happens-before the tally read used for this request's finalization
// decision because both run in the same transaction.
func (c *Coordinator) submitOnce(ctx context.Context, campaignID, memberID, decision, reason string) (*VoteOutcome, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var daoStatus string
	err = tx.QueryRowContext(ctx, `
		SELECT dao_approval_status FROM campaign WHERE id = $1
	`, campaignID).Scan(&daoStatus)
	if err == sql.ErrNoRows {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign: %w", err)
	}
	if daoStatus != models.DaoStatusPending {
		return nil, ErrVotingClosed
	}

	vote := models.Vote{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		MemberID:   memberID,
		Decision:   decision,
		CreatedAt:  time.Now(),
	}
	if reason != "" {
		vote.Reason = &reason
	}

	if err := appendVote(ctx, tx, vote); err != nil {
		return nil, err
	}
	if err := incrementCounters(ctx, tx, campaignID, decision); err != nil {
		return nil, err
	}

	tally, err := ComputeTally(ctx, tx, campaignID)
	if err != nil {
		return nil, err
	}

	_, finalized, err := evaluateQuorum(ctx, tx, campaignID, tally, time.Now())
	if err != nil {
		return nil, err
	}

	campaign, err := campaignByID(ctx, tx, campaignID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit vote transaction: %w", err)
	}

	return &VoteOutcome{
		Vote:      vote,
		Tally:     tally,
		Campaign:  *campaign,
		Finalized: finalized,
	}, nil
}

// VoteFor returns the recorded vote for (campaignID, memberID), or nil if
// the member has not voted. Used to show a retrying client its landed vote.
func (c *Coordinator) VoteFor(ctx context.Context, campaignID, memberID string) (*models.Vote, error) {
	return voteFor(ctx, c.db, campaignID, memberID)
}

// AdminApprove records the administrator approval of a DAO-approved campaign.
func (c *Coordinator) AdminApprove(ctx context.Context, campaignID string) (*models.Campaign, error) {
	return c.adminDecision(ctx, campaignID, models.StatusApproved, nil)
}

// AdminReject records the administrator rejection of a DAO-approved
// campaign. A non-empty reason is required.
func (c *Coordinator) AdminReject(ctx context.Context, campaignID, reason string) (*models.Campaign, error) {
	if reason == "" {
		return nil, ErrMissingRejectionReason
	}
	return c.adminDecision(ctx, campaignID, models.StatusRejected, &reason)
}

func (c *Coordinator) adminDecision(ctx context.Context, campaignID, newStatus string, reason *string) (*models.Campaign, error) {
	if err := adminDecide(ctx, c.db, campaignID, newStatus, reason); err != nil {
		return nil, err
	}

	campaign, err := campaignByID(ctx, c.db, campaignID)
	if err != nil {
		return nil, err
	}

	if c.metrics != nil {
		c.metrics.adminDecisions.WithLabelValues(newStatus).Inc()
	}
	slog.Info("admin decision recorded", "campaign_id", campaignID, "approval_status", newStatus)

	if c.notifier != nil {
		c.notifier.Notify(EventAdminDecision, AdminDecisionEvent{
			CampaignID:      campaignID,
			ApprovalStatus:  newStatus,
			RejectionReason: reason,
		})
	}

	return campaign, nil
}

func (c *Coordinator) countRejection(err error) {
	if c.metrics == nil {
		return
	}
	switch {
	case errors.Is(err, ErrDuplicateVote):
		c.metrics.duplicateVotes.Inc()
	case errors.Is(err, ErrVotingClosed):
		c.metrics.votingClosed.Inc()
	}
}
