// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package governance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/givewise/models"
)

// Quorum is the fixed minimum vote count required before a governance
// decision finalizes.
const Quorum = 5

// approvalThreshold: strictly more than half the votes must approve.
const approvalThreshold = 0.5

// evaluateQuorum applies the quorum transition rule inside the caller's
// transaction. It returns the DAO approval status after evaluation and
// whether this call performed the finalization.
//
// The status write is conditional on the campaign still being pending, so
// when two votes cross the threshold concurrently only one caller's write
// takes effect; the loser observes zero rows and reports the winner's status.
// Finalizing to dao_rejected also sets approval_status to rejected: that
// branch is terminal with no administrator step.
func evaluateQuorum(ctx context.Context, tx *sql.Tx, campaignID string, tally models.VoteTally, now time.Time) (string, bool, error) {
	if tally.TotalVotes < Quorum {
		return models.DaoStatusPending, false, nil
	}

	daoStatus := models.DaoStatusRejected
	approvalStatus := models.StatusRejected
	if tally.ApprovalRate > approvalThreshold {
		daoStatus = models.DaoStatusApproved
		approvalStatus = models.StatusPending
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE campaign
		SET dao_approval_status = $1, approval_status = $2, finalized_at = $3
		WHERE id = $4 AND dao_approval_status = $5
	`, daoStatus, approvalStatus, now, campaignID, models.DaoStatusPending)
	if err != nil {
		return "", false, fmt.Errorf("failed to finalize campaign: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		// A concurrent request finalized first; report its outcome.
		var current string
		err := tx.QueryRowContext(ctx, `
			SELECT dao_approval_status FROM campaign WHERE id = $1
		`, campaignID).Scan(&current)
		if err != nil {
			return "", false, fmt.Errorf("failed to read campaign status: %w", err)
		}
		return current, false, nil
	}

	return daoStatus, true, nil
}

// adminDecide records the administrator decision for a DAO-approved
// campaign. The update is conditional on the campaign being exactly in the
// dao_approved/pending state, which makes the admin step idempotent and
// rejects out-of-order administration in one statement.
func adminDecide(ctx context.Context, db *sql.DB, campaignID, newStatus string, rejectionReason *string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE campaign
		SET approval_status = $1, rejection_reason = $2
		WHERE id = $3 AND dao_approval_status = $4 AND approval_status = $5
	`, newStatus, rejectionReason, campaignID, models.DaoStatusApproved, models.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to record admin decision: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		// Distinguish a missing campaign from one in the wrong state.
		var exists bool
		err := db.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM campaign WHERE id = $1)
		`, campaignID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to query campaign: %w", err)
		}
		if !exists {
			return ErrCampaignNotFound
		}
		return ErrNotReadyForAdmin
	}

	return nil
}
