// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package governance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/givewise/models"
)

// ComputeTally recounts a campaign's tally from the vote ledger. When called
// with the vote transaction it sees that transaction's own append, which is
// the snapshot the finalization decision must be based on.
func ComputeTally(ctx context.Context, q querier, campaignID string) (models.VoteTally, error) {
	var tally models.VoteTally
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN decision = 'approve' THEN 1 ELSE 0 END), 0)
		FROM vote
		WHERE campaign_id = $1
	`, campaignID).Scan(&tally.TotalVotes, &tally.ApproveVotes)
	if err != nil {
		return models.VoteTally{}, fmt.Errorf("failed to compute tally: %w", err)
	}

	tally.RejectVotes = tally.TotalVotes - tally.ApproveVotes
	if tally.TotalVotes > 0 {
		tally.ApprovalRate = float64(tally.ApproveVotes) / float64(tally.TotalVotes)
	}

	return tally, nil
}

// incrementCounters maintains the campaign row's denormalized counters in
// the same transaction as the ledger append. Listings read these; any
// decision-making read recounts via ComputeTally instead.
func incrementCounters(ctx context.Context, tx *sql.Tx, campaignID, decision string) error {
	approveInc, rejectInc := 0, 1
	if decision == models.DecisionApprove {
		approveInc, rejectInc = 1, 0
	}

	_, err := tx.ExecContext(ctx, `
		UPDATE campaign
		SET total_votes = total_votes + 1,
		    approve_votes = approve_votes + $1,
		    reject_votes = reject_votes + $2
		WHERE id = $3
	`, approveInc, rejectInc, campaignID)
	if err != nil {
		return fmt.Errorf("failed to update vote counters: %w", err)
	}

	return nil
}
