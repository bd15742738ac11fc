// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package governance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/givewise/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx so ledger reads can run
// inside or outside the vote transaction.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// appendVote records a vote in the ledger. The insert is gated on the
// campaign still accepting votes so a finalization committed by a concurrent
// request turns this into a no-op instead of a late write.
//
// The UNIQUE (campaign_id, member_id) constraint is what makes the
// check-and-insert atomic against concurrent duplicates; it surfaces here as
// ErrDuplicateVote. A zero-row insert means voting closed underneath us.
func appendVote(ctx context.Context, tx *sql.Tx, v models.Vote) error {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO vote (id, campaign_id, member_id, decision, reason, created_at)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE EXISTS (
			SELECT 1 FROM campaign WHERE id = $7 AND dao_approval_status = $8
		)
	`, v.ID, v.CampaignID, v.MemberID, v.Decision, v.Reason, v.CreatedAt,
		v.CampaignID, models.DaoStatusPending)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateVote
		}
		return fmt.Errorf("failed to append vote: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrVotingClosed
	}

	return nil
}

// voteFor returns the ledger record for (campaignID, memberID), or nil if
// the member has not voted on the campaign.
func voteFor(ctx context.Context, q querier, campaignID, memberID string) (*models.Vote, error) {
	var v models.Vote
	err := q.QueryRowContext(ctx, `
		SELECT id, campaign_id, member_id, decision, reason, created_at
		FROM vote
		WHERE campaign_id = $1 AND member_id = $2
	`, campaignID, memberID).Scan(
		&v.ID, &v.CampaignID, &v.MemberID, &v.Decision, &v.Reason, &v.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query vote: %w", err)
	}
	return &v, nil
}
