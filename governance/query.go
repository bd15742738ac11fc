// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package governance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/givewise/models"
)

// DefaultPageLimit caps page sizes for the read-only projections.
const DefaultPageLimit = 20

// campaignByID reads a full campaign row, inside or outside a transaction.
func campaignByID(ctx context.Context, q querier, campaignID string) (*models.Campaign, error) {
	var c models.Campaign
	err := q.QueryRowContext(ctx, `
		SELECT id, title, description, charity_id, goal_amount,
		       approval_status, dao_approval_status, rejection_reason,
		       finalized_at, created_at
		FROM campaign
		WHERE id = $1
	`, campaignID).Scan(
		&c.ID, &c.Title, &c.Description, &c.CharityID, &c.GoalAmount,
		&c.ApprovalStatus, &c.DaoApprovalStatus, &c.RejectionReason,
		&c.FinalizedAt, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query campaign: %w", err)
	}
	return &c, nil
}

// Campaign returns a campaign with its current tally recounted from the
// ledger.
func (c *Coordinator) Campaign(ctx context.Context, campaignID string) (*models.Campaign, models.VoteTally, error) {
	campaign, err := campaignByID(ctx, c.db, campaignID)
	if err != nil {
		return nil, models.VoteTally{}, err
	}
	tally, err := ComputeTally(ctx, c.db, campaignID)
	if err != nil {
		return nil, models.VoteTally{}, err
	}
	return campaign, tally, nil
}

// ListPendingForVoting returns campaigns still awaiting quorum that the
// member has not yet voted on, newest first. Tallies come from the
// maintained counters; listings are not decision-making reads.
func (c *Coordinator) ListPendingForVoting(ctx context.Context, memberID string, page, limit int) ([]models.PendingCampaign, error) {
	page, limit = clampPage(page, limit)

	rows, err := c.db.QueryContext(ctx, `
		SELECT c.id, c.title, c.description, c.charity_id, c.goal_amount,
		       c.approval_status, c.dao_approval_status, c.rejection_reason,
		       c.finalized_at, c.created_at,
		       c.total_votes, c.approve_votes, c.reject_votes
		FROM campaign c
		WHERE c.dao_approval_status = $1
		  AND NOT EXISTS (
		      SELECT 1 FROM vote v WHERE v.campaign_id = c.id AND v.member_id = $2
		  )
		ORDER BY c.created_at DESC
		LIMIT $3 OFFSET $4
	`, models.DaoStatusPending, memberID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []models.PendingCampaign{}
	for rows.Next() {
		var pc models.PendingCampaign
		cam := &pc.Campaign
		if err := rows.Scan(
			&cam.ID, &cam.Title, &cam.Description, &cam.CharityID, &cam.GoalAmount,
			&cam.ApprovalStatus, &cam.DaoApprovalStatus, &cam.RejectionReason,
			&cam.FinalizedAt, &cam.CreatedAt,
			&pc.Tally.TotalVotes, &pc.Tally.ApproveVotes, &pc.Tally.RejectVotes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		if pc.Tally.TotalVotes > 0 {
			pc.Tally.ApprovalRate = float64(pc.Tally.ApproveVotes) / float64(pc.Tally.TotalVotes)
		}
		pc.VotesNeeded = Quorum - pc.Tally.TotalVotes
		if pc.VotesNeeded < 0 {
			pc.VotesNeeded = 0
		}
		pc.GoalAmountDisplay = humanize.Comma(cam.GoalAmount)
		campaigns = append(campaigns, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaigns: %w", err)
	}

	return campaigns, nil
}

// MyVotes returns the member's ledger records joined with campaign
// summaries, newest first.
func (c *Coordinator) MyVotes(ctx context.Context, memberID string, page, limit int) ([]models.VoteHistoryEntry, error) {
	page, limit = clampPage(page, limit)

	rows, err := c.db.QueryContext(ctx, `
		SELECT v.id, v.campaign_id, v.member_id, v.decision, v.reason, v.created_at,
		       c.title, c.dao_approval_status, c.approval_status
		FROM vote v
		JOIN campaign c ON v.campaign_id = c.id
		WHERE v.member_id = $1
		ORDER BY v.created_at DESC
		LIMIT $2 OFFSET $3
	`, memberID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	defer rows.Close()

	entries := []models.VoteHistoryEntry{}
	for rows.Next() {
		var e models.VoteHistoryEntry
		if err := rows.Scan(
			&e.Vote.ID, &e.Vote.CampaignID, &e.Vote.MemberID,
			&e.Vote.Decision, &e.Vote.Reason, &e.Vote.CreatedAt,
			&e.CampaignTitle, &e.DaoApprovalStatus, &e.ApprovalStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate votes: %w", err)
	}

	return entries, nil
}

// GlobalStatistics aggregates participation and approval metrics across the
// whole DAO.
func (c *Coordinator) GlobalStatistics(ctx context.Context) (*models.GlobalStatistics, error) {
	var stats models.GlobalStatistics

	rows, err := c.db.QueryContext(ctx, `
		SELECT dao_approval_status, COUNT(*) FROM campaign GROUP BY dao_approval_status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan campaign count: %w", err)
		}
		switch status {
		case models.DaoStatusPending:
			stats.PendingCampaigns = count
		case models.DaoStatusApproved:
			stats.DaoApproved = count
		case models.DaoStatusRejected:
			stats.DaoRejected = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate campaign counts: %w", err)
	}

	err = c.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN decision = 'approve' THEN 1 ELSE 0 END), 0)
		FROM vote
	`).Scan(&stats.TotalVotes, &stats.ApproveVotes)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	stats.RejectVotes = stats.TotalVotes - stats.ApproveVotes
	if stats.TotalVotes > 0 {
		stats.ApprovalRate = float64(stats.ApproveVotes) / float64(stats.TotalVotes)
	}

	var distinctVoters int
	err = c.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM dao_member WHERE status = $1
	`, models.MemberStatusActive).Scan(&stats.ActiveMembers)
	if err != nil {
		return nil, fmt.Errorf("failed to count active members: %w", err)
	}
	err = c.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT member_id) FROM vote
	`).Scan(&distinctVoters)
	if err != nil {
		return nil, fmt.Errorf("failed to count distinct voters: %w", err)
	}
	if stats.ActiveMembers > 0 {
		stats.ParticipationRate = float64(distinctVoters) / float64(stats.ActiveMembers)
	}

	return &stats, nil
}

// MemberStatistics aggregates one member's voting record.
func (c *Coordinator) MemberStatistics(ctx context.Context, memberID string) (*models.MemberStatistics, error) {
	stats := models.MemberStatistics{MemberID: memberID}

	err := c.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN decision = 'approve' THEN 1 ELSE 0 END), 0)
		FROM vote
		WHERE member_id = $1
	`, memberID).Scan(&stats.TotalVotes, &stats.ApproveVotes)
	if err != nil {
		return nil, fmt.Errorf("failed to count member votes: %w", err)
	}
	stats.RejectVotes = stats.TotalVotes - stats.ApproveVotes
	if stats.TotalVotes > 0 {
		stats.ApprovalRate = float64(stats.ApproveVotes) / float64(stats.TotalVotes)
	}

	var totalCampaigns int
	err = c.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM campaign
	`).Scan(&totalCampaigns)
	if err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}
	if totalCampaigns > 0 {
		stats.ParticipationRate = float64(stats.TotalVotes) / float64(totalCampaigns)
	}

	return &stats, nil
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > DefaultPageLimit {
		limit = DefaultPageLimit
	}
	return page, limit
}
