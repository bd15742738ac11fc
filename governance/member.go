// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package governance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/givewise/models"
)

// IsEligibleVoter is the single eligibility predicate for casting votes.
// Role and status checks live here and nowhere else.
func IsEligibleVoter(m models.DaoMember) bool {
	return m.Role == models.RoleDaoMember && m.Status == models.MemberStatusActive
}

// memberByID looks up a DAO member row. Membership is managed by an external
// registration workflow; this engine only reads it.
func memberByID(ctx context.Context, q querier, userID string) (*models.DaoMember, error) {
	var m models.DaoMember
	err := q.QueryRowContext(ctx, `
		SELECT user_id, display_name, role, status, joined_at
		FROM dao_member
		WHERE user_id = $1
	`, userID).Scan(&m.UserID, &m.DisplayName, &m.Role, &m.Status, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dao member: %w", err)
	}
	return &m, nil
}
