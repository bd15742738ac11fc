// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// dbType is "postgres" or "sqlite"; the DDL differs only in timestamp defaults.
func CreateSchema(db *sql.DB, dbType string) error {
	schema := postgresSchema
	if dbType == "sqlite" {
		schema = sqliteSchema
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Campaigns (governance record created once at submission)
CREATE TABLE IF NOT EXISTS campaign (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    charity_id TEXT NOT NULL,
    goal_amount BIGINT NOT NULL DEFAULT 0,
    approval_status TEXT NOT NULL DEFAULT 'pending' CHECK (approval_status IN ('pending', 'approved', 'rejected')),
    dao_approval_status TEXT NOT NULL DEFAULT 'pending' CHECK (dao_approval_status IN ('pending', 'dao_approved', 'dao_rejected')),
    total_votes INTEGER NOT NULL DEFAULT 0,
    approve_votes INTEGER NOT NULL DEFAULT 0,
    reject_votes INTEGER NOT NULL DEFAULT 0,
    rejection_reason TEXT,
    finalized_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_campaign_dao_status ON campaign(dao_approval_status);
CREATE INDEX IF NOT EXISTS idx_campaign_created_at ON campaign(created_at);

-- Vote ledger (append-only; uniqueness enforced at the storage layer)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    campaign_id TEXT NOT NULL REFERENCES campaign(id),
    member_id TEXT NOT NULL,
    decision TEXT NOT NULL CHECK (decision IN ('approve', 'reject')),
    reason TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (campaign_id, member_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_campaign_id ON vote(campaign_id);
CREATE INDEX IF NOT EXISTS idx_vote_member_id ON vote(member_id);

-- DAO members (managed by an external registration workflow; read-only here)
CREATE TABLE IF NOT EXISTS dao_member (
    user_id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'dao_member',
    status TEXT NOT NULL DEFAULT 'pending_approval' CHECK (status IN ('active', 'pending_approval', 'inactive')),
    joined_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_dao_member_status ON dao_member(status);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS campaign (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    charity_id TEXT NOT NULL,
    goal_amount BIGINT NOT NULL DEFAULT 0,
    approval_status TEXT NOT NULL DEFAULT 'pending' CHECK (approval_status IN ('pending', 'approved', 'rejected')),
    dao_approval_status TEXT NOT NULL DEFAULT 'pending' CHECK (dao_approval_status IN ('pending', 'dao_approved', 'dao_rejected')),
    total_votes INTEGER NOT NULL DEFAULT 0,
    approve_votes INTEGER NOT NULL DEFAULT 0,
    reject_votes INTEGER NOT NULL DEFAULT 0,
    rejection_reason TEXT,
    finalized_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_campaign_dao_status ON campaign(dao_approval_status);
CREATE INDEX IF NOT EXISTS idx_campaign_created_at ON campaign(created_at);

CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    campaign_id TEXT NOT NULL REFERENCES campaign(id),
    member_id TEXT NOT NULL,
    decision TEXT NOT NULL CHECK (decision IN ('approve', 'reject')),
    reason TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (campaign_id, member_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_campaign_id ON vote(campaign_id);
CREATE INDEX IF NOT EXISTS idx_vote_member_id ON vote(member_id);

CREATE TABLE IF NOT EXISTS dao_member (
    user_id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'dao_member',
    status TEXT NOT NULL DEFAULT 'pending_approval' CHECK (status IN ('active', 'pending_approval', 'inactive')),
    joined_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_dao_member_status ON dao_member(status);
`
