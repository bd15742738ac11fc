// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/givewise/auth"
	"github.com/danielhkuo/givewise/cliparse"
	"github.com/danielhkuo/givewise/db"
	"github.com/danielhkuo/givewise/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each call gets its own database; it lives as long as the
// connection pool holds its single connection open.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:testdb-" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// SQLite allows a single writer; a one-connection pool serializes
	// transactions instead of surfacing SQLITE_BUSY, and keeps the
	// in-memory database alive between queries.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3442,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
	}
}

// CreateTestMember inserts a DAO member row and returns the user ID.
func CreateTestMember(t *testing.T, conn *sql.DB, userID, status string) string {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO dao_member (user_id, display_name, role, status, joined_at)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, "Member "+userID, models.RoleDaoMember, status, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	return userID
}

// CreateTestCampaign inserts a campaign with the given DAO approval status
// and returns its ID. approval_status follows the state machine: rejected
// for dao_rejected, pending otherwise.
func CreateTestCampaign(t *testing.T, conn *sql.DB, daoStatus string) string {
	t.Helper()

	campaignID := uuid.NewString()
	approvalStatus := models.StatusPending
	if daoStatus == models.DaoStatusRejected {
		approvalStatus = models.StatusRejected
	}

	_, err := conn.Exec(`
		INSERT INTO campaign (id, title, description, charity_id, goal_amount, approval_status, dao_approval_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, campaignID, "Test Campaign", "A test campaign", "charity-1", int64(500000),
		approvalStatus, daoStatus, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test campaign: %v", err)
	}

	return campaignID
}

// CastTestVote inserts a ledger record directly, bypassing the coordinator,
// and keeps the campaign counters in sync.
func CastTestVote(t *testing.T, conn *sql.DB, campaignID, memberID, decision string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (id, campaign_id, member_id, decision, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), campaignID, memberID, decision, time.Now())
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}

	approveInc, rejectInc := 0, 1
	if decision == models.DecisionApprove {
		approveInc, rejectInc = 1, 0
	}
	_, err = conn.Exec(`
		UPDATE campaign
		SET total_votes = total_votes + 1,
		    approve_votes = approve_votes + $1,
		    reject_votes = reject_votes + $2
		WHERE id = $3
	`, approveInc, rejectInc, campaignID)
	if err != nil {
		t.Fatalf("Failed to update test counters: %v", err)
	}
}

// MemberToken issues a session token for a DAO member.
func MemberToken(t *testing.T, cfg cliparse.Config, userID string) string {
	t.Helper()

	token, err := auth.GenerateToken(cfg.JWTSecret, userID, models.RoleDaoMember, auth.DefaultTokenTTL)
	if err != nil {
		t.Fatalf("Failed to generate member token: %v", err)
	}
	return token
}

// AdminToken issues a session token with the admin role.
func AdminToken(t *testing.T, cfg cliparse.Config, userID string) string {
	t.Helper()

	token, err := auth.GenerateToken(cfg.JWTSecret, userID, models.RoleAdmin, auth.DefaultTokenTTL)
	if err != nil {
		t.Fatalf("Failed to generate admin token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
