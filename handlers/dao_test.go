// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/givewise/governance"
	"github.com/danielhkuo/givewise/handlers"
	"github.com/danielhkuo/givewise/middleware"
	"github.com/danielhkuo/givewise/models"
	"github.com/danielhkuo/givewise/testutil"
)

// serveAuthed runs a handler behind the auth middleware, the way the router
// wires it.
func serveAuthed(t *testing.T, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	cfg := testutil.GetTestConfig()
	w := httptest.NewRecorder()
	middleware.WithAuth(cfg.JWTSecret, h)(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestSubmitVoteEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	coord := governance.NewCoordinator(conn, nil, nil)
	handler := handlers.NewDaoHandler(coord)

	testutil.CreateTestMember(t, conn, "alice", models.MemberStatusActive)
	campaignID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)

	req := testutil.MakeRequest("POST", "/dao/campaigns/"+campaignID+"/vote",
		models.SubmitVoteRequest{Decision: models.DecisionApprove, Reason: "worthwhile"},
		bearer(testutil.MemberToken(t, cfg, "alice")))
	req.SetPathValue("id", campaignID)

	w := serveAuthed(t, handler.SubmitVote, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.SubmitVoteResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Vote.MemberID != "alice" || resp.Vote.Decision != models.DecisionApprove {
		t.Errorf("Unexpected vote in response: %+v", resp.Vote)
	}
	if resp.Tally.TotalVotes != 1 {
		t.Errorf("Expected tally of 1, got %+v", resp.Tally)
	}
	if resp.Campaign.DaoApprovalStatus != models.DaoStatusPending {
		t.Errorf("Expected campaign still pending, got %s", resp.Campaign.DaoApprovalStatus)
	}
}

func TestSubmitVoteEndpointRequiresAuth(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	coord := governance.NewCoordinator(conn, nil, nil)
	handler := handlers.NewDaoHandler(coord)

	campaignID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)

	req := testutil.MakeRequest("POST", "/dao/campaigns/"+campaignID+"/vote",
		models.SubmitVoteRequest{Decision: models.DecisionApprove}, nil)
	req.SetPathValue("id", campaignID)

	w := serveAuthed(t, handler.SubmitVote, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)

	// Garbage token
	req = testutil.MakeRequest("POST", "/dao/campaigns/"+campaignID+"/vote",
		models.SubmitVoteRequest{Decision: models.DecisionApprove},
		bearer("not-a-token"))
	req.SetPathValue("id", campaignID)

	w = serveAuthed(t, handler.SubmitVote, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestSubmitVoteEndpointErrors(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	coord := governance.NewCoordinator(conn, nil, nil)
	handler := handlers.NewDaoHandler(coord)

	testutil.CreateTestMember(t, conn, "alice", models.MemberStatusActive)
	openID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)
	closedID := testutil.CreateTestCampaign(t, conn, models.DaoStatusApproved)

	memberToken := testutil.MemberToken(t, cfg, "alice")
	outsiderToken := testutil.MemberToken(t, cfg, "outsider")

	tests := []struct {
		name       string
		campaignID string
		token      string
		body       models.SubmitVoteRequest
		wantStatus int
	}{
		{"invalid decision", openID, memberToken,
			models.SubmitVoteRequest{Decision: "maybe"}, http.StatusBadRequest},
		{"not a member", openID, outsiderToken,
			models.SubmitVoteRequest{Decision: models.DecisionApprove}, http.StatusForbidden},
		{"unknown campaign", "no-such-campaign", memberToken,
			models.SubmitVoteRequest{Decision: models.DecisionApprove}, http.StatusNotFound},
		{"voting closed", closedID, memberToken,
			models.SubmitVoteRequest{Decision: models.DecisionApprove}, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/dao/campaigns/"+tt.campaignID+"/vote",
				tt.body, bearer(tt.token))
			req.SetPathValue("id", tt.campaignID)

			w := serveAuthed(t, handler.SubmitVote, req)
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestSubmitVoteEndpointDuplicate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	coord := governance.NewCoordinator(conn, nil, nil)
	handler := handlers.NewDaoHandler(coord)

	testutil.CreateTestMember(t, conn, "alice", models.MemberStatusActive)
	campaignID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)
	token := testutil.MemberToken(t, cfg, "alice")

	submit := func() *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/dao/campaigns/"+campaignID+"/vote",
			models.SubmitVoteRequest{Decision: models.DecisionApprove}, bearer(token))
		req.SetPathValue("id", campaignID)
		return serveAuthed(t, handler.SubmitVote, req)
	}

	testutil.AssertStatus(t, submit(), http.StatusCreated)

	w := submit()
	testutil.AssertStatus(t, w, http.StatusConflict)

	// The conflict body carries the vote that already landed.
	var resp models.DuplicateVoteResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ExistingVote.MemberID != "alice" || resp.ExistingVote.CampaignID != campaignID {
		t.Errorf("Expected the existing vote in the response, got %+v", resp.ExistingVote)
	}
}

func TestListPendingEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	coord := governance.NewCoordinator(conn, nil, nil)
	handler := handlers.NewDaoHandler(coord)

	testutil.CreateTestMember(t, conn, "alice", models.MemberStatusActive)
	votedID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)
	testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)
	testutil.CastTestVote(t, conn, votedID, "alice", models.DecisionApprove)

	req := testutil.MakeRequest("GET", "/dao/campaigns/pending", nil,
		bearer(testutil.MemberToken(t, cfg, "alice")))

	w := serveAuthed(t, handler.ListPending, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PendingCampaignsResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Campaigns) != 1 {
		t.Errorf("Expected 1 campaign the caller has not voted on, got %d", len(resp.Campaigns))
	}
	if resp.Page != 1 || resp.Limit != governance.DefaultPageLimit {
		t.Errorf("Unexpected paging: page=%d limit=%d", resp.Page, resp.Limit)
	}
}

func TestDaoGetCampaignEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	coord := governance.NewCoordinator(conn, nil, nil)
	handler := handlers.NewDaoHandler(coord)

	testutil.CreateTestMember(t, conn, "alice", models.MemberStatusActive)
	campaignID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)
	testutil.CastTestVote(t, conn, campaignID, "alice", models.DecisionApprove)

	token := testutil.MemberToken(t, cfg, "alice")

	req := testutil.MakeRequest("GET", "/dao/campaigns/"+campaignID, nil, bearer(token))
	req.SetPathValue("id", campaignID)

	w := serveAuthed(t, handler.GetCampaign, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CampaignDetailResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.MyVote == nil || resp.MyVote.Decision != models.DecisionApprove {
		t.Errorf("Expected the caller's vote in the detail, got %+v", resp.MyVote)
	}

	// A member who has not voted gets no my_vote.
	req = testutil.MakeRequest("GET", "/dao/campaigns/"+campaignID, nil,
		bearer(testutil.MemberToken(t, cfg, "bob")))
	req.SetPathValue("id", campaignID)

	w = serveAuthed(t, handler.GetCampaign, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	resp = models.CampaignDetailResponse{}
	testutil.AssertJSON(t, w, &resp)
	if resp.MyVote != nil {
		t.Errorf("Expected no my_vote, got %+v", resp.MyVote)
	}
}

func TestMyVotesEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	coord := governance.NewCoordinator(conn, nil, nil)
	handler := handlers.NewDaoHandler(coord)

	testutil.CreateTestMember(t, conn, "alice", models.MemberStatusActive)
	campaignID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)
	testutil.CastTestVote(t, conn, campaignID, "alice", models.DecisionReject)

	req := testutil.MakeRequest("GET", "/dao/my-votes", nil,
		bearer(testutil.MemberToken(t, cfg, "alice")))

	w := serveAuthed(t, handler.MyVotes, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.MyVotesResponse
	testutil.AssertJSON(t, w, &resp)
	if len(resp.Votes) != 1 {
		t.Fatalf("Expected 1 vote, got %d", len(resp.Votes))
	}
	if resp.Votes[0].Vote.Decision != models.DecisionReject {
		t.Errorf("Expected reject, got %s", resp.Votes[0].Vote.Decision)
	}
	if resp.Votes[0].CampaignTitle == "" {
		t.Error("Expected campaign title in history entry")
	}
}

func TestStatisticsEndpoint(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	coord := governance.NewCoordinator(conn, nil, nil)
	handler := handlers.NewDaoHandler(coord)

	testutil.CreateTestMember(t, conn, "alice", models.MemberStatusActive)
	campaignID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)
	testutil.CastTestVote(t, conn, campaignID, "alice", models.DecisionApprove)

	token := testutil.MemberToken(t, cfg, "alice")

	// Global scope
	req := testutil.MakeRequest("GET", "/dao/statistics", nil, bearer(token))
	w := serveAuthed(t, handler.Statistics, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var global models.GlobalStatistics
	testutil.AssertJSON(t, w, &global)
	if global.TotalVotes != 1 || global.PendingCampaigns != 1 {
		t.Errorf("Unexpected global statistics: %+v", global)
	}

	// Member scope
	req = testutil.MakeRequest("GET", "/dao/statistics?scope=me", nil, bearer(token))
	w = serveAuthed(t, handler.Statistics, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var mine models.MemberStatistics
	testutil.AssertJSON(t, w, &mine)
	if mine.MemberID != "alice" || mine.TotalVotes != 1 {
		t.Errorf("Unexpected member statistics: %+v", mine)
	}
}
