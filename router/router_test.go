// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/givewise/governance"
	"github.com/danielhkuo/givewise/models"
	"github.com/danielhkuo/givewise/router"
	"github.com/danielhkuo/givewise/testutil"
)

func setupRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	registry := prometheus.NewRegistry()
	coord := governance.NewCoordinator(conn, nil, registry)
	return router.NewRouter(conn, cfg, coord, registry)
}

func TestHealthEndpoint(t *testing.T) {
	mux := setupRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK, got %q", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	mux := setupRouter(t)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := setupRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	mux := setupRouter(t)

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/campaigns"},
		{"GET", "/dao/campaigns/pending"},
		{"GET", "/dao/campaigns/some-id"},
		{"POST", "/dao/campaigns/some-id/vote"},
		{"GET", "/dao/my-votes"},
		{"GET", "/dao/statistics"},
		{"PUT", "/admin/campaigns/some-id/approve"},
		{"PUT", "/admin/campaigns/some-id/reject"},
	}

	for _, rt := range routes {
		req := httptest.NewRequest(rt.method, rt.path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", rt.method, rt.path, w.Code)
		}
	}
}

func TestRouterVotePath(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	coord := governance.NewCoordinator(conn, nil, nil)
	mux := router.NewRouter(conn, cfg, coord, nil)

	testutil.CreateTestMember(t, conn, "alice", models.MemberStatusActive)
	campaignID := testutil.CreateTestCampaign(t, conn, models.DaoStatusPending)

	// The pattern router extracts the campaign ID from the path.
	req := testutil.MakeRequest("POST", "/dao/campaigns/"+campaignID+"/vote",
		models.SubmitVoteRequest{Decision: models.DecisionApprove},
		map[string]string{"Authorization": "Bearer " + testutil.MemberToken(t, cfg, "alice")})
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Public campaign view requires no token.
	req = testutil.MakeRequest("GET", "/campaigns/"+campaignID, nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.CampaignDetailResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Tally.TotalVotes != 1 {
		t.Errorf("Expected 1 vote, got %+v", resp.Tally)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	mux := setupRouter(t)

	req := httptest.NewRequest("DELETE", "/dao/my-votes", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}
