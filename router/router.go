// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/givewise/cliparse"
	"github.com/danielhkuo/givewise/governance"
	"github.com/danielhkuo/givewise/handlers"
	"github.com/danielhkuo/givewise/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, coord *governance.Coordinator, promRegistry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	campaignHandler := handlers.NewCampaignHandler(db, cfg, coord)
	daoHandler := handlers.NewDaoHandler(coord)
	adminHandler := handlers.NewAdminHandler(coord)

	withAuth := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithAuth(cfg.JWTSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus metrics
	if promRegistry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	// Campaign submission and public detail
	mux.HandleFunc("POST /campaigns", withAuth(campaignHandler.CreateCampaign))
	mux.HandleFunc("GET /campaigns/{id}", middleware.WithLogging(campaignHandler.GetCampaign))

	// DAO voting operations (members)
	mux.HandleFunc("GET /dao/campaigns/pending", withAuth(daoHandler.ListPending))
	mux.HandleFunc("GET /dao/campaigns/{id}", withAuth(daoHandler.GetCampaign))
	mux.HandleFunc("POST /dao/campaigns/{id}/vote", withAuth(daoHandler.SubmitVote))
	mux.HandleFunc("GET /dao/my-votes", withAuth(daoHandler.MyVotes))
	mux.HandleFunc("GET /dao/statistics", withAuth(daoHandler.Statistics))

	// Administrator decisions
	mux.HandleFunc("PUT /admin/campaigns/{id}/approve", withAuth(adminHandler.Approve))
	mux.HandleFunc("PUT /admin/campaigns/{id}/reject", withAuth(adminHandler.Reject))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("givewise API v1"))
	})

	return mux
}
