// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/givewise/cliparse"
	"github.com/danielhkuo/givewise/governance"
	"github.com/danielhkuo/givewise/middleware"
	"github.com/danielhkuo/givewise/models"
)

type CampaignHandler struct {
	db    *sql.DB
	cfg   cliparse.Config
	coord *governance.Coordinator
}

func NewCampaignHandler(db *sql.DB, cfg cliparse.Config, coord *governance.Coordinator) *CampaignHandler {
	return &CampaignHandler{db: db, cfg: cfg, coord: coord}
}

// CreateCampaign handles POST /campaigns
// Creates the governance record: both statuses start at pending.
func (h *CampaignHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CreateCampaignRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.GoalAmount <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "goal_amount must be positive")
		return
	}

	campaignID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO campaign (id, title, description, charity_id, goal_amount, approval_status, dao_approval_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, campaignID, req.Title, req.Description, claims.UserID, req.GoalAmount,
		models.StatusPending, models.DaoStatusPending, time.Now())

	if err != nil {
		slog.Error("failed to insert campaign", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create campaign")
		return
	}

	slog.Info("campaign submitted", "campaign_id", campaignID, "charity_id", claims.UserID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCampaignResponse{
		CampaignID: campaignID,
	})
}

// GetCampaign handles GET /campaigns/{id}
// Public detail view: campaign plus its current tally.
func (h *CampaignHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID := r.PathValue("id")
	if campaignID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "campaign_id is required")
		return
	}

	campaign, tally, err := h.coord.Campaign(r.Context(), campaignID)
	if errors.Is(err, governance.ErrCampaignNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Campaign not found")
		return
	}
	if err != nil {
		slog.Error("failed to load campaign", "error", err, "campaign_id", campaignID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CampaignDetailResponse{
		Campaign: *campaign,
		Tally:    tally,
	})
}
