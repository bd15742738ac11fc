// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/givewise/governance"
	"github.com/danielhkuo/givewise/middleware"
	"github.com/danielhkuo/givewise/models"
)

type DaoHandler struct {
	coord *governance.Coordinator
}

func NewDaoHandler(coord *governance.Coordinator) *DaoHandler {
	return &DaoHandler{coord: coord}
}

// ListPending handles GET /dao/campaigns/pending
// Campaigns awaiting quorum that the caller has not yet voted on.
func (h *DaoHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, limit := parsePaging(r)
	campaigns, err := h.coord.ListPendingForVoting(r.Context(), claims.UserID, page, limit)
	if err != nil {
		slog.Error("failed to list pending campaigns", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PendingCampaignsResponse{
		Campaigns: campaigns,
		Page:      page,
		Limit:     limit,
	})
}

// GetCampaign handles GET /dao/campaigns/{id}
// Campaign detail plus the caller's existing vote, if any.
func (h *DaoHandler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

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

	myVote, err := h.coord.VoteFor(r.Context(), campaignID, claims.UserID)
	if err != nil {
		slog.Error("failed to load vote", "error", err, "campaign_id", campaignID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CampaignDetailResponse{
		Campaign: *campaign,
		Tally:    tally,
		MyVote:   myVote,
	})
}

// SubmitVote handles POST /dao/campaigns/{id}/vote
func (h *DaoHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	campaignID := r.PathValue("id")
	if campaignID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "campaign_id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	outcome, err := h.coord.SubmitVote(r.Context(), campaignID, claims.UserID, req.Decision, req.Reason)
	if err != nil {
		h.voteErrorResponse(w, r, campaignID, claims.UserID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Vote:     outcome.Vote,
		Tally:    outcome.Tally,
		Campaign: outcome.Campaign,
	})
}

// voteErrorResponse maps governance errors to client-facing failures. A
// duplicate vote carries the previously recorded vote in the body so a
// client retrying after a timeout can tell its write landed.
func (h *DaoHandler) voteErrorResponse(w http.ResponseWriter, r *http.Request, campaignID, memberID string, err error) {
	switch {
	case errors.Is(err, governance.ErrInvalidDecision):
		middleware.ErrorResponse(w, http.StatusBadRequest, "decision must be approve or reject")
	case errors.Is(err, governance.ErrNotEligible):
		middleware.ErrorResponse(w, http.StatusForbidden, "Only active DAO members may vote")
	case errors.Is(err, governance.ErrCampaignNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Campaign not found")
	case errors.Is(err, governance.ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Voting has closed for this campaign")
	case errors.Is(err, governance.ErrDuplicateVote):
		existing, lookupErr := h.coord.VoteFor(r.Context(), campaignID, memberID)
		if lookupErr != nil || existing == nil {
			middleware.ErrorResponse(w, http.StatusConflict, "You already voted on this campaign")
			return
		}
		middleware.JSONResponse(w, http.StatusConflict, models.DuplicateVoteResponse{
			Error:        http.StatusText(http.StatusConflict),
			Message:      "You already voted on this campaign",
			ExistingVote: *existing,
		})
	case errors.Is(err, governance.ErrUnavailable):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Temporarily unavailable, please retry")
	default:
		slog.Error("vote submission failed", "error", err, "campaign_id", campaignID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
	}
}

// MyVotes handles GET /dao/my-votes
func (h *DaoHandler) MyVotes(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, limit := parsePaging(r)
	votes, err := h.coord.MyVotes(r.Context(), claims.UserID, page, limit)
	if err != nil {
		slog.Error("failed to list votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MyVotesResponse{
		Votes: votes,
		Page:  page,
		Limit: limit,
	})
}

// Statistics handles GET /dao/statistics
// ?scope=me returns the caller's statistics; default is global.
func (h *DaoHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if r.URL.Query().Get("scope") == "me" {
		stats, err := h.coord.MemberStatistics(r.Context(), claims.UserID)
		if err != nil {
			slog.Error("failed to compute member statistics", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, stats)
		return
	}

	stats, err := h.coord.GlobalStatistics(r.Context())
	if err != nil {
		slog.Error("failed to compute statistics", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, stats)
}

func parsePaging(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > governance.DefaultPageLimit {
		limit = governance.DefaultPageLimit
	}
	return page, limit
}
