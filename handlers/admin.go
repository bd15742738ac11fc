// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/givewise/governance"
	"github.com/danielhkuo/givewise/middleware"
	"github.com/danielhkuo/givewise/models"
)

type AdminHandler struct {
	coord *governance.Coordinator
}

func NewAdminHandler(coord *governance.Coordinator) *AdminHandler {
	return &AdminHandler{coord: coord}
}

// Approve handles PUT /admin/campaigns/{id}/approve
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.adminCampaignID(w, r)
	if !ok {
		return
	}

	campaign, err := h.coord.AdminApprove(r.Context(), campaignID)
	if err != nil {
		adminErrorResponse(w, campaignID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminDecisionResponse{Campaign: *campaign})
}

// Reject handles PUT /admin/campaigns/{id}/reject
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.adminCampaignID(w, r)
	if !ok {
		return
	}

	var req models.AdminRejectRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	campaign, err := h.coord.AdminReject(r.Context(), campaignID, req.RejectionReason)
	if err != nil {
		adminErrorResponse(w, campaignID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminDecisionResponse{Campaign: *campaign})
}

// adminCampaignID validates the caller's admin role and extracts the
// campaign ID from the path.
func (h *AdminHandler) adminCampaignID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}
	if claims.Role != models.RoleAdmin {
		middleware.ErrorResponse(w, http.StatusForbidden, "Administrator access required")
		return "", false
	}

	campaignID := r.PathValue("id")
	if campaignID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "campaign_id is required")
		return "", false
	}

	return campaignID, true
}

func adminErrorResponse(w http.ResponseWriter, campaignID string, err error) {
	switch {
	case errors.Is(err, governance.ErrCampaignNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Campaign not found")
	case errors.Is(err, governance.ErrNotReadyForAdmin):
		middleware.ErrorResponse(w, http.StatusConflict, "Campaign is not awaiting administrator action")
	case errors.Is(err, governance.ErrMissingRejectionReason):
		middleware.ErrorResponse(w, http.StatusBadRequest, "rejection_reason is required")
	default:
		slog.Error("admin decision failed", "error", err, "campaign_id", campaignID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record decision")
	}
}
