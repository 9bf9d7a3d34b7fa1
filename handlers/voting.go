// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/contests"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type VotingHandler struct {
	repo *contests.Repository
}

func NewVotingHandler(repo *contests.Repository) *VotingHandler {
	return &VotingHandler{repo: repo}
}

// Vote handles POST /contests/{id}/vote
//
// Only active contests accept votes. Payment is not checked here; paid
// contests rely on the external payment link.
func (h *VotingHandler) Vote(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ContestantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contestantId is required")
		return
	}

	contest, err := h.repo.GetContestByID(r.Context(), contestID)
	if err != nil {
		respondError(w, r, err, "load contest")
		return
	}
	if contest.Status != models.StatusActive {
		middleware.ErrorResponse(w, http.StatusConflict, "Contest is not active")
		return
	}

	votes, err := h.repo.CastVote(r.Context(), contestID, req.ContestantID)
	if err != nil {
		respondError(w, r, err, "record vote")
		return
	}

	slog.Info("vote recorded",
		"contest_id", contestID,
		"contestant_id", req.ContestantID,
		"votes", votes,
		"client_ip", middleware.GetClientIP(r),
	)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{Success: true, Votes: votes})
}

// ListVotes handles GET /contests/{id}/votes
func (h *VotingHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")

	if _, err := h.repo.GetContestByID(r.Context(), contestID); err != nil {
		respondError(w, r, err, "load contest")
		return
	}

	events, err := h.repo.VoteLog(r.Context(), contestID)
	if err != nil {
		respondError(w, r, err, "load votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteLogResponse{Votes: events})
}
