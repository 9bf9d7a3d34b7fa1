// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-vote/contests"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type ContestHandler struct {
	repo *contests.Repository
}

func NewContestHandler(repo *contests.Repository) *ContestHandler {
	return &ContestHandler{repo: repo}
}

// ListContests handles GET /contests
func (h *ContestHandler) ListContests(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListContests(r.Context())
	if err != nil {
		respondError(w, r, err, "list contests")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ContestsResponse{Contests: list})
}

// GetContest handles GET /contests/{idOrSlug}
func (h *ContestHandler) GetContest(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("idOrSlug")

	contest, err := h.repo.ResolveContest(r.Context(), idOrSlug)
	if err != nil {
		respondError(w, r, err, "load contest")
		return
	}

	contestants, err := h.repo.ListContestants(r.Context(), contest.ID)
	if err != nil {
		respondError(w, r, err, "load contestants")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ContestWithContestants{
		Contest:     contest,
		Contestants: contestants,
	})
}

// CreateContest handles POST /contests
func (h *ContestHandler) CreateContest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContestRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	in := contests.NewContest{
		Title:         req.Title,
		Description:   req.Description,
		IsPaid:        req.IsPaid,
		Customization: req.Customization,
	}
	// Free contests carry no price or payment link
	if req.IsPaid {
		if strings.TrimSpace(req.PaymentLink) == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "paymentLink is required for paid contests")
			return
		}
		in.VotePrice = req.VotePrice
		in.PaymentLink = strings.TrimSpace(req.PaymentLink)
	} else {
		in.VotePrice = decimal.Zero
	}

	contest, err := h.repo.CreateContest(r.Context(), in)
	if err != nil {
		respondError(w, r, err, "create contest")
		return
	}

	slog.Info("contest created", "contest_id", contest.ID, "slug", contest.URLSlug, "paid", contest.IsPaid)

	middleware.JSONResponse(w, http.StatusCreated, models.ContestResponse{Contest: contest})
}

// DeleteContest handles DELETE /contests/{id}
func (h *ContestHandler) DeleteContest(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")

	if err := h.repo.DeleteContest(r.Context(), contestID); err != nil {
		respondError(w, r, err, "delete contest")
		return
	}

	slog.Info("contest deleted", "contest_id", contestID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// AddContestant handles POST /contests/{id}/contestants
func (h *ContestHandler) AddContestant(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")

	var req models.AddContestantRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	contestant, err := h.repo.AddContestant(r.Context(), contestID, contests.NewContestant{
		Name:        req.Name,
		Description: req.Description,
		MediaURLs:   req.MediaURLs,
	})
	if err != nil {
		respondError(w, r, err, "add contestant")
		return
	}

	slog.Info("contestant added", "contest_id", contestID, "contestant_id", contestant.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.ContestantResponse{Contestant: contestant})
}

// EndContest handles POST /contests/{id}/end
func (h *ContestHandler) EndContest(w http.ResponseWriter, r *http.Request) {
	contestID := r.PathValue("id")

	contest, err := h.repo.EndContest(r.Context(), contestID)
	if err != nil {
		respondError(w, r, err, "end contest")
		return
	}

	slog.Info("contest ended", "contest_id", contestID, "total_votes", contest.TotalVotes)

	middleware.JSONResponse(w, http.StatusOK, models.ContestResponse{Contest: contest})
}
