// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/contests"
	"github.com/danielhkuo/quickly-vote/export"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type ExportHandler struct {
	repo *contests.Repository
	cfg  cliparse.Config
}

func NewExportHandler(repo *contests.Repository, cfg cliparse.Config) *ExportHandler {
	return &ExportHandler{repo: repo, cfg: cfg}
}

// ExportCSV handles GET /export-csv
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListContests(r.Context())
	if err != nil {
		respondError(w, r, err, "export contests")
		return
	}

	csv := export.ContestsCSV(list, baseURL(r, h.cfg))
	middleware.JSONResponse(w, http.StatusOK, models.CSVResponse{CSV: csv})
}

// baseURL prefers the configured public URL and falls back to the host the
// request was addressed to.
func baseURL(r *http.Request, cfg cliparse.Config) string {
	if cfg.PublicBaseURL != "" {
		return cfg.PublicBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
