// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/contests"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/media"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(repo *contests.Repository, store media.Store, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Only the local backend serves files itself
	local, _ := store.(*media.LocalStore)

	// Initialize handlers
	contestHandler := handlers.NewContestHandler(repo)
	votingHandler := handlers.NewVotingHandler(repo)
	exportHandler := handlers.NewExportHandler(repo, cfg)
	uploadHandler := handlers.NewUploadHandler(store, local, cfg)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(middleware.WithTracing(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Contests
	handle("GET /contests", contestHandler.ListContests)
	handle("POST /contests", contestHandler.CreateContest)
	handle("GET /contests/{idOrSlug}", contestHandler.GetContest)
	handle("DELETE /contests/{id}", contestHandler.DeleteContest)
	handle("POST /contests/{id}/contestants", contestHandler.AddContestant)
	handle("POST /contests/{id}/end", contestHandler.EndContest)

	// Voting
	handle("POST /contests/{id}/vote", votingHandler.Vote)
	handle("GET /contests/{id}/votes", votingHandler.ListVotes)

	// Export and media
	handle("GET /export-csv", exportHandler.ExportCSV)
	handle("POST /upload", uploadHandler.Upload)
	handle("GET /media/{name}", uploadHandler.ServeMedia)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return middleware.CORS(mux)
}
