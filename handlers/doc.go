// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

Each handler is a struct built around a *contests.Repository:

  - ContestHandler: contest lifecycle and contestants
  - VotingHandler: votes and the vote log
  - ExportHandler: CSV export of all contests
  - UploadHandler: media uploads and signed local media

Handlers are created via constructor functions:

	contestHandler := handlers.NewContestHandler(repo)
	exportHandler := handlers.NewExportHandler(repo, cfg)

# Contest Lifecycle

Contests are created active and can be ended:

	POST   /contests                   → CreateContest
	POST   /contests/{id}/contestants  → AddContestant
	POST   /contests/{id}/end          → EndContest
	DELETE /contests/{id}              → DeleteContest

GET /contests/{idOrSlug} accepts either the contest ID or its URL slug.

# Voting

	POST /contests/{id}/vote  → Vote (active contests only, 409 otherwise)
	GET  /contests/{id}/votes → ListVotes

There is no voter identity. Every request counts as one vote.

# Errors

Repository errors map to status codes: not found is 404, validation is 400,
anything else is logged and returned as 500.
*/
package handlers
