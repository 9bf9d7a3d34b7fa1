// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter wires every endpoint into an http.ServeMux and wraps it with CORS:

	handler := router.NewRouter(repo, mediaStore, cfg)

Every API route is wrapped with middleware.WithLogging and
middleware.WithTracing.

# Endpoints

Health:

	GET /health

Contests:

	GET    /contests                  - List, newest first
	POST   /contests                  - Create
	GET    /contests/{idOrSlug}       - Contest and its contestants
	DELETE /contests/{id}             - Delete with contestants and votes
	POST   /contests/{id}/contestants - Add contestant
	POST   /contests/{id}/end         - Stop accepting votes

Voting:

	POST /contests/{id}/vote  - Cast one vote
	GET  /contests/{id}/votes - Vote log

Export and media:

	GET  /export-csv    - All contests as CSV
	POST /upload        - Multipart upload, field "file"
	GET  /media/{name}  - Signed local media (local backend only)
*/
package router
