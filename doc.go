// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote hosts public voting contests. A creator sets up a contest,
adds contestants with optional media, and shares the contest slug. Anyone
with the link can vote while the contest is active.

# Starting the Server

With no configuration the server uses a SQLite file and local media:

	MEDIA_SIGNING_KEY=secret go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Settings come from a .env file, then the environment, then flags:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - MEDIA_BACKEND: local or gcs (default: local)
  - MEDIA_DIR (-media-dir): Upload directory for the local backend
  - MEDIA_SIGNING_KEY: HMAC key for local media URLs
  - MEDIA_BUCKET, GOOGLE_APPLICATION_CREDENTIALS: gcs backend
  - MAX_UPLOAD_SIZE: e.g. 25MB
  - MAX_CONTESTANTS: per-contest cap (default: 60, 0 disables)
  - LOG_LEVEL (-log-level), LOG_FORMAT: slog level and text|json
  - OTEL_EXPORTER_OTLP_ENDPOINT: enables trace export

# Architecture

  - handlers: HTTP request handlers (contests, voting, export, upload)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, tracing, JSON helpers
  - contests: Contest, contestant and vote operations
  - kv: JSON key-value store over a single SQL table
  - db: Connections and schema creation
  - media: Local and Google Cloud Storage upload backends
  - export: CSV rendering
  - models: Records and request/response types
  - auth: IDs, slugs and media URL signatures
  - telemetry: OpenTelemetry setup
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
