// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are resolved in three layers, later layers winning:

 1. defaults from the envDefault struct tags
 2. environment variables (a .env file is loaded first, without
    overriding variables that are already set)
 3. CLI flags

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type (sqlite or postgres)
	-media-dir  Upload directory for the local media backend
	-log-level  debug, info, warn or error
	-env-file   dotenv file to load (default .env, or ENV_FILE)

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE
	PUBLIC_BASE_URL
	MEDIA_BACKEND, MEDIA_DIR, MEDIA_BUCKET, MEDIA_SIGNING_KEY, MEDIA_URL_TTL
	GOOGLE_APPLICATION_CREDENTIALS
	MAX_UPLOAD_SIZE (humanized, e.g. "25MB")
	MAX_CONTESTANTS, SERIALIZE_VOTES
	LOG_LEVEL, LOG_FORMAT
	OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_ENABLED

# Validation

ParseFlags returns an error if:

  - DATABASE_TYPE is not sqlite or postgres
  - MEDIA_BACKEND is local and MEDIA_SIGNING_KEY is empty
  - MEDIA_BACKEND is gcs and MEDIA_BUCKET is empty
  - MAX_UPLOAD_SIZE cannot be parsed
*/
package cliparse
