// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the SQL connection and creates the key-value table.

# Backends

Two drivers are registered:

  - sqlite (modernc.org/sqlite, pure Go) - the default, also used by tests
  - postgres (github.com/lib/pq)

Open a connection for the configured type:

	d, _ := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(d, cfg.DatabaseURL)

# Schema

All application state lives in one table:

	kv_store (
	    key   TEXT PRIMARY KEY,
	    value TEXT | JSONB      -- JSON document
	)

CreateSchema is idempotent and should be called at startup:

	if err := db.CreateSchema(conn, d); err != nil {
		log.Fatal(err)
	}

# Placeholders

Queries are written with ? placeholders; Dialect.Rebind converts them to
$1, $2, ... for PostgreSQL.
*/
package db
