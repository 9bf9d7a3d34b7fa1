// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package kv is the key-value store adapter used by the contest repositories.

# Contract

	Get(ctx, key, &dst)        // ErrNotFound when absent
	Set(ctx, key, value)       // JSON-encoded upsert
	Delete(ctx, key)           // idempotent
	GetByPrefix(ctx, prefix)   // raw JSON values, ordered by key

# Key Layout

	contest:<id>              Contest record
	contestants:<contestId>   list of Contestant records, rewritten whole
	votes:<contestId>         list of vote events (audit log)

The layout matches data written by earlier deployments and must be kept.

# Consistency

There are no transactions across keys. Every write replaces one value;
read-modify-write sequences built on top of Store can race.

Each call runs inside an OpenTelemetry client span named kv.<op>.
*/
package kv
