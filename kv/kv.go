// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kv

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/danielhkuo/quickly-vote/db"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: key not found")

// Key prefixes. The layout is shared with existing data and must not change.
const (
	ContestPrefix     = "contest:"
	ContestantsPrefix = "contestants:"
	VotesPrefix       = "votes:"
)

func ContestKey(id string) string            { return ContestPrefix + id }
func ContestantsKey(contestID string) string { return ContestantsPrefix + contestID }
func VotesKey(contestID string) string       { return VotesPrefix + contestID }

// Store is a persisted mapping from string keys to JSON values.
type Store interface {
	// Get decodes the value stored under key into dst.
	Get(ctx context.Context, key string, dst any) error
	// Set JSON-encodes value and stores it under key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// GetByPrefix returns the raw values of all keys starting with prefix,
	// ordered by key.
	GetByPrefix(ctx context.Context, prefix string) ([]json.RawMessage, error)
}

var tracer = otel.Tracer("github.com/danielhkuo/quickly-vote/kv")

// SQLStore implements Store on the kv_store table.
type SQLStore struct {
	conn    *sql.DB
	dialect db.Dialect

	getQuery    string
	setQuery    string
	deleteQuery string
	prefixQuery string
}

func New(conn *sql.DB, dialect db.Dialect) *SQLStore {
	return &SQLStore{
		conn:        conn,
		dialect:     dialect,
		getQuery:    dialect.Rebind(`SELECT value FROM kv_store WHERE key = ?`),
		setQuery:    dialect.Rebind(`INSERT INTO kv_store (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`),
		deleteQuery: dialect.Rebind(`DELETE FROM kv_store WHERE key = ?`),
		// substr keeps the match case-sensitive on SQLite, where LIKE is not.
		prefixQuery: dialect.Rebind(`SELECT value FROM kv_store WHERE substr(key, 1, ?) = ? ORDER BY key`),
	}
}

func (s *SQLStore) startSpan(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "kv."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", string(s.dialect)),
			attribute.String("kv.key", key),
		),
	)
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *SQLStore) Get(ctx context.Context, key string, dst any) (err error) {
	ctx, span := s.startSpan(ctx, "get", key)
	defer func() { endSpan(span, err) }()

	var raw []byte
	err = s.conn.QueryRowContext(ctx, s.getQuery, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("kv get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("kv decode %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value any) (err error) {
	ctx, span := s.startSpan(ctx, "set", key)
	defer func() { endSpan(span, err) }()

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv encode %s: %w", key, err)
	}

	// Sent as text: lib/pq would send []byte as bytea, which JSONB rejects.
	if _, err := s.conn.ExecContext(ctx, s.setQuery, key, string(b)); err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) (err error) {
	ctx, span := s.startSpan(ctx, "delete", key)
	defer func() { endSpan(span, err) }()

	if _, err := s.conn.ExecContext(ctx, s.deleteQuery, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) GetByPrefix(ctx context.Context, prefix string) (values []json.RawMessage, err error) {
	ctx, span := s.startSpan(ctx, "get_by_prefix", prefix)
	defer func() { endSpan(span, err) }()

	rows, err := s.conn.QueryContext(ctx, s.prefixQuery, utf8.RuneCountInString(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("kv scan %s: %w", prefix, err)
	}
	defer rows.Close()

	values = []json.RawMessage{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("kv scan %s: %w", prefix, err)
		}
		values = append(values, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv scan %s: %w", prefix, err)
	}

	span.SetAttributes(attribute.Int("kv.results", len(values)))
	return values, nil
}
