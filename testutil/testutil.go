// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/contests"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/kv"
	"github.com/danielhkuo/quickly-vote/models"
)

// TestSigningKey signs local media URLs in tests
const TestSigningKey = "test-media-signing-key"

// SetupTestStore opens a fresh SQLite database in a temp dir with the
// kv_store schema and returns a store over it
func SetupTestStore(t *testing.T) *kv.SQLStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.SQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return kv.New(conn, db.SQLite)
}

// SetupTestRepository returns a repository backed by a fresh test store,
// configured the way GetTestConfig describes
func SetupTestRepository(t *testing.T) *contests.Repository {
	t.Helper()
	cfg := GetTestConfig()
	return contests.New(SetupTestStore(t), contests.Options{
		MaxContestants: cfg.MaxContestants,
		SerializeVotes: cfg.SerializeVotes,
	})
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     ":memory:",
		DatabaseType:    string(db.SQLite),
		PublicBaseURL:   "http://quickly-vote.test",
		MediaBackend:    cliparse.MediaLocal,
		MediaSigningKey: TestSigningKey,
		MediaURLTTL:     time.Hour,
		MaxUploadSize:   "1KB",
		MaxUploadBytes:  1000,
		MaxContestants:  60,
		SerializeVotes:  true,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// CreateTestContest creates a free contest with the given title
func CreateTestContest(t *testing.T, repo *contests.Repository, title string) models.Contest {
	t.Helper()

	contest, err := repo.CreateContest(context.Background(), contests.NewContest{
		Title:       title,
		Description: "A test contest",
		VotePrice:   decimal.Zero,
	})
	if err != nil {
		t.Fatalf("Failed to create test contest: %v", err)
	}
	return contest
}

// AddTestContestant adds a contestant to a contest and returns it
func AddTestContestant(t *testing.T, repo *contests.Repository, contestID, name string) models.Contestant {
	t.Helper()

	contestant, err := repo.AddContestant(context.Background(), contestID, contests.NewContestant{Name: name})
	if err != nil {
		t.Fatalf("Failed to create test contestant: %v", err)
	}
	return contestant
}

// EndTestContest marks a contest as ended
func EndTestContest(t *testing.T, repo *contests.Repository, contestID string) {
	t.Helper()

	if _, err := repo.EndContest(context.Background(), contestID); err != nil {
		t.Fatalf("Failed to end test contest: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
