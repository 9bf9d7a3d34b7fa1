// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-vote/media"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := testutil.GetTestConfig()
	store, err := media.NewLocalStore(t.TempDir(), cfg.PublicBaseURL, cfg.MediaSigningKey, cfg.MediaURLTTL)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	return NewRouter(testutil.SetupTestRepository(t), store, cfg)
}

func serve(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := serve(newTestRouter(t), "GET", "/health", nil)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := serve(mux, "GET", "/", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if expected := "quickly-vote API v1"; w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}

	if w := serve(mux, "GET", "/no-such-page", nil); w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	// 400 and 404 are valid handler responses for missing data
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/contests"},
		{"POST", "/contests"},
		{"GET", "/contests/test-id"},
		{"DELETE", "/contests/test-id"},
		{"POST", "/contests/test-id/contestants"},
		{"POST", "/contests/test-id/end"},
		{"POST", "/contests/test-id/vote"},
		{"GET", "/contests/test-id/votes"},
		{"GET", "/export-csv"},
		{"POST", "/upload"},
		{"GET", "/media/test.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, tc.method, tc.path, nil)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
			if w.Code == http.StatusNotFound && w.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Route %s %s fell through to the mux 404", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/contests/test-id"},
		{"GET", "/contests/test-id/vote"},
		{"DELETE", "/export-csv"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(mux, tc.method, tc.path, nil)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPreflight(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/contests/abc/vote", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Expected origin to be echoed, got %q", got)
	}
}

func TestPathParameterExtraction(t *testing.T) {
	mux := newTestRouter(t)

	w := serve(mux, "POST", "/contests", map[string]any{"title": "Router Test"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d - %s", w.Code, w.Body.String())
	}
	var created models.ContestResponse
	json.NewDecoder(w.Body).Decode(&created)
	contest := created.Contest

	w = serve(mux, "POST", "/contests/"+contest.ID+"/contestants", map[string]any{"name": "A"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Add contestant failed: %d - %s", w.Code, w.Body.String())
	}
	var added models.ContestantResponse
	json.NewDecoder(w.Body).Decode(&added)

	t.Run("idOrSlug by slug", func(t *testing.T) {
		w := serve(mux, "GET", "/contests/"+contest.URLSlug, nil)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("id on vote route", func(t *testing.T) {
		w := serve(mux, "POST", "/contests/"+contest.ID+"/vote", map[string]any{"contestantId": added.Contestant.ID})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}
		var resp models.VoteResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Votes != 1 {
			t.Errorf("Expected 1 vote, got %d", resp.Votes)
		}
	})

	t.Run("id on delete route", func(t *testing.T) {
		if w := serve(mux, "DELETE", "/contests/"+contest.ID, nil); w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if w := serve(mux, "GET", "/contests/"+contest.ID, nil); w.Code != http.StatusNotFound {
			t.Errorf("Expected 404 after delete, got %d", w.Code)
		}
	})
}

func TestUploadAndServeThroughRouter(t *testing.T) {
	mux := newTestRouter(t)

	var body bytes.Buffer
	body.WriteString("--b\r\nContent-Disposition: form-data; name=\"file\"; filename=\"cat.png\"\r\nContent-Type: image/png\r\n\r\npixels\r\n--b--\r\n")
	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=b")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Upload failed: %d - %s", w.Code, w.Body.String())
	}
	var resp models.UploadResponse
	json.NewDecoder(w.Body).Decode(&resp)

	// Strip the public base so the mux sees a path
	path := resp.URL[len(testutil.GetTestConfig().PublicBaseURL):]
	w = serve(mux, "GET", path, nil)
	if w.Code != http.StatusOK || w.Body.String() != "pixels" {
		t.Errorf("Expected stored file, got %d %q", w.Code, w.Body.String())
	}
}
