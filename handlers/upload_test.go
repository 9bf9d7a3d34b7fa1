// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/media"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func newTestUploadHandler(t *testing.T) (*UploadHandler, *media.LocalStore) {
	t.Helper()
	cfg := testutil.GetTestConfig()
	local, err := media.NewLocalStore(t.TempDir(), cfg.PublicBaseURL, cfg.MediaSigningKey, cfg.MediaURLTTL)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	return NewUploadHandler(local, local, cfg), local
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		part.Write(content)
	} else {
		mw.WriteField("note", "no file here")
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	handler, local := newTestUploadHandler(t)

	tests := []struct {
		name           string
		req            func(t *testing.T) *http.Request
		expectedStatus int
	}{
		{
			name:           "image",
			req:            func(t *testing.T) *http.Request { return multipartRequest(t, "file", "Cat.JPG", []byte("meow")) },
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong field",
			req:            func(t *testing.T) *http.Request { return multipartRequest(t, "upload", "cat.jpg", []byte("meow")) },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no file part",
			req:            func(t *testing.T) *http.Request { return multipartRequest(t, "", "", nil) },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not multipart",
			req: func(t *testing.T) *http.Request {
				return testutil.MakeRequest("POST", "/upload", map[string]string{"file": "x"}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "file", "big.png", bytes.Repeat([]byte("x"), 2000))
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Upload(w, tt.req(t))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				var resp models.ErrorResponse
				testutil.AssertJSON(t, w, &resp)
				if tt.expectedStatus == http.StatusBadRequest && resp.Message != "No file provided" {
					t.Errorf("Expected 'No file provided', got '%s'", resp.Message)
				}
				return
			}

			var resp models.UploadResponse
			testutil.AssertJSON(t, w, &resp)
			u, err := url.Parse(resp.URL)
			if err != nil {
				t.Fatalf("Invalid URL %q: %v", resp.URL, err)
			}
			name := strings.TrimPrefix(u.Path, "/media/")
			if !strings.HasSuffix(name, ".jpg") {
				t.Errorf("Expected .jpg object name, got %q", name)
			}
			f, err := local.Open(name)
			if err != nil {
				t.Fatalf("uploaded object not stored: %v", err)
			}
			data, _ := io.ReadAll(f)
			f.Close()
			if string(data) != "meow" {
				t.Errorf("Stored content = %q, want %q", data, "meow")
			}
		})
	}
}

type brokenStore struct{}

func (brokenStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	return "", errors.New("bucket unavailable")
}

func TestUpload_StoreFailure(t *testing.T) {
	handler := NewUploadHandler(brokenStore{}, nil, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.Upload(w, multipartRequest(t, "file", "cat.png", []byte("meow")))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

func TestServeMedia(t *testing.T) {
	handler, local := newTestUploadHandler(t)
	cfg := testutil.GetTestConfig()

	link, err := local.Put(context.Background(), "cat.png", "image/png", strings.NewReader("pixels"))
	if err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	valid, _ := url.Parse(link)

	past := time.Now().Add(-time.Hour)
	expired := url.Values{}
	expired.Set("expires", strconv.FormatInt(past.Unix(), 10))
	expired.Set("sig", auth.SignMediaURL(cfg.MediaSigningKey, "cat.png", past))

	future := time.Now().Add(time.Hour)
	missing := url.Values{}
	missing.Set("expires", strconv.FormatInt(future.Unix(), 10))
	missing.Set("sig", auth.SignMediaURL(cfg.MediaSigningKey, "gone.png", future))

	tampered := valid.Query()
	tampered.Set("sig", "AAAA")

	tests := []struct {
		name           string
		object         string
		query          string
		expectedStatus int
	}{
		{"valid link", "cat.png", valid.RawQuery, http.StatusOK},
		{"tampered signature", "cat.png", tampered.Encode(), http.StatusForbidden},
		{"no signature", "cat.png", "", http.StatusForbidden},
		{"expired link", "cat.png", expired.Encode(), http.StatusForbidden},
		{"signed but missing", "gone.png", missing.Encode(), http.StatusNotFound},
		{"hidden name", ".env", valid.RawQuery, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/media/"+tt.object+"?"+tt.query, nil)
			req.SetPathValue("name", tt.object)
			w := httptest.NewRecorder()

			handler.ServeMedia(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != "pixels" {
					t.Errorf("Expected body 'pixels', got %q", w.Body.String())
				}
				if ct := w.Header().Get("Content-Type"); ct != "image/png" {
					t.Errorf("Expected Content-Type image/png, got %q", ct)
				}
			}
		})
	}
}

func TestServeMedia_RemoteBackend(t *testing.T) {
	handler := NewUploadHandler(brokenStore{}, nil, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/media/cat.png", nil)
	req.SetPathValue("name", "cat.png")
	w := httptest.NewRecorder()
	handler.ServeMedia(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}
