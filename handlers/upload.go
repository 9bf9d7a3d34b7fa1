// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/media"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

// multipartOverhead is allowed on top of MaxUploadBytes for form boundaries
// and part headers.
const multipartOverhead = 64 << 10

type UploadHandler struct {
	store media.Store
	local *media.LocalStore
	cfg   cliparse.Config
}

// NewUploadHandler returns a handler that saves uploads to store. local is
// the store ServeMedia reads from; it is nil when media lives elsewhere.
func NewUploadHandler(store media.Store, local *media.LocalStore, cfg cliparse.Config) *UploadHandler {
	return &UploadHandler{store: store, local: local, cfg: cfg}
}

// Upload handles POST /upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File exceeds "+h.cfg.MaxUploadSize)
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxUploadBytes {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "File exceeds "+h.cfg.MaxUploadSize)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	name := media.ObjectName(header.Filename)
	url, err := h.store.Put(r.Context(), name, contentType, file)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to store upload", "error", err, "object", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	slog.Info("media uploaded",
		"object", name,
		"content_type", contentType,
		"size", humanize.Bytes(uint64(header.Size)),
	)

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{URL: url})
}

// ServeMedia handles GET /media/{name}
func (h *UploadHandler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	if h.local == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	}

	name := r.PathValue("name")
	q := r.URL.Query()

	err := h.local.Verify(name, q.Get("expires"), q.Get("sig"))
	switch {
	case errors.Is(err, media.ErrInvalidName):
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	case errors.Is(err, auth.ErrExpiredURL):
		middleware.ErrorResponse(w, http.StatusForbidden, "Link expired")
		return
	case err != nil:
		middleware.ErrorResponse(w, http.StatusForbidden, "Invalid signature")
		return
	}

	f, err := h.local.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to open media", "error", err, "object", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read media")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to stat media", "error", err, "object", name)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read media")
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeContent(w, r, name, info.ModTime(), f)
}
