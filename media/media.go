// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/danielhkuo/quickly-vote/auth"
)

var ErrInvalidName = errors.New("invalid object name")

// Store keeps uploaded files and returns a URL the front-end can embed.
type Store interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// ObjectName returns a random object name that keeps the upload's extension.
func ObjectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if !validExt(ext) {
		ext = ""
	}
	return auth.NewID() + ext
}

func validExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 10 {
		return false
	}
	for _, r := range ext[1:] {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

// checkName rejects names that could escape the storage root.
func checkName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return ErrInvalidName
	}
	return nil
}
