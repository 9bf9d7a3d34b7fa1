// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
)

// LocalStore writes uploads to a directory and hands out signed, expiring
// URLs under /media/.
type LocalStore struct {
	dir     string
	baseURL string
	key     string
	ttl     time.Duration
	now     func() time.Time
}

func NewLocalStore(dir, baseURL, signingKey string, ttl time.Duration) (*LocalStore, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("media signing key is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     signingKey,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return s.SignedURL(name), nil
}

// SignedURL returns the public URL of an object, valid for the store's TTL.
func (s *LocalStore) SignedURL(name string) string {
	expires := s.now().Add(s.ttl)
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires.Unix(), 10))
	q.Set("sig", auth.SignMediaURL(s.key, name, expires))
	return s.baseURL + "/media/" + url.PathEscape(name) + "?" + q.Encode()
}

// Verify checks the expires and sig query parameters of a media URL.
func (s *LocalStore) Verify(name, expires, sig string) error {
	if err := checkName(name); err != nil {
		return err
	}
	return auth.VerifyMediaSignature(s.key, name, expires, sig, s.now())
}

// Open returns the stored file. The caller closes it.
func (s *LocalStore) Open(name string) (*os.File, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.dir, name))
}
