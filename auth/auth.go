// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrExpiredURL       = errors.New("signed URL expired")
)

// SlugSuffixLen is the number of random base36 characters appended to a slug.
const SlugSuffixLen = 6

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns a random (v4) UUID string
func NewID() string {
	return uuid.NewString()
}

// GenerateSlug derives a public URL slug from a contest title.
// The result is SlugBase(title) followed by a hyphen and a fresh random suffix,
// so two calls with the same title give different slugs.
func GenerateSlug(title string) (string, error) {
	suffix, err := randomBase36(SlugSuffixLen)
	if err != nil {
		return "", err
	}
	return SlugBase(title) + "-" + suffix, nil
}

// SlugBase lower-cases the title, folds accents (é -> e), replaces every run
// of characters outside [a-z0-9] with one hyphen and trims hyphens at both
// ends. Titles with nothing left fall back to "contest".
func SlugBase(title string) string {
	lower := cases.Lower(language.Und).String(title)
	folded, _, err := transform.String(foldAccents(), lower)
	if err != nil {
		folded = lower
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	if b.Len() == 0 {
		return "contest"
	}
	return b.String()
}

// foldAccents applies compatibility decomposition (so ligatures such as
// "ﬁ" become "fi") and drops combining marks.
// A transformer is stateful, so build a new chain per call.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// randomBase36 returns n uniformly random characters from [0-9a-z]
func randomBase36(n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate slug suffix: %w", err)
		}
		for _, c := range buf {
			// 252 = 36*7; rejecting the tail keeps the distribution uniform
			if c >= 252 {
				continue
			}
			out = append(out, base36Chars[c%36])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}

// SignMediaURL creates an HMAC signature binding an object name to an
// expiry time. The signature is URL-safe base64 without padding.
func SignMediaURL(key, name string, expires time.Time) string {
	return mediaSignature(key, name, expires.Unix())
}

// VerifyMediaSignature checks a signature produced by SignMediaURL.
// expires is the unix timestamp carried in the URL.
func VerifyMediaSignature(key, name, expires, signature string, now time.Time) error {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return ErrInvalidSignature
	}

	expected := mediaSignature(key, name, exp)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return ErrInvalidSignature
	}
	if now.Unix() > exp {
		return ErrExpiredURL
	}
	return nil
}

func mediaSignature(key, name string, expires int64) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(expires, 10)))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
