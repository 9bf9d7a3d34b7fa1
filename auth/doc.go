// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates identifiers, public slugs and signed media URLs.

# Identifiers

Contests, contestants and uploaded objects use random v4 UUIDs:

	id := auth.NewID()

# Slugs

A contest slug is derived from its title plus a random base36 suffix:

	slug, err := auth.GenerateSlug("Best Cat Photo 2024")
	// best-cat-photo-2024-k3x9qa

The base is lower-cased and accent-folded; runs of anything outside
[a-z0-9] become one hyphen. Slugs always match

	^[a-z0-9]+(-[a-z0-9]+)*-[0-9a-z]{6}$

Uniqueness is probabilistic here; the contest repository retries on a
collision with a stored slug.

# Media URLs

Files served by the local media backend are reachable only through
expiring signed URLs:

	sig := auth.SignMediaURL(key, name, expires)
	err := auth.VerifyMediaSignature(key, name, expiresParam, sig, time.Now())

The signature is HMAC-SHA256 over the object name and expiry, encoded as
URL-safe base64 without padding. Verification uses constant-time
comparison.
*/
package auth
