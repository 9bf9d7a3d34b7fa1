// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package media stores contestant media uploads.
//
// Two backends implement [Store]:
//
//   - [LocalStore] writes files under a directory and returns URLs of the
//     form <base>/media/<name>?expires=<unix>&sig=<hmac>. The router serves
//     them back after checking the signature with [LocalStore.Verify].
//   - [GCSStore] uploads to a Google Cloud Storage bucket and returns the
//     object's public URL. The bucket must be publicly readable; the store
//     does not sign URLs.
//
// Object names come from [ObjectName]: a random UUID plus the lower-cased
// extension of the original filename.
package media
