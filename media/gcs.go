// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package media

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"
)

// gcsPublicHost serves objects of publicly readable buckets without
// credentials.
const gcsPublicHost = "https://storage.googleapis.com"

// GCSStore uploads objects to a Google Cloud Storage bucket and returns
// their public URLs. The bucket must grant allUsers read access
// (roles/storage.objectViewer); otherwise browsers cannot load the links.
type GCSStore struct {
	objects *storage.ObjectsService
	bucket  string
}

// NewGCSStore authenticates with the service account file when given,
// otherwise with application default credentials.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string, extra ...option.ClientOption) (*GCSStore, error) {
	opts := []option.ClientOption{option.WithScopes(storage.DevstorageReadWriteScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, extra...)

	srv, err := storage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCSStore{objects: srv.Objects, bucket: bucket}, nil
}

func (s *GCSStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	obj := &storage.Object{Name: name, ContentType: contentType}
	_, err := s.objects.Insert(s.bucket, obj).
		Media(r, googleapi.ContentType(contentType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("gcs upload %s: %w", name, err)
	}
	return PublicURL(s.bucket, name), nil
}

// PublicURL is the unauthenticated URL of an object in a public bucket.
func PublicURL(bucket, name string) string {
	return gcsPublicHost + "/" + url.PathEscape(bucket) + "/" + url.PathEscape(name)
}
