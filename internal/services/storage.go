package services

import "context"

// ObjectStorage is the slice of the S3 gateway the services need. Implemented
// by storage.Client; tests substitute an in-memory fake.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
}
