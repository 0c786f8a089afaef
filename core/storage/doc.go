// Package storage provides an abstraction layer for the object store that
// holds the static game catalogs (item, riven weapon, and riven attribute data).
//
// It wraps the MinIO Go client to provide a simplified read-side interface.
// This abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
// Only the operations the catalog resolver needs are exposed:
//
//   - BucketExists: Verifies access to the catalog bucket.
//   - GetObject: Retrieves a catalog JSON object as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "catalog")
package storage
