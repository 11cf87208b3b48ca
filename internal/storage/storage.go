// Package storage abstracts the external blob store. Project images are
// referenced by durable URL only; nothing in this service owns the bytes
// after upload.
package storage

import "context"

// BlobStore stores binary objects and returns a durable public URL.
type BlobStore interface {
	Store(ctx context.Context, key, contentType string, data []byte) (string, error)
}
