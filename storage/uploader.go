package storage

import (
	"context"
	"io"
)

// UploadResult describes a stored object. Location is the public URL when
// the bucket exposes one.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores team logo images. Keys are owned by the caller:
// the team service derives them from the team id and deletes the
// superseded object when a logo is replaced.
type FileUploader interface {
	// Upload writes the object under key and returns where it landed.
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GetPublicURL resolves the browser-facing URL for a stored key.
	GetPublicURL(key string) string
}
