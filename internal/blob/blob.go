package blob

import (
	"context"
	"time"
)

// Store hands out short-lived URLs for the two-step upload contract: the
// client asks for an upload URL, PUTs the bytes directly, then attaches the
// returned storage key to a photo record along with a resolved file URL.
type Store interface {
	// PresignUpload returns a time-limited PUT URL for the given key.
	PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error)

	// PresignDownload returns a time-limited GET URL for the given key.
	PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error)

	// FileURL resolves the URL stored on photo records. When a public base
	// URL is configured it is stable; otherwise it is a presigned GET URL and
	// expires (the record keeps whatever was resolved at upload time).
	FileURL(ctx context.Context, key string) (string, error)

	Delete(ctx context.Context, key string) error
}
