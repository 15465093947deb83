package storage

import (
	"context"
	"time"
)

// StorageProvider issues time-limited download links for evidence files
// already held in object storage. Files land there through the platform's
// upload pipeline; this service only ever reads.
type StorageProvider interface {
	GetURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
