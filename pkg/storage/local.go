package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// LocalStorage serves files straight off disk for development; the URLs
// it hands out are plain paths under the configured base URL and do not
// expire.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

func (l *LocalStorage) GetURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return strings.TrimRight(l.baseURL, "/") + "/" + strings.TrimLeft(key, "/"), nil
}
