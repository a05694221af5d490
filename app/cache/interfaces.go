package cache

import (
	"context"
	"time"
)

// Page is a cached rendered response: enough to replay it byte-identically.
type Page struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	CachedAt    int64  `json:"cached_at"`
}

// PageCache defines the interface for page cache operations
type PageCache interface {
	GetPage(ctx context.Context, key string) (*Page, bool, error)
	SetPage(ctx context.Context, key string, page *Page, ttl time.Duration) error
	Close() error
}
