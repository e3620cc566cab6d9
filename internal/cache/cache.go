package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is a byte-oriented TTL cache. The dashboard keeps its summary here so
// repeated loads of the landing screen do not rescan the ledger.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Noop satisfies Cache without storing anything. Used when no Redis address
// is configured.
type Noop struct{}

// NewNoop returns the no-op cache.
func NewNoop() *Noop { return &Noop{} }

func (*Noop) Get(context.Context, string) ([]byte, error) { return nil, ErrMiss }

func (*Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*Noop) Delete(context.Context, string) error { return nil }
