package cache

import (
	"context"
	"time"
)

// noopCache is a Cache that never hits. Used where a caller requires a
// Cache but caching is unwanted, like the worker's repositories.
type noopCache struct{}

// Noop returns the shared no-op cache.
func Noop() Cache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }

func (noopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

func (noopCache) Delete(context.Context, ...string) error { return nil }

func (noopCache) DeletePattern(context.Context, string) error { return nil }

func (noopCache) Increment(context.Context, string) (int64, error) { return 0, nil }

func (noopCache) Ping(context.Context) error { return nil }
