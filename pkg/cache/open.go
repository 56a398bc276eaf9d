package cache

import (
	"context"
	"fmt"
	"time"
)

// Options selects and configures a store implementation.
type Options struct {
	Driver   string // "memory" or "redis"
	MaxItems int
	Redis    RedisOptions
}

const janitorInterval = time.Minute

// Open builds the store named by opts.Driver.
func Open(ctx context.Context, opts Options) (ClosableStore, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemory(janitorInterval, WithMaxItems(opts.MaxItems)), nil
	case "redis":
		return DialRedis(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("cache: unknown driver %q", opts.Driver)
	}
}
