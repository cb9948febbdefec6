package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/ratelimiter"
	"github.com/dmitrymomot/authkit/pkg/redis"
)

type limiter struct {
	bucket   *ratelimiter.Bucket
	checks   map[string]httpserver.CheckFunc
	shutdown func()
}

// openLimiter returns nil when RATE_LIMIT_STORE=off.
func openLimiter(ctx context.Context, driver string, log *slog.Logger) (*limiter, error) {
	var cfg ratelimiter.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	switch driver {
	case "off":
		log.Warn("rate limiting disabled")
		return nil, nil

	case "", "memory":
		store := ratelimiter.NewMemoryStore()
		bucket, err := ratelimiter.NewBucket(store, cfg)
		if err != nil {
			store.Close()
			return nil, err
		}
		return &limiter{
			bucket:   bucket,
			checks:   map[string]httpserver.CheckFunc{},
			shutdown: store.Close,
		}, nil

	case "redis":
		var rc redis.Config
		if err := config.Load(&rc); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rc)
		if err != nil {
			return nil, err
		}
		bucket, err := ratelimiter.NewBucket(ratelimiter.NewRedisStore(client), cfg)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &limiter{
			bucket:   bucket,
			checks:   map[string]httpserver.CheckFunc{"redis": redis.Healthcheck(client)},
			shutdown: func() {
				if err := client.Close(); err != nil {
					log.Error("redis close failed", logger.Error(err))
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown RATE_LIMIT_STORE %q (want memory, redis or off)", driver)
	}
}
