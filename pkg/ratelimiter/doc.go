// Package ratelimiter implements token bucket limiting for HTTP endpoints.
//
// A Bucket spends tokens from a Store. MemoryStore keeps state in process;
// RedisStore shares it between instances through an atomic Lua script.
// Denied requests do not drain the bucket further, so a client that keeps
// retrying is admitted again after one refill interval.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 6 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//
//	r.Use(ratelimiter.Middleware(bucket,
//		ratelimiter.Composite(ratelimiter.ByRoute, ratelimiter.ByIP),
//	))
//
// The middleware writes X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset on every checked response. Rejections carry Retry-After
// and go through the ErrorHandler given with WithErrorHandler, which receives
// ErrLimitExceeded.
package ratelimiter
