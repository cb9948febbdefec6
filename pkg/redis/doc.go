// Package redis connects to Redis with go-redis and exposes a health probe.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	checks["redis"] = redis.Healthcheck(client)
//
// Errors wrap the go-redis cause with errors.Join, so both the sentinel and
// the underlying error match errors.Is.
package redis
