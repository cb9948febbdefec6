package ratelimiter

import "time"

// Result describes the bucket after a check.
type Result struct {
	Limit     int       // bucket capacity
	Remaining int       // negative when the request was denied
	ResetAt   time.Time // next refill
}

// Allowed reports whether the checked request fit in the bucket.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is zero for allowed requests.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Config defines a token bucket. The defaults allow a burst of ten attempts
// and one more every six seconds.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"6s"`
}

// ttl is how long an idle bucket needs to refill completely.
func (c Config) ttl() time.Duration {
	intervals := (c.Capacity + c.RefillRate - 1) / c.RefillRate
	return time.Duration(intervals+1) * c.RefillInterval
}

// refill returns the token count after the time elapsed since lastRefill and
// whether any interval passed.
func (c Config) refill(tokens int, lastRefill, now time.Time) (int, bool) {
	// capped so a long idle period cannot overflow
	maxIntervals := int64(c.Capacity/c.RefillRate + 1)
	intervals := min(int64(now.Sub(lastRefill)/c.RefillInterval), maxIntervals)
	if intervals <= 0 {
		return tokens, false
	}
	return min(tokens+int(intervals)*c.RefillRate, c.Capacity), true
}
