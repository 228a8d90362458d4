package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a Redis-backed token bucket. State lives in a hash per
// client key so every API instance shares the same budget.
type RateLimiter struct {
	client   *redis.Client
	script   *redis.Script
	capacity int
	refill   int
	interval time.Duration
	ttl      time.Duration
}

// RateLimitConfig tunes the bucket. Capacity is the burst budget; Refill
// tokens are added every Interval.
type RateLimitConfig struct {
	Capacity int
	Refill   int
	Interval time.Duration
	TTL      time.Duration
}

// NewRateLimiter builds a RateLimiter around the shared Lua bucket script.
func NewRateLimiter(client *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 100
	}
	if cfg.Refill <= 0 {
		cfg.Refill = cfg.Capacity
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}

	script := redis.NewScript(`
		local key = KEYS[1]
		local now_ms = tonumber(ARGV[1])
		local capacity = tonumber(ARGV[2])
		local refill_tokens = tonumber(ARGV[3])
		local interval_ms = tonumber(ARGV[4])
		local ttl_seconds = tonumber(ARGV[5])

		local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
		local tokens = tonumber(state[1])
		local last_refill = tonumber(state[2])

		if tokens == nil or last_refill == nil then
			tokens = capacity
			last_refill = now_ms
		end

		if interval_ms > 0 and refill_tokens > 0 then
			local elapsed = math.max(0, now_ms - last_refill)
			local intervals = math.floor(elapsed / interval_ms)
			if intervals > 0 then
				tokens = math.min(capacity, tokens + (intervals * refill_tokens))
				last_refill = last_refill + (intervals * interval_ms)
			end
		end

		local allowed = 0
		local retry_after_ms = 0
		if tokens > 0 then
			allowed = 1
			tokens = tokens - 1
		else
			local until_next = interval_ms - (now_ms - last_refill)
			if until_next < 0 then until_next = 0 end
			retry_after_ms = until_next
		end

		redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
		redis.call('EXPIRE', key, ttl_seconds)

		return { allowed, retry_after_ms }
	`)

	return &RateLimiter{
		client:   client,
		script:   script,
		capacity: cfg.Capacity,
		refill:   cfg.Refill,
		interval: cfg.Interval,
		ttl:      cfg.TTL,
	}
}

// Allow consumes one token for key. When the bucket is empty it returns
// false and how long the client should wait before retrying.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	vals, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key},
		time.Now().UnixMilli(),
		l.capacity,
		l.refill,
		l.interval.Milliseconds(),
		int64(l.ttl/time.Second),
	).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit: %w", err)
	}
	if len(vals) != 2 {
		return false, 0, fmt.Errorf("rate limit: unexpected script reply %v", vals)
	}
	return vals[0] == 1, time.Duration(vals[1]) * time.Millisecond, nil
}
