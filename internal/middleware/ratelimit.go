package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// limiterStore is the slice of the redis API the limiter needs.
type limiterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RateLimiter is a fixed-window per-IP limiter backed by redis, so the
// window survives restarts and is shared if more than one instance runs.
type RateLimiter struct {
	store  limiterStore
	limit  int
	window time.Duration
}

func NewRateLimiter(store limiterStore, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:  store,
		limit:  limit,
		window: window,
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := fmt.Sprintf("ratelimit:%s", r.RemoteAddr)

		count, err := rl.store.Incr(r.Context(), key).Result()
		if err != nil {
			// Let the request through rather than failing closed on a
			// redis hiccup.
			log.Printf("rate limiter redis error: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			if err := rl.store.Expire(r.Context(), key, rl.window).Err(); err != nil {
				// A counter with no expiry would limit this IP forever
				// once it fills; drop the key instead.
				log.Printf("rate limiter failed to arm window for %s: %v", key, err)
				rl.store.Del(r.Context(), key)
			}
		}

		if count > int64(rl.limit) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"code":"RATE_LIMITED","message":"Too many requests. Please try again later."}}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
