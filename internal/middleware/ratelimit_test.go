package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeLimiterStore counts per key in memory and lets tests inject failures.
type fakeLimiterStore struct {
	counts    map[string]int64
	incrErr   error
	expireErr error
	expired   []string
	deleted   []string
}

func newFakeLimiterStore() *fakeLimiterStore {
	return &fakeLimiterStore{counts: make(map[string]int64)}
}

func (f *fakeLimiterStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeLimiterStore) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	if f.expireErr != nil {
		return redis.NewBoolResult(false, f.expireErr)
	}
	f.expired = append(f.expired, key)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeLimiterStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.counts, key)
		f.deleted = append(f.deleted, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(limiter *RateLimiter) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.RemoteAddr = "198.51.100.7:4242"
	rr := httptest.NewRecorder()
	limiter.Middleware(okHandler()).ServeHTTP(rr, req)
	return rr
}

func TestRateLimiterAllowsUnderLimit(t *testing.T) {
	store := newFakeLimiterStore()
	limiter := NewRateLimiter(store, 3, time.Minute)

	for i := 0; i < 3; i++ {
		if rr := doRequest(limiter); rr.Code != http.StatusOK {
			t.Fatalf("Request %d: expected 200, got %d", i+1, rr.Code)
		}
	}
	if len(store.expired) != 1 {
		t.Errorf("Expected the window armed exactly once, got %d Expire calls", len(store.expired))
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	store := newFakeLimiterStore()
	limiter := NewRateLimiter(store, 2, time.Minute)

	doRequest(limiter)
	doRequest(limiter)

	rr := doRequest(limiter)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429 over the limit, got %d", rr.Code)
	}
}

func TestRateLimiterFailsOpenOnIncrError(t *testing.T) {
	store := newFakeLimiterStore()
	store.incrErr = errors.New("connection refused")
	limiter := NewRateLimiter(store, 1, time.Minute)

	for i := 0; i < 5; i++ {
		if rr := doRequest(limiter); rr.Code != http.StatusOK {
			t.Fatalf("Request %d: expected pass-through on redis error, got %d", i+1, rr.Code)
		}
	}
}

func TestRateLimiterDropsKeyWhenExpireFails(t *testing.T) {
	store := newFakeLimiterStore()
	store.expireErr = errors.New("connection reset")
	limiter := NewRateLimiter(store, 2, time.Minute)

	if rr := doRequest(limiter); rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 on first request, got %d", rr.Code)
	}

	// Without an expiry the counter would never reset; the key must be
	// dropped so the IP is not limited forever.
	if len(store.deleted) != 1 {
		t.Fatalf("Expected the window key to be dropped, got %d Del calls", len(store.deleted))
	}
	if _, ok := store.counts["ratelimit:198.51.100.7:4242"]; ok {
		t.Error("Counter still present after failed Expire")
	}
}
