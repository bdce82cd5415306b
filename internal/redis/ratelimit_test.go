package redis_test

import (
	"context"
	"testing"
	"time"

	appredis "snapvault/internal/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newLimiter(t *testing.T, cfg appredis.RateLimitConfig) *appredis.RateLimiter {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return appredis.NewRateLimiter(client, cfg)
}

func TestRateLimiter_AllowsUpToLimit(t *testing.T) {
	limiter := newLimiter(t, appredis.RateLimitConfig{
		AuthLimit:  3,
		AuthWindow: time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := limiter.AllowAuth(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("attempt %d should be allowed", i)
		}
		if result.Remaining != 3-i-1 {
			t.Errorf("attempt %d: remaining = %d, want %d", i, result.Remaining, 3-i-1)
		}
	}

	result, err := limiter.AllowAuth(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("over-limit attempt: %v", err)
	}
	if result.Allowed {
		t.Fatal("fourth attempt should be denied")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := newLimiter(t, appredis.RateLimitConfig{
		AuthLimit:    1,
		AuthWindow:   time.Minute,
		UploadLimit:  1,
		UploadWindow: time.Minute,
	})
	ctx := context.Background()

	if r, _ := limiter.AllowAuth(ctx, "10.0.0.1"); !r.Allowed {
		t.Fatal("first ip should be allowed")
	}
	if r, _ := limiter.AllowAuth(ctx, "10.0.0.1"); r.Allowed {
		t.Fatal("second attempt from same ip should be denied")
	}
	if r, _ := limiter.AllowAuth(ctx, "10.0.0.2"); !r.Allowed {
		t.Fatal("other ip must have its own window")
	}
	// Upload quota is separate from the auth quota.
	if r, _ := limiter.AllowUpload(ctx, "10.0.0.1"); !r.Allowed {
		t.Fatal("upload quota must be independent of auth quota")
	}
}
