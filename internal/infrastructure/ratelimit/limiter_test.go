package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/logging"
)

func newTestLimiter(t *testing.T) *Limiter {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(cfg)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	server := miniredis.RunT(t)
	return NewLimiter(NewRedisClient(server.Addr(), "", 0), logger)
}

func TestAllow_EnforcesLimit(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "concierge", "1.2.3.4", 3, time.Hour)
		if err != nil || !allowed {
			t.Fatalf("request %d should pass: allowed=%v err=%v", i, allowed, err)
		}
	}
	allowed, err := limiter.Allow(ctx, "concierge", "1.2.3.4", 3, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("fourth request should be rejected")
	}
}

func TestAllow_IsolatesBucketsAndClients(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "concierge", "1.2.3.4", 1, time.Hour); !allowed {
		t.Fatal("first request rejected")
	}
	if allowed, _ := limiter.Allow(ctx, "concierge", "1.2.3.4", 1, time.Hour); allowed {
		t.Fatal("second request for the same client should be rejected")
	}
	if allowed, _ := limiter.Allow(ctx, "guide", "1.2.3.4", 1, time.Hour); !allowed {
		t.Fatal("a different bucket must have its own quota")
	}
	if allowed, _ := limiter.Allow(ctx, "concierge", "5.6.7.8", 1, time.Hour); !allowed {
		t.Fatal("a different client must have its own quota")
	}
}

func TestAllow_FailsOpenWithoutRedis(t *testing.T) {
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(cfg)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	limiter := NewLimiter(NewRedisClient("127.0.0.1:1", "", 0), logger)
	allowed, err := limiter.Allow(context.Background(), "concierge", "1.2.3.4", 1, time.Hour)
	if !allowed {
		t.Fatal("limiter must fail open when Redis is unreachable")
	}
	if err == nil {
		t.Fatal("expected the Redis error to surface")
	}
}

func TestRemaining(t *testing.T) {
	limiter := newTestLimiter(t)
	ctx := context.Background()

	remaining, err := limiter.Remaining(ctx, "guide", "1.2.3.4", 5, time.Hour)
	if err != nil || remaining != 5 {
		t.Fatalf("expected full quota, got %d err=%v", remaining, err)
	}

	limiter.Allow(ctx, "guide", "1.2.3.4", 5, time.Hour)
	limiter.Allow(ctx, "guide", "1.2.3.4", 5, time.Hour)

	remaining, err = limiter.Remaining(ctx, "guide", "1.2.3.4", 5, time.Hour)
	if err != nil || remaining != 3 {
		t.Fatalf("expected 3 remaining, got %d err=%v", remaining, err)
	}
}
