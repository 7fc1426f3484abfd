package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/llm"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/ratelimit"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

func newConciergeFixture(t *testing.T, upstream http.HandlerFunc) *ConciergeService {
	t.Helper()
	logger := newTestLogger(t)

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	redisServer := miniredis.RunT(t)
	limiter := ratelimit.NewLimiter(ratelimit.NewRedisClient(redisServer.Addr(), "", 0), logger)

	client := llm.NewClient(server.URL, "test-key", config.ConciergeModel, config.ConciergeMaxTokens, 5*time.Second, logger)
	return NewConciergeService(client, limiter, logger, performance.NewTracker(100))
}

func chatReply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"` + content + `"}}]}`))
	}
}

func TestConcierge_HappyPath(t *testing.T) {
	svc := newConciergeFixture(t, chatReply("Take Route 66 westbound."))

	reply, err := svc.Ask(context.Background(), "1.2.3.4", ConciergeRequest{Message: "Plan a route", Mode: llm.ModeRoute, Language: "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Take Route 66 westbound." {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestConcierge_RejectsEmptyAndOversizedMessages(t *testing.T) {
	svc := newConciergeFixture(t, chatReply("unused"))

	if _, err := svc.Ask(context.Background(), "1.2.3.4", ConciergeRequest{Message: "   "}); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage for blank message, got %v", err)
	}

	long := strings.Repeat("x", config.ConciergeMaxMessageLen+1)
	if _, err := svc.Ask(context.Background(), "1.2.3.4", ConciergeRequest{Message: long}); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage for oversized message, got %v", err)
	}
}

func TestConcierge_RateLimitPerClient(t *testing.T) {
	svc := newConciergeFixture(t, chatReply("ok"))
	ctx := context.Background()

	for i := 0; i < config.ConciergeRateLimit; i++ {
		if _, err := svc.Ask(ctx, "1.2.3.4", ConciergeRequest{Message: "hello"}); err != nil {
			t.Fatalf("request %d rejected: %v", i, err)
		}
	}
	if _, err := svc.Ask(ctx, "1.2.3.4", ConciergeRequest{Message: "hello"}); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	// A different client key has its own quota.
	if _, err := svc.Ask(ctx, "5.6.7.8", ConciergeRequest{Message: "hello"}); err != nil {
		t.Fatalf("second client rejected: %v", err)
	}
}

func TestConcierge_UpstreamFailureMapsToServiceDown(t *testing.T) {
	svc := newConciergeFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := svc.Ask(context.Background(), "1.2.3.4", ConciergeRequest{Message: "hello"}); !errors.Is(err, ErrUpstreamDown) {
		t.Fatalf("expected ErrUpstreamDown, got %v", err)
	}
}

func TestConcierge_SanitizesReply(t *testing.T) {
	svc := newConciergeFixture(t, chatReply(`Try this <script>alert(1)</script> route`))

	reply, err := svc.Ask(context.Background(), "1.2.3.4", ConciergeRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(reply, "<script>") {
		t.Fatalf("script tag survived sanitization: %q", reply)
	}
}

func TestGuideURL_DailyQuota(t *testing.T) {
	svc := newConciergeFixture(t, chatReply("unused"))
	ctx := context.Background()

	old := config.GuideURL
	config.GuideURL = "https://cdn.example.com/guide.pdf"
	defer func() { config.GuideURL = old }()

	for i := 0; i < config.GuideRateLimit; i++ {
		url, err := svc.GuideURL(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("download %d rejected: %v", i, err)
		}
		if url != config.GuideURL {
			t.Fatalf("unexpected guide url: %s", url)
		}
	}
	if _, err := svc.GuideURL(ctx, "1.2.3.4"); !errors.Is(err, ErrGuideLimitExceeded) {
		t.Fatalf("expected ErrGuideLimitExceeded, got %v", err)
	}
}
