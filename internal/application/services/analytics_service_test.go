package services

import (
	"testing"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/session"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/caching/manager"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

func TestRecordDecision_SafeWhileSessionLockHeld(t *testing.T) {
	logger := newTestLogger(t)
	cm := manager.NewManager(100, logger)
	svc := NewAnalyticsService(cm, nil, logger)

	state := session.NewEngagementState("s1", "fp-1", time.Now(), config.SessionTTL)
	cm.PutSession(state)

	// The arbiter records every decision while holding the session mutex;
	// the sink must not take that mutex on the caller's goroutine.
	state.Mu.Lock()
	done := make(chan struct{})
	go func() {
		svc.RecordDecision("s1", "message_shown", "welcome", "")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		state.Mu.Unlock()
		t.Fatal("RecordDecision blocked on the held session lock")
	}
	state.Mu.Unlock()

	if counts := cm.Journal().CountByKind(); counts["message_shown"] != 1 {
		t.Fatalf("expected 1 journal entry, got %d", counts["message_shown"])
	}
}
