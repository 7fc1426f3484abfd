package services

import (
	"testing"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/engagement"
	"github.com/anja687gutierrez-jpg/goiconicway/internal/infrastructure/observability/performance"
	"github.com/anja687gutierrez-jpg/goiconicway/pkg/config"
)

func newSessionFixture(t *testing.T) (*SessionService, *engagementFixture) {
	t.Helper()
	f := newEngagementFixture(t)
	svc := NewSessionService(f.manager, f.service, newTestLogger(t), performance.NewTracker(100))
	svc.now = f.service.now
	return svc, f
}

func strPtr(s string) *string { return &s }

func TestCreateVisit_MintsFreshSession(t *testing.T) {
	svc, f := newSessionFixture(t)

	result, err := svc.CreateVisit(VisitRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SessionID == "" || result.FingerprintID == "" {
		t.Fatal("expected minted identifiers")
	}
	if result.Restored {
		t.Fatal("fresh visit reported as restored")
	}
	if _, exists := f.manager.GetSession(result.SessionID); !exists {
		t.Fatal("session not stored")
	}
	// The welcome trigger must be armed for a fresh visit.
	if f.scheduler.count() != 1 {
		t.Fatalf("expected welcome timer armed, got %d timers", f.scheduler.count())
	}
}

func TestCreateVisit_ResumesLiveSession(t *testing.T) {
	svc, _ := newSessionFixture(t)

	first, err := svc.CreateVisit(VisitRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.CreateVisit(VisitRequest{SessionID: strPtr(first.SessionID)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Restored {
		t.Fatal("expected resumed visit")
	}
	if second.SessionID != first.SessionID {
		t.Fatalf("resume changed the session ID: %s -> %s", first.SessionID, second.SessionID)
	}
}

func TestCreateVisit_DisplayCounterSurvivesEviction(t *testing.T) {
	svc, f := newSessionFixture(t)

	first, err := svc.CreateVisit(VisitRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Consume three display slots, then evict the session as the cleanup
	// worker would.
	state, _ := f.manager.GetSession(first.SessionID)
	state.Mu.Lock()
	for _, key := range []string{engagement.KeyWelcome, "fleet", "routes"} {
		state.MarkShown(key)
		state.ActiveMessageKey = ""
	}
	f.manager.SaveShownCounter(state.SessionID, state.TotalShown, config.SessionTTL)
	state.ExpiresAt = f.clock.Add(-time.Minute)
	state.Mu.Unlock()
	f.manager.RemoveExpiredSessions(f.clock)

	// The reload presents the evicted session ID.
	second, err := svc.CreateVisit(VisitRequest{SessionID: strPtr(first.SessionID)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Restored {
		t.Fatal("evicted session should not resume")
	}

	restored, _ := f.manager.GetSession(second.SessionID)
	restored.Mu.Lock()
	total := restored.TotalShown
	restored.Mu.Unlock()
	if total != 3 {
		t.Fatalf("display counter lost across eviction: totalShown=%d", total)
	}
}

func TestSideChannels_OneShotFlags(t *testing.T) {
	svc, _ := newSessionFixture(t)

	result, err := svc.CreateVisit(VisitRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flags, ok := svc.SideChannels(result.SessionID)
	if !ok {
		t.Fatal("session not found")
	}
	if !flags["popupEligible"] || !flags["stickyEligible"] {
		t.Fatalf("fresh session should be eligible for both surfaces: %v", flags)
	}

	svc.MarkPopupShown(result.SessionID)
	svc.MarkStickyClosed(result.SessionID)

	flags, _ = svc.SideChannels(result.SessionID)
	if flags["popupEligible"] || flags["stickyEligible"] {
		t.Fatalf("consumed surfaces still eligible: %v", flags)
	}
}

func TestSideChannels_SubscriberGetsNeither(t *testing.T) {
	svc, f := newSessionFixture(t)

	result, err := svc.CreateVisit(VisitRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, _ := f.manager.GetSession(result.SessionID)
	state.Mu.Lock()
	state.HasSubscribed = true
	state.Mu.Unlock()

	flags, _ := svc.SideChannels(result.SessionID)
	if flags["popupEligible"] || flags["stickyEligible"] {
		t.Fatalf("subscriber should see no lead-capture surfaces: %v", flags)
	}
	if !flags["hasSubscribed"] {
		t.Fatal("hasSubscribed flag missing")
	}
}

func TestGetState_Snapshot(t *testing.T) {
	svc, f := newSessionFixture(t)

	result, err := svc.CreateVisit(VisitRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.service.TryShow(result.SessionID, engagement.KeyWelcome, false)

	snapshot, ok := svc.GetState(result.SessionID)
	if !ok {
		t.Fatal("session not found")
	}
	if snapshot["activeMessageKey"] != engagement.KeyWelcome {
		t.Fatalf("expected active welcome, got %v", snapshot["activeMessageKey"])
	}
	if snapshot["totalShown"] != 1 {
		t.Fatalf("expected totalShown 1, got %v", snapshot["totalShown"])
	}

	if _, ok := svc.GetState("ghost"); ok {
		t.Fatal("unknown session should report not found")
	}
}
