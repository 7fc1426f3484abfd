package session

import (
	"testing"
	"time"

	"github.com/anja687gutierrez-jpg/goiconicway/internal/domain/entities/engagement"
)

const maxShown = 4

func newState(now time.Time) *EngagementState {
	return NewEngagementState("sess-1", "fp-1", now, time.Hour)
}

func TestAdmit_FreshSessionAdmits(t *testing.T) {
	now := time.Now()
	s := newState(now)
	ok, reason := s.Admit(engagement.KeyWelcome, now, maxShown, false)
	if !ok || reason != DenyNone {
		t.Fatalf("expected admission, got reason %q", reason)
	}
}

func TestAdmit_PermanentDismissWinsOverEverything(t *testing.T) {
	now := time.Now()
	s := newState(now)
	s.DismissPermanently()

	ok, reason := s.Admit(engagement.KeyWelcome, now, maxShown, false)
	if ok || reason != DenyDismissed {
		t.Fatalf("expected %q, got ok=%v reason=%q", DenyDismissed, ok, reason)
	}
	// Cooldown exemption must not pierce a permanent dismissal.
	ok, reason = s.Admit(engagement.KeyExitIntent, now, maxShown, true)
	if ok || reason != DenyDismissed {
		t.Fatalf("exempt path: expected %q, got ok=%v reason=%q", DenyDismissed, ok, reason)
	}
}

func TestAdmit_OneShotPerKey(t *testing.T) {
	now := time.Now()
	s := newState(now)
	s.MarkShown(engagement.KeyWelcome)
	s.Dismiss(now, 0)

	ok, reason := s.Admit(engagement.KeyWelcome, now.Add(time.Hour), maxShown, false)
	if ok || reason != DenyShown {
		t.Fatalf("expected %q, got ok=%v reason=%q", DenyShown, ok, reason)
	}
}

func TestAdmit_CooldownBlocksUntilExpiry(t *testing.T) {
	now := time.Now()
	s := newState(now)
	s.MarkShown(engagement.KeyWelcome)
	s.Dismiss(now, 90*time.Second)

	ok, reason := s.Admit("fleet", now.Add(89*time.Second), maxShown, false)
	if ok || reason != DenyCooldown {
		t.Fatalf("inside window: expected %q, got ok=%v reason=%q", DenyCooldown, ok, reason)
	}
	ok, _ = s.Admit("fleet", now.Add(91*time.Second), maxShown, false)
	if !ok {
		t.Fatal("expected admission after cooldown expiry")
	}
}

func TestAdmit_ExemptCooldownSkipsOnlyCondition3(t *testing.T) {
	now := time.Now()
	s := newState(now)
	s.MarkShown(engagement.KeyWelcome)
	s.Dismiss(now, 180*time.Second)

	ok, _ := s.Admit(engagement.KeyExitIntent, now.Add(time.Second), maxShown, true)
	if !ok {
		t.Fatal("expected exempt admission during cooldown")
	}
	s.MarkShown(engagement.KeyExitIntent)
	s.Dismiss(now.Add(2*time.Second), 0)

	// One-shot still applies on the exempt path.
	ok, reason := s.Admit(engagement.KeyExitIntent, now.Add(3*time.Second), maxShown, true)
	if ok || reason != DenyShown {
		t.Fatalf("expected %q, got ok=%v reason=%q", DenyShown, ok, reason)
	}
}

func TestAdmit_SessionCap(t *testing.T) {
	now := time.Now()
	s := newState(now)
	for _, key := range []string{"a", "b", "c", "d"} {
		s.MarkShown(key)
		s.Dismiss(now, 0)
	}

	ok, reason := s.Admit("e", now, maxShown, false)
	if ok || reason != DenyCap {
		t.Fatalf("expected %q, got ok=%v reason=%q", DenyCap, ok, reason)
	}
	// The cap also blocks the cooldown-exempt path.
	ok, reason = s.Admit(engagement.KeyExitIntent, now, maxShown, true)
	if ok || reason != DenyCap {
		t.Fatalf("exempt path: expected %q, got ok=%v reason=%q", DenyCap, ok, reason)
	}
}

func TestAdmit_MutualExclusion(t *testing.T) {
	now := time.Now()
	s := newState(now)
	s.MarkShown(engagement.KeyWelcome)

	ok, reason := s.Admit("fleet", now, maxShown, false)
	if ok || reason != DenyVisible {
		t.Fatalf("expected %q, got ok=%v reason=%q", DenyVisible, ok, reason)
	}
}

func TestDismiss_CooldownOnlyMovesForward(t *testing.T) {
	now := time.Now()
	s := newState(now)
	s.MarkShown(engagement.KeyWelcome)
	s.Dismiss(now, 180*time.Second)
	long := s.SuppressUntil

	s.Dismiss(now.Add(time.Second), 90*time.Second)
	if s.SuppressUntil != long {
		t.Fatalf("shorter dismissal shrank the window: %v -> %v", long, s.SuppressUntil)
	}
}

func TestDismiss_ZeroCooldownKeepsSnapshot(t *testing.T) {
	now := time.Now()
	s := newState(now)
	s.ViewSection("fleet", now)
	s.MarkShown(engagement.KeyWelcome)
	s.Dismiss(now, 0)

	if !s.IsSectionNew("fleet") {
		t.Fatal("a no-cooldown dismissal must not snapshot viewed sections")
	}
	if s.MessageVisible() {
		t.Fatal("message should be hidden after dismissal")
	}
}

func TestDismiss_SnapshotMarksViewedSectionsStale(t *testing.T) {
	now := time.Now()
	s := newState(now)
	s.ViewSection("fleet", now)
	s.MarkShown("fleet")
	s.Dismiss(now, 90*time.Second)

	if s.IsSectionNew("fleet") {
		t.Fatal("fleet was on screen at dismissal and must not count as new")
	}
	if s.IsSectionNew("home") {
		t.Fatal("home was viewed and must not count as new")
	}
	if !s.IsSectionNew("routes") {
		t.Fatal("routes was never viewed and must still count as new")
	}
}

func TestViewSection_ReportsChangeOnce(t *testing.T) {
	now := time.Now()
	s := newState(now)
	if !s.ViewSection("fleet", now) {
		t.Fatal("expected change on first entry")
	}
	if s.ViewSection("fleet", now) {
		t.Fatal("expected no change on repeat entry")
	}
	if s.CurrentSection != "fleet" {
		t.Fatalf("expected current section fleet, got %s", s.CurrentSection)
	}
}

func TestExpiry_TouchExtends(t *testing.T) {
	now := time.Now()
	s := newState(now)
	if s.Expired(now.Add(30 * time.Minute)) {
		t.Fatal("should not be expired inside TTL")
	}
	if !s.Expired(now.Add(2 * time.Hour)) {
		t.Fatal("should be expired past TTL")
	}
	s.Touch(now.Add(90*time.Minute), time.Hour)
	if s.Expired(now.Add(2 * time.Hour)) {
		t.Fatal("touch should have extended expiry")
	}
}
