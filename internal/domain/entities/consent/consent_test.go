package consent

import (
	"testing"
	"time"
)

func TestNewPreferences_EssentialAlwaysOn(t *testing.T) {
	now := time.Now()
	p := NewPreferences("fp-1", false, false, now, 365*24*time.Hour)
	if p.Essential != FlagTrue {
		t.Fatalf("essential must always be %q, got %q", FlagTrue, p.Essential)
	}
	if p.Analytics != FlagFalse || p.Marketing != FlagFalse {
		t.Fatalf("declined flags should be %q: analytics=%q marketing=%q", FlagFalse, p.Analytics, p.Marketing)
	}
	if p.AnalyticsAllowed() {
		t.Fatal("analytics allowed despite decline")
	}
}

func TestNewPreferences_GrantedFlags(t *testing.T) {
	now := time.Now()
	p := NewPreferences("fp-1", true, true, now, time.Hour)
	if p.Analytics != FlagTrue || p.Marketing != FlagTrue {
		t.Fatalf("granted flags should be %q: analytics=%q marketing=%q", FlagTrue, p.Analytics, p.Marketing)
	}
	if !p.AnalyticsAllowed() {
		t.Fatal("analytics should be allowed")
	}
}

func TestExpired_RetentionWindow(t *testing.T) {
	now := time.Now()
	p := NewPreferences("fp-1", true, false, now, time.Hour)
	if p.Expired(now.Add(30 * time.Minute)) {
		t.Fatal("decision expired inside retention window")
	}
	if !p.Expired(now.Add(2 * time.Hour)) {
		t.Fatal("decision should expire past retention window")
	}
}
