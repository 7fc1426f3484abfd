package stores

import (
	"fmt"
	"testing"
	"time"
)

func TestJournal_AppendAndRecent(t *testing.T) {
	js := NewJournalStore(10, nil)
	for i := 0; i < 3; i++ {
		js.Append(JournalEntry{Timestamp: time.Now(), Kind: "message_shown", Key: fmt.Sprintf("k%d", i)})
	}

	recent := js.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Key != "k1" || recent[1].Key != "k2" {
		t.Fatalf("expected newest last, got %v", recent)
	}
}

func TestJournal_RingOverwritesOldest(t *testing.T) {
	js := NewJournalStore(3, nil)
	for i := 0; i < 5; i++ {
		js.Append(JournalEntry{Kind: "action", Key: fmt.Sprintf("k%d", i)})
	}

	recent := js.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("expected ring capacity 3, got %d", len(recent))
	}
	if recent[0].Key != "k2" || recent[2].Key != "k4" {
		t.Fatalf("oldest entries not overwritten: %v", recent)
	}
}

func TestJournal_CountByKind(t *testing.T) {
	js := NewJournalStore(10, nil)
	js.Append(JournalEntry{Kind: "message_shown"})
	js.Append(JournalEntry{Kind: "message_shown"})
	js.Append(JournalEntry{Kind: "message_denied"})

	counts := js.CountByKind()
	if counts["message_shown"] != 2 || counts["message_denied"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestJournal_ZeroCapacityFallsBack(t *testing.T) {
	js := NewJournalStore(0, nil)
	js.Append(JournalEntry{Kind: "action"})
	if len(js.Recent(1)) != 1 {
		t.Fatal("journal with default capacity dropped an entry")
	}
}
