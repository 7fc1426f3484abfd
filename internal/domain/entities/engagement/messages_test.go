package engagement

import "testing"

func TestDefaultCatalog_TimedTriggerKeys(t *testing.T) {
	catalog := DefaultCatalog()
	for _, key := range []string{KeyWelcome, KeyInactive, KeyExitIntent, KeyPdfDelivery} {
		if _, ok := catalog.Get(key); !ok {
			t.Fatalf("catalog missing %s", key)
		}
	}
}

func TestDefaultCatalog_SectionAndHelpKeys(t *testing.T) {
	catalog := DefaultCatalog()
	for _, section := range []string{"fleet", "routes", "concierge"} {
		if _, ok := catalog.Get(section); !ok {
			t.Fatalf("catalog missing section message %s", section)
		}
	}
	for _, section := range []string{"home", "fleet", "routes", "concierge", "testimonials", "contact"} {
		if _, ok := catalog.Get(HelpKey(section)); !ok {
			t.Fatalf("catalog missing help message for %s", section)
		}
	}
	if _, ok := catalog.Get("booking-bar"); ok {
		t.Fatal("booking-bar should not carry a section message")
	}
}

func TestDefaultCatalog_EveryMessageHasButtons(t *testing.T) {
	for key, def := range DefaultCatalog() {
		if def.Key != key {
			t.Fatalf("definition %s keyed as %s", def.Key, key)
		}
		if len(def.Buttons) == 0 {
			t.Fatalf("message %s has no buttons", key)
		}
		if def.Text == "" {
			t.Fatalf("message %s has no text", key)
		}
	}
}

func TestPhaseString(t *testing.T) {
	cases := map[MessagePhase]string{
		PhaseEligible:           "eligible",
		PhaseShown:              "shown",
		PhaseDismissedCooldown:  "dismissed-cooldown",
		PhaseDismissedPermanent: "dismissed-permanent",
	}
	for phase, want := range cases {
		if phase.String() != want {
			t.Fatalf("phase %d: expected %s, got %s", phase, want, phase.String())
		}
	}
}
