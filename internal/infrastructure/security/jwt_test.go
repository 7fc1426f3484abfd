package security

import "testing"

const testSecret = "test-secret"

func TestSubscriberToken_RoundTrip(t *testing.T) {
	token, err := GenerateSubscriberToken("lead-1", "fp-1", "traveler@example.com", testSecret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if role, _ := claims["role"].(string); role != "subscriber" {
		t.Fatalf("expected subscriber role, got %q", role)
	}
	if fp, _ := claims["fingerprint"].(string); fp != "fp-1" {
		t.Fatalf("expected fingerprint claim, got %q", fp)
	}
	if IsSysopClaims(claims) {
		t.Fatal("subscriber claims must not pass the sysop check")
	}
}

func TestSysopToken_RoundTrip(t *testing.T) {
	token, err := GenerateSysopToken(testSecret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateJWT(token, testSecret)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if !IsSysopClaims(claims) {
		t.Fatal("sysop claims failed the sysop check")
	}
}

func TestValidateJWT_RejectsWrongSecret(t *testing.T) {
	token, err := GenerateSysopToken(testSecret)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if _, err := ValidateJWT(token, "other-secret"); err == nil {
		t.Fatal("token validated with wrong secret")
	}
	if _, err := ValidateJWT("not-a-token", testSecret); err == nil {
		t.Fatal("garbage validated as token")
	}
}

func TestGenerateULID_UniqueAndSortable(t *testing.T) {
	a := GenerateULID()
	b := GenerateULID()
	if a == b {
		t.Fatal("consecutive ULIDs collided")
	}
	if len(a) != 26 || len(b) != 26 {
		t.Fatalf("unexpected ULID lengths: %d, %d", len(a), len(b))
	}
}
