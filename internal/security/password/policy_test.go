package password

import "testing"

func TestValidateBlocksShortPasswords(t *testing.T) {
	for _, pwd := range []string{"", "short", "  1234567  "} {
		if _, _, err := Validate(pwd); err == nil {
			t.Errorf("Validate(%q) = nil, want error", pwd)
		}
	}
}

func TestValidateWarnsOnWeakButAccepts(t *testing.T) {
	trimmed, warn, err := Validate("password1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if trimmed != "password1" {
		t.Errorf("trimmed = %q", trimmed)
	}
	if warn == nil {
		t.Fatal("expected a strength warning for a weak password")
	}
}

func TestValidateStrongPasswordNoWarning(t *testing.T) {
	_, warn, err := Validate("Correct-Horse-Battery-9")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if warn != nil {
		t.Fatalf("unexpected warning: %+v", warn)
	}
}

func TestStrengthPenalizesHints(t *testing.T) {
	base, _, _ := Strength("Alice2024woo")
	hinted, _, _ := Strength("Alice2024woo", "alice")
	if hinted >= base {
		t.Errorf("hinted score %d should be below base %d", hinted, base)
	}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	phc, err := Hash("s3cret-passphrase")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	ok, _, err := Verify("s3cret-passphrase", phc)
	if err != nil || !ok {
		t.Fatalf("Verify = (%v, %v), want match", ok, err)
	}
	ok, _, _ = Verify("wrong", phc)
	if ok {
		t.Fatal("Verify accepted a wrong password")
	}
}
