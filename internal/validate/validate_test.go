package validate

import "testing"

func TestRequireBounded(t *testing.T) {
	got, err := RequireBounded("username", "  alice  ", 3, 40)
	if err != nil || got != "alice" {
		t.Fatalf("got (%q, %v)", got, err)
	}
	if _, err := RequireBounded("username", "ab", 3, 40); err == nil {
		t.Fatal("want error for too-short value")
	}
	if _, err := RequireBounded("username", "   ", 3, 40); err == nil {
		t.Fatal("want error for blank value")
	}
}

func TestRequireEmail(t *testing.T) {
	if got, err := RequireEmail(" alice@example.com "); err != nil || got != "alice@example.com" {
		t.Fatalf("got (%q, %v)", got, err)
	}
	for _, bad := range []string{"", "alice", "@example.com", "alice@", "alice@localhost"} {
		if _, err := RequireEmail(bad); err == nil {
			t.Errorf("RequireEmail(%q) = nil, want error", bad)
		}
	}
}
