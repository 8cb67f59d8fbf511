package catalog

import "testing"

func TestMatch(t *testing.T) {
	names := []string{"Amoxicillin", "Meloxicam", "Dipyrone"}

	if got := Match(names, "  "); len(got) != 3 {
		t.Fatalf("expected blank query to match all, got %v", got)
	}
	got := Match(names, "OXIC")
	if len(got) != 2 || got[0] != "Amoxicillin" || got[1] != "Meloxicam" {
		t.Fatalf("expected ordered case-insensitive matches, got %v", got)
	}
	if got := Match(names, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}

func TestOr(t *testing.T) {
	if got := Or(nil); len(got) != len(Medicines) {
		t.Fatalf("expected built-in catalog")
	}
	if got := Or([]string{"A"}); len(got) != 1 || got[0] != "A" {
		t.Fatalf("expected configured catalog, got %v", got)
	}
}
