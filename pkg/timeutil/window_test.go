package timeutil

import "testing"

func TestParseDays(t *testing.T) {
	tests := map[string]int{
		"3":      3,
		"3d":     3,
		"1w":     7,
		"1w2d":   9,
		" 2 wk ": 14,
		"10days": 10,
	}
	for in, want := range tests {
		got, err := ParseDays(in)
		if err != nil {
			t.Fatalf("ParseDays(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseDays(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestParseDaysInvalid(t *testing.T) {
	for _, in := range []string{"", "noop", "0", "3h", "0d0w"} {
		if _, err := ParseDays(in); err == nil {
			t.Fatalf("ParseDays(%q): expected error", in)
		}
	}
}
