package strutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"tiny limit skips ellipsis", "hello", 3, "hel"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
		{"empty input", "", 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  a \t b\n\nc  "); got != "a b c" {
		t.Errorf("CollapseSpace = %q", got)
	}
	if got := CollapseSpace("   "); got != "" {
		t.Errorf("all-space input = %q, want empty", got)
	}
}

func TestContainsAnyFold(t *testing.T) {
	if !ContainsAnyFold("The QUICK fox", "quick") {
		t.Error("case-insensitive match failed")
	}
	if ContainsAnyFold("plain text", "missing", "absent") {
		t.Error("false positive")
	}
	if !ContainsAnyFold("abc", "x", "y", "BC") {
		t.Error("later candidate not tried")
	}
}

func TestEqualAnyFold(t *testing.T) {
	if !EqualAnyFold("  Summary ", "summary") {
		t.Error("trimmed fold match failed")
	}
	if EqualAnyFold("summary_large_image", "summary") {
		t.Error("substring should not match")
	}
}
