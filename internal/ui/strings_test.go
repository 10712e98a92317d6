package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		value string
		limit int
		want  string
	}{
		{"hello world", 8, "hello..."},
		{"short", 10, "short"},
		{"abcdef", 2, "ab"},
		{"  padded  ", 0, "padded"},
	}
	for _, tt := range tests {
		if got := truncate(tt.value, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("abcdefghij", 5); got != "ab…ij" {
		t.Fatalf("truncateMiddle = %q, want %q", got, "ab…ij")
	}
	if got := truncateMiddle("/tmp/a.jpg", 40); got != "/tmp/a.jpg" {
		t.Fatalf("short values should be unchanged, got %q", got)
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"orientation":    "Orientation",
		"editors_choice": "Editors Choice",
		"ILLUSTRATION":   "Illustration",
		"":               "",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{950, "950"},
		{1000, "1k"},
		{1200, "1.2k"},
		{3_400_000, "3.4M"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.n); got != tt.want {
			t.Errorf("formatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFitLine(t *testing.T) {
	if got := fitLine("abc", 5); got != "abc  " {
		t.Fatalf("fitLine pad = %q", got)
	}
	if got := fitLine("abcdefgh", 4); got != "abcd" {
		t.Fatalf("fitLine cut = %q", got)
	}
}
