package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParse(t *testing.T) {
	lines := []string{
		`{"time":"2025-10-08T21:01:05.123Z","level":"INFO","msg":"feed page loaded","page":2,"items":50,"query":{"q":"cat"}}`,
		``,
		`plain text line`,
		`{"time":"2025-10-08T21:01:06Z","level":"WARN","msg":"download failed","error":"status 404","retry":false}`,
		`{broken`,
	}

	got := Parse(lines)
	want := []Entry{
		{
			Time:    time.Date(2025, 10, 8, 21, 1, 5, 123000000, time.UTC),
			Level:   "INFO",
			Message: "feed page loaded",
			Attrs: []Attr{
				{Key: "items", Value: "50"},
				{Key: "page", Value: "2"},
				{Key: "query.q", Value: "cat"},
			},
		},
		{Message: "plain text line"},
		{
			Time:    time.Date(2025, 10, 8, 21, 1, 6, 0, time.UTC),
			Level:   "WARN",
			Message: "download failed",
			Attrs: []Attr{
				{Key: "error", Value: "status 404"},
				{Key: "retry", Value: "false"},
			},
		},
		{Message: "{broken"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryString(t *testing.T) {
	if got := (Entry{Message: "raw"}).String(); got != "raw" {
		t.Fatalf("String = %q, want raw", got)
	}
	e := Entry{Level: "ERROR", Message: "boom", Attrs: []Attr{{Key: "k", Value: "v"}}}
	if got := e.String(); got != "ERROR boom k=v" {
		t.Fatalf("String = %q", got)
	}
}
