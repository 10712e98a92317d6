package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTemp(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "nested", "library.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

func TestLibrary_RecordAndQuery(t *testing.T) {
	lib := openTemp(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Download{
		{ImageID: 10, Path: "/tmp/a.jpg", SourceURL: "https://cdn/a.jpg", Mode: "file", CreatedAt: base},
		{ImageID: 20, SourceURL: "https://cdn/b.jpg", Mode: "browser", CreatedAt: base.Add(time.Minute)},
		{ImageID: 10, Path: "/tmp/a.jpg", SourceURL: "https://cdn/a.jpg", Mode: "file", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, d := range entries {
		if _, err := lib.Record(ctx, d); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	has, err := lib.Has(ctx, 10)
	if err != nil || !has {
		t.Fatalf("Has(10) = %v, %v; want true", has, err)
	}
	has, err = lib.Has(ctx, 99)
	if err != nil || has {
		t.Fatalf("Has(99) = %v, %v; want false", has, err)
	}

	ids, err := lib.DownloadedIDs(ctx)
	if err != nil {
		t.Fatalf("DownloadedIDs returned error: %v", err)
	}
	if diff := cmp.Diff(map[int64]bool{10: true, 20: true}, ids); diff != "" {
		t.Fatalf("DownloadedIDs mismatch (-want +got):\n%s", diff)
	}

	recent, err := lib.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent returned %d rows, want 2", len(recent))
	}
	if recent[0].ImageID != 10 || recent[1].ImageID != 20 || recent[1].Mode != "browser" {
		t.Fatalf("Recent order = %+v", recent)
	}
	if !recent[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("CreatedAt = %v, want %v", recent[0].CreatedAt, base.Add(2*time.Minute))
	}
}

func TestLibrary_ReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	lib, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := lib.Record(context.Background(), Download{ImageID: 1, SourceURL: "u", Mode: "file"}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	_ = lib.Close()

	lib, err = Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer lib.Close()
	if has, _ := lib.Has(context.Background(), 1); !has {
		t.Fatalf("record lost after reopen")
	}
}

func TestLibrary_NilIsNoop(t *testing.T) {
	var lib *Library
	ctx := context.Background()
	if _, err := lib.Record(ctx, Download{ImageID: 1}); err != nil {
		t.Fatalf("nil Record returned error: %v", err)
	}
	if has, err := lib.Has(ctx, 1); err != nil || has {
		t.Fatalf("nil Has = %v, %v", has, err)
	}
	ids, err := lib.DownloadedIDs(ctx)
	if err != nil || len(ids) != 0 {
		t.Fatalf("nil DownloadedIDs = %v, %v", ids, err)
	}
	if recent, err := lib.Recent(ctx, 5); err != nil || recent != nil {
		t.Fatalf("nil Recent = %v, %v", recent, err)
	}
	if err := lib.Close(); err != nil {
		t.Fatalf("nil Close returned error: %v", err)
	}
}
