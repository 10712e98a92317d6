package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/lens/internal/library"
	"github.com/five82/lens/internal/pixabay"
)

type memRecorder struct {
	got []library.Download
	err error
}

func (m *memRecorder) Record(_ context.Context, d library.Download) (int64, error) {
	m.got = append(m.got, d)
	return int64(len(m.got)), m.err
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":         ModeFile,
		"file":     ModeFile,
		"Browser ": ModeBrowser,
		"bogus":    ModeFile,
	}
	for in, want := range cases {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSave_WritesFileAndRecords(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(server.Close)

	dir := filepath.Join(t.TempDir(), "out")
	rec := &memRecorder{}
	d := New(dir, ModeFile, WithRecorder(rec), WithUserAgent("lens/test"))

	img := pixabay.Image{
		ID:            42,
		PreviewURL:    "https://cdn.pixabay.com/photo/2024/fox-42_150.jpg",
		LargeImageURL: server.URL + "/large.jpg",
	}
	res, err := d.Save(context.Background(), img)
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	wantPath := filepath.Join(dir, "fox-42_150.jpg")
	if res.Path != wantPath || res.Bytes != int64(len("jpeg-bytes")) || res.Mode != ModeFile {
		t.Fatalf("Save result = %+v", res)
	}
	data, err := os.ReadFile(wantPath)
	if err != nil || string(data) != "jpeg-bytes" {
		t.Fatalf("file content = %q, %v", data, err)
	}
	if gotUA != "lens/test" {
		t.Fatalf("User-Agent = %q, want lens/test", gotUA)
	}

	want := []library.Download{{ImageID: 42, Path: wantPath, SourceURL: img.LargeImageURL, Mode: "file"}}
	if diff := cmp.Diff(want, rec.got); diff != "" {
		t.Fatalf("recorded downloads mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_FailuresLeaveNoFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.jpg":
			http.NotFound(w, r)
		case "/truncated.jpg":
			w.Header().Set("Content-Length", "1000")
			_, _ = w.Write([]byte("partial"))
		}
	}))
	t.Cleanup(server.Close)

	for _, name := range []string{"missing.jpg", "truncated.jpg"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			rec := &memRecorder{}
			d := New(dir, ModeFile, WithRecorder(rec))

			_, err := d.Save(context.Background(), pixabay.Image{ID: 1, LargeImageURL: server.URL + "/" + name})
			if !errors.Is(err, ErrDownload) {
				t.Fatalf("Save error = %v, want ErrDownload", err)
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Fatalf("download dir has %d entries after failure, want 0", len(entries))
			}
			if len(rec.got) != 0 {
				t.Fatalf("failed download was recorded: %+v", rec.got)
			}
		})
	}
}

func TestSave_NoURL(t *testing.T) {
	d := New(t.TempDir(), ModeFile)
	if _, err := d.Save(context.Background(), pixabay.Image{ID: 3}); !errors.Is(err, ErrDownload) {
		t.Fatalf("Save error = %v, want ErrDownload", err)
	}
}

func TestSave_BrowserMode(t *testing.T) {
	var opened []string
	rec := &memRecorder{}
	d := New(t.TempDir(), ModeBrowser, WithRecorder(rec), WithOpener(func(u string) error {
		opened = append(opened, u)
		return nil
	}))

	res, err := d.Save(context.Background(), pixabay.Image{ID: 5, WebformatURL: "https://pixabay.com/get/web.jpg"})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"https://pixabay.com/get/web.jpg"}, opened); diff != "" {
		t.Fatalf("opened mismatch (-want +got):\n%s", diff)
	}
	if res.Mode != ModeBrowser || res.Path != "" || len(rec.got) != 1 || rec.got[0].Mode != "browser" {
		t.Fatalf("result = %+v recorded = %+v", res, rec.got)
	}

	failing := New(t.TempDir(), ModeBrowser, WithOpener(func(string) error { return errors.New("no display") }))
	if _, err := failing.Save(context.Background(), pixabay.Image{ID: 5, WebformatURL: "https://x/y.jpg"}); !errors.Is(err, ErrDownload) {
		t.Fatalf("Save error = %v, want ErrDownload", err)
	}
}

func TestShare(t *testing.T) {
	img := pixabay.Image{ID: 9, PageURL: "https://pixabay.com/photos/fox-9/", LargeImageURL: "https://cdn/large.jpg"}

	var copied, opened []string
	copyOK := func(s string) error { copied = append(copied, s); return nil }
	copyFail := func(string) error { return errors.New("no clipboard") }
	open := func(s string) error { opened = append(opened, s); return nil }

	res, err := New("", ModeFile, WithClipboard(copyOK), WithOpener(open)).Share(img)
	if err != nil || !res.Copied || res.URL != img.LargeImageURL {
		t.Fatalf("Share = %+v, %v; want copied large url", res, err)
	}

	res, err = New("", ModeFile, WithClipboard(copyFail), WithOpener(open)).Share(img)
	if err != nil || res.Copied || res.URL != img.PageURL {
		t.Fatalf("Share fallback = %+v, %v; want opened page url", res, err)
	}
	if diff := cmp.Diff([]string{img.LargeImageURL}, copied); diff != "" {
		t.Fatalf("copied mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{img.PageURL}, opened); diff != "" {
		t.Fatalf("opened mismatch (-want +got):\n%s", diff)
	}

	openFail := func(string) error { return errors.New("no browser") }
	if _, err := New("", ModeFile, WithClipboard(copyFail), WithOpener(openFail)).Share(img); err == nil {
		t.Fatalf("Share returned nil error when both paths failed")
	}
}

func TestNilDownloader(t *testing.T) {
	var d *Downloader
	if _, err := d.Save(context.Background(), pixabay.Image{}); !errors.Is(err, ErrDownload) {
		t.Fatalf("nil Save error = %v", err)
	}
	if _, err := d.Share(pixabay.Image{}); err == nil {
		t.Fatalf("nil Share returned nil error")
	}
	if d.Mode() != ModeFile {
		t.Fatalf("nil Mode = %q", d.Mode())
	}
}
