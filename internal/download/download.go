package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/natefinch/atomic"

	"github.com/five82/lens/internal/library"
	"github.com/five82/lens/internal/pixabay"
)

// ErrDownload wraps every failure to save or open an image.
var ErrDownload = errors.New("download failed")

// Mode selects what "download" means.
type Mode string

const (
	// ModeFile writes the image under the download directory.
	ModeFile Mode = "file"
	// ModeBrowser hands the image URL to the system browser.
	ModeBrowser Mode = "browser"
)

// ParseMode maps a config value to a Mode, defaulting to ModeFile.
func ParseMode(value string) Mode {
	if strings.EqualFold(strings.TrimSpace(value), string(ModeBrowser)) {
		return ModeBrowser
	}
	return ModeFile
}

// Recorder stores completed downloads.
type Recorder interface {
	Record(ctx context.Context, d library.Download) (int64, error)
}

var _ Recorder = (*library.Library)(nil)

// Result describes a finished download.
type Result struct {
	ImageID int64
	Path    string
	URL     string
	Mode    Mode
	Bytes   int64
}

// ShareResult describes how Share delivered the link.
type ShareResult struct {
	URL    string
	Copied bool
}

// Downloader saves, opens and shares images.
type Downloader struct {
	dir       string
	mode      Mode
	http      *http.Client
	userAgent string
	recorder  Recorder
	logger    *slog.Logger
	openFn    func(string) error
	copyFn    func(string) error
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient sets the client used to fetch images.
func WithHTTPClient(hc *http.Client) Option {
	return func(d *Downloader) {
		if hc != nil {
			d.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with image requests.
func WithUserAgent(ua string) Option {
	return func(d *Downloader) {
		if strings.TrimSpace(ua) != "" {
			d.userAgent = ua
		}
	}
}

// WithRecorder sets where successful downloads are recorded.
func WithRecorder(r Recorder) Option {
	return func(d *Downloader) { d.recorder = r }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Downloader) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithOpener replaces the function that opens URLs in a browser.
func WithOpener(fn func(string) error) Option {
	return func(d *Downloader) { d.openFn = fn }
}

// WithClipboard replaces the function that copies text to the clipboard.
func WithClipboard(fn func(string) error) Option {
	return func(d *Downloader) { d.copyFn = fn }
}

// New returns a Downloader writing into dir.
func New(dir string, mode Mode, opts ...Option) *Downloader {
	d := &Downloader{
		dir:       dir,
		mode:      mode,
		http:      &http.Client{Timeout: 60 * time.Second},
		userAgent: "lens/0.1",
		logger:    slog.New(slog.DiscardHandler),
		openFn:    OpenInBrowser,
		copyFn:    clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mode returns the configured download mode.
func (d *Downloader) Mode() Mode {
	if d == nil {
		return ModeFile
	}
	return d.mode
}

// Save downloads the full-resolution image. In browser mode it opens the
// URL instead. A failed transfer leaves no file behind.
func (d *Downloader) Save(ctx context.Context, img pixabay.Image) (Result, error) {
	if d == nil {
		return Result{}, fmt.Errorf("%w: downloader is nil", ErrDownload)
	}
	src := img.FullURL()
	if src == "" {
		return Result{}, fmt.Errorf("%w: image %d has no full-resolution url", ErrDownload, img.ID)
	}

	var res Result
	if d.mode == ModeBrowser {
		if err := d.open(src); err != nil {
			return Result{}, fmt.Errorf("%w: open browser: %w", ErrDownload, err)
		}
		res = Result{ImageID: img.ID, URL: src, Mode: ModeBrowser}
	} else {
		written, path, err := d.fetch(ctx, src, img)
		if err != nil {
			d.logger.Warn("download failed", "image_id", img.ID, "url", src, "error", err)
			return Result{}, err
		}
		res = Result{ImageID: img.ID, Path: path, URL: src, Mode: ModeFile, Bytes: written}
	}

	d.record(ctx, res)
	d.logger.Info("download complete", "image_id", res.ImageID, "mode", string(res.Mode), "path", res.Path, "bytes", res.Bytes)
	return res, nil
}

// Share copies the full-resolution URL to the clipboard, falling back to
// opening the image page in a browser.
func (d *Downloader) Share(img pixabay.Image) (ShareResult, error) {
	if d == nil {
		return ShareResult{}, fmt.Errorf("downloader is nil")
	}
	link := img.FullURL()
	if link != "" && d.copyFn != nil {
		err := d.copyFn(link)
		if err == nil {
			return ShareResult{URL: link, Copied: true}, nil
		}
		d.logger.Debug("clipboard unavailable", "error", err)
	}
	page := strings.TrimSpace(img.PageURL)
	if page == "" {
		page = link
	}
	if page == "" {
		return ShareResult{}, fmt.Errorf("image %d has no shareable url", img.ID)
	}
	if err := d.open(page); err != nil {
		return ShareResult{}, fmt.Errorf("could not copy or open url: %w", err)
	}
	return ShareResult{URL: page}, nil
}

// Open shows rawURL in the system browser.
func (d *Downloader) Open(rawURL string) error {
	if d == nil {
		return fmt.Errorf("downloader is nil")
	}
	return d.open(rawURL)
}

func (d *Downloader) open(rawURL string) error {
	if d.openFn == nil {
		return fmt.Errorf("no browser opener configured")
	}
	return d.openFn(rawURL)
}

func (d *Downloader) fetch(ctx context.Context, src string, img pixabay.Image) (int64, string, error) {
	name := filepath.Base(img.FileName())
	if name == "." || name == ".." || name == string(filepath.Separator) {
		name = fmt.Sprintf("%d.jpg", img.ID)
	}
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return 0, "", fmt.Errorf("%w: create download dir: %w", ErrDownload, err)
	}
	path := filepath.Join(d.dir, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return 0, "", fmt.Errorf("%w: build request: %w", ErrDownload, err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.http.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %w", ErrDownload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, "", fmt.Errorf("%w: status %d", ErrDownload, resp.StatusCode)
	}

	counter := &countingReader{r: resp.Body}
	if err := atomic.WriteFile(path, counter); err != nil {
		return 0, "", fmt.Errorf("%w: write %s: %w", ErrDownload, path, err)
	}
	return counter.n, path, nil
}

func (d *Downloader) record(ctx context.Context, res Result) {
	if d.recorder == nil {
		return
	}
	_, err := d.recorder.Record(ctx, library.Download{
		ImageID:   res.ImageID,
		Path:      res.Path,
		SourceURL: res.URL,
		Mode:      string(res.Mode),
	})
	if err != nil {
		d.logger.Warn("record download failed", "image_id", res.ImageID, "error", err)
	}
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// OpenInBrowser opens rawURL with the platform's default handler.
func OpenInBrowser(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Run()
}
