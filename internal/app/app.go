package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/five82/lens/internal/config"
	"github.com/five82/lens/internal/download"
	"github.com/five82/lens/internal/filter"
	"github.com/five82/lens/internal/library"
	"github.com/five82/lens/internal/pixabay"
	"github.com/five82/lens/internal/prefs"
	"github.com/five82/lens/internal/state"
	"github.com/five82/lens/internal/ui"
)

// Options configure the lens application.
type Options struct {
	ConfigPath  string
	PrefsPath   string // empty uses default ~/.config/lens/prefs.toml
	APIKey      string // overrides config and environment
	DownloadDir string // overrides config
	Debug       bool
}

// Run boots the lens TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.Apply(config.Overrides{APIKey: opts.APIKey, DownloadDir: opts.DownloadDir})
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog := openLogger(cfg.LogFile, opts.Debug)
	defer closeLog()
	logger.Info("lens starting",
		"api_url", cfg.APIURL,
		"download_mode", cfg.DownloadMode,
		"download_dir", cfg.DownloadDir,
	)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", "error", err)
	}

	lib, err := library.Open(cfg.LibraryPath)
	if err != nil {
		// Downloads still work; they just are not remembered.
		logger.Warn("library unavailable", "path", cfg.LibraryPath, "error", err)
	}
	defer func() {
		if err := lib.Close(); err != nil {
			logger.Warn("close library", "error", err)
		}
	}()

	client, err := pixabay.NewClient(cfg.APIURL, cfg.APIKey,
		pixabay.WithTimeout(cfg.RequestTimeout),
		pixabay.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init pixabay client: %w", err)
	}

	downloader := newDownloader(cfg, client, lib, logger)

	feed := state.NewFeed()
	stop := watchFeed(feed, logger)
	defer stop()

	uiOpts := ui.Options{
		Context:        ctx,
		Controller:     filter.NewController(feed),
		Source:         client,
		Downloader:     downloader,
		Library:        lib,
		Logger:         logger,
		ThemeName:      userPrefs.Theme,
		Columns:        userPrefs.Columns,
		PrefsPath:      opts.PrefsPath,
		LogFile:        cfg.LogFile,
		RequestTimeout: cfg.RequestTimeout,
	}
	err = ui.Run(uiOpts)
	logger.Info("lens stopped", "error", err)
	return err
}

// newDownloader builds a downloader that shares the search client's HTTP
// client, so request_timeout and the User-Agent also apply to image
// transfers.
func newDownloader(cfg config.Config, client *pixabay.Client, lib *library.Library, logger *slog.Logger) *download.Downloader {
	opts := []download.Option{
		download.WithHTTPClient(client.HTTPClient()),
		download.WithUserAgent(client.UserAgent()),
		download.WithLogger(logger),
	}
	if lib != nil {
		opts = append(opts, download.WithRecorder(lib))
	}
	return download.New(cfg.DownloadDir, download.ParseMode(cfg.DownloadMode), opts...)
}

// openLogger returns a JSON logger writing to path. The terminal belongs to
// the TUI, so when the file cannot be opened logging is discarded.
func openLogger(path string, debug bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	w, closeFn := openLogFile(path)
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn
}

func openLogFile(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard, func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return file, func() { _ = file.Close() }
}
