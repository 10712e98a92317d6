package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/five82/lens/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lens", flag.ContinueOnError)
	configPath := fs.String("config", "", "override config path (default ~/.config/lens/config.toml)")
	prefsPath := fs.String("prefs", "", "override prefs path (default ~/.config/lens/prefs.toml)")
	apiKey := fs.String("api-key", "", "Pixabay API key (overrides config and LENS_API_KEY)")
	downloadDir := fs.String("download-dir", "", "directory for saved images")
	debug := fs.Bool("debug", false, "write debug entries to the log file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "lens: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		PrefsPath:   *prefsPath,
		APIKey:      *apiKey,
		DownloadDir: *downloadDir,
		Debug:       *debug,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "lens: %v\n", err)
		return 1
	}
	return 0
}
