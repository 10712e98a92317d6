// Package app is the composition root for lens.
//
// Run loads the TOML config and preferences, opens the JSON log file and
// the download library, builds the Pixabay client and the downloader, and
// hands everything to the Bubble Tea program in package ui. It blocks until
// the user quits or the context is cancelled.
//
// # Startup
//
//  1. config.Load, then command-line overrides, then Validate
//  2. prefs.Load (falls back to defaults)
//  3. slog JSON handler writing to log_file (Debug level with --debug)
//  4. library.Open; on failure downloads still work but are not recorded
//  5. pixabay.NewClient and download.New share the logger and User-Agent
//  6. state.NewFeed, watched by watchFeed for the Activity log
//  7. ui.Run
//
// # Errors
//
// Configuration problems and a missing API key are returned from Run.
// Everything after startup (failed searches, downloads, library writes) is
// logged and shown in the UI instead.
package app
