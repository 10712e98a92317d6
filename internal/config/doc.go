// Package config handles loading the lens configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/lens/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. LENS_API_KEY, then PIXABAY_API_KEY, replace api_key when set
//
// Command-line flags are applied last by the caller through Config.Apply.
//
// # Default Values
//
//   - Config file: ~/.config/lens/config.toml
//   - API endpoint: https://pixabay.com/api/
//   - Download directory: ~/Pictures/lens
//   - Download mode: file
//   - Library database: ~/.local/share/lens/library.db
//   - Log file: ~/.local/state/lens/lens.log
//   - Request timeout: 10s
//
// # TOML Format
//
//	api_key = "12345-abcdef"
//	api_url = "https://pixabay.com/api/"
//	download_dir = "~/Pictures/lens"
//	download_mode = "file"        # or "browser"
//	library_path = "~/.local/share/lens/library.db"
//	log_file = "~/.local/state/lens/lens.log"
//	request_timeout_seconds = 10
//
// Every field is optional. Values are trimmed and tilde expansion is
// performed on paths.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and unknown download modes
//
// Validate reports ErrMissingAPIKey. lens cannot talk to the API without a
// key, so the caller treats it as a startup failure.
package config
