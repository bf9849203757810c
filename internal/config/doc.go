// Package config loads logtail defaults and resolves them against the
// command line into the flat Settings a session runs with.
//
// # Overview
//
// Two layers feed a session. The optional TOML file holds per-user defaults;
// command-line flags override them for one run. Resolve merges the two and
// validates the result before any file is opened.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided (--config), use it
//  2. Otherwise, use ~/.config/logtail/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Default Values
//
//   - lines: 10
//   - color: true
//   - line_numbers: false
//   - follow: true
//   - poll_interval: 1s
//   - watch: fsnotify
//   - identity: inode
//
// # TOML Format
//
//	lines = 25
//	color = true
//	line_numbers = false
//	follow = true
//	poll_interval = "500ms"
//	watch = "poll"          # fsnotify | poll
//	identity = "inode"      # inode | fingerprint
//	diag_file = "~/.local/state/logtail/diag.log"
//
// All fields are optional. String values are trimmed; watch and identity are
// lowercased; diag_file is tilde-expanded.
//
// # Resolution
//
// Resolve applies Overrides on top of a Config. Pointer fields in Overrides
// are set only for flags the user actually passed, so an unset flag never
// masks a config value. Two rules are applied during resolution:
//
//   - HighlightMode is on when --highlight is given or a filter or query is
//     present.
//   - Color is off when the config disables it, --no-color is given, or the
//     NO_COLOR environment variable is set.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and unparseable durations
//
// Resolve returns errors for a missing file argument, a negative line count,
// a non-positive poll interval, and unknown watch or identity modes.
package config
