// Package config loads bazaar's TOML configuration.
//
// # Configuration Discovery
//
// Load reads the given path, or ~/.config/bazaar/config.toml when the path
// is empty. A missing file is not an error: every field has a default so the
// dashboard works against a local advisor without any setup. Fields present
// in the file override the defaults; blank strings are treated as absent.
//
// # TOML Format
//
//	api_base = "http://127.0.0.1:8000"
//	default_item = "Charcoal"
//	hub_zone = "Kerys"
//	crafting_top = 15
//	liquidity_top = 10
//	poll_seconds = 300            # 0 disables background reloads
//	request_timeout_seconds = 15  # 0 disables the per-request timeout
//	log_file = "~/.local/state/bazaar/bazaar.log"
//	log_level = "INFO"
//
// Tilde expansion is applied to the config path and to log_file.
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML parse failures, and values
// rejected by Validate. Command-line flags are applied by the CLI after Load.
package config
