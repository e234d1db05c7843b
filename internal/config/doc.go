// Package config loads shikidesk's startup configuration from TOML.
//
// # Location
//
// Load takes an explicit path or, when it is empty, reads
// ~/.config/shikidesk/config.toml. A leading "~" in either path is expanded
// to the user's home directory and the result is made absolute.
//
// # Keys
//
//	api_origin            site origin of the catalog (https://shikimori.one)
//	user_agent            User-Agent sent to the catalog (shikidesk/0.1)
//	bridge_bind           listen address of the JSON bridge (127.0.0.1:7489)
//	log_level             trace, debug, info, warn or error (info)
//	log_dir               directory of shikidesk.log (~/.local/share/shikidesk/logs)
//	locale                language of error messages, ru or en (ru)
//	accent_single_flight  share one poster fetch between concurrent misses (false)
//
// # Defaults
//
// A missing file is not an error: every key takes its default. Keys that are
// present but blank also fall back to their defaults, and values are
// whitespace-trimmed. A malformed file is reported as "parse config".
//
// User-editable display settings (theme, adult content, history) are not part
// of this file; they live in package prefs and are written back by the app.
package config
