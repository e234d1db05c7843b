// Package app is the composition root of shikidesk.
//
// # Overview
//
// Run loads the config and user preferences, builds the process-wide
// services once and hands them to one of two front ends:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read ~/.config/shikidesk/config.toml
//	       ├─────> logging.New()        Log file (browser) or stderr (serve)
//	       ├─────> prefs.NewStore()     User settings and search history
//	       ├─────> shiki.NewClient()    GraphQL and REST transport
//	       ├─────> catalog.NewService() Validation, mapping, error translation
//	       ├─────> accent.NewCache()    Poster accent colors
//	       │
//	       ├─────> ui.Run()             Terminal browser (blocks), or
//	       └─────> bridge.Server        Local JSON API (blocks)
//
// There are no package-level singletons: one client and one accent cache are
// created per process and passed by reference.
//
// # Error Handling
//
// Fatal errors are returned from Run: an unreadable config, an invalid API
// origin, a log file that cannot be opened, or a bridge address that cannot
// be bound. Request failures never end the process; they surface as
// apperr.Error values in the browser status line or the bridge response.
package app
