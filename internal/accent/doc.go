// Package accent derives a representative accent color from a poster image
// and caches it per URL.
//
// Extract is a pure function over decoded pixels. Cache wraps the
// fetch, bound-check, decode and extract pipeline behind a process-lifetime
// map. Each fetch is bounded by FetchTimeout, and responses larger than
// MaxImageBytes yield Fallback without being downloaded in full.
package accent
