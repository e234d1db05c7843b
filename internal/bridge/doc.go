// Package bridge exposes the catalog facade, the accent cache and the user
// settings as a local JSON API for a webview frontend.
//
// Routes live under /api. Searches take search, page (default 1) and limit
// (default 20) plus per-collection filters; non-blank searches are added to
// the search history. Failures are rendered as the {kind, message,
// retry_after} body of apperr.Error with a status per kind:
//
//	validation                              400
//	not_found                               404
//	rate_limit                              429 (+ Retry-After)
//	upstream_api, protocol, serialization   502
//	transport                               503
//
// Every request gets a uuid request id, echoed in X-Request-ID and logged
// with the method, path, status and elapsed time.
package bridge
