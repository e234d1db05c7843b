// Package apperr defines the error taxonomy surfaced by the catalog layer.
//
// Every failure that leaves the catalog facade or the accent cache is a
// single *Error carrying one of seven kinds:
//
//   - validation: a caller-supplied parameter is out of range
//   - transport: network-level failure, including timeouts and cancellation
//   - protocol: the GraphQL layer rejected a well-formed request
//   - rate_limit: upstream asked for backoff; RetryAfter may carry a hint
//   - upstream_api: any other non-2xx response, status embedded in the message
//   - serialization: the response body could not be parsed
//   - not_found: a by-id lookup returned nothing (synthesized locally)
//
// Translation is total. Errors outside the shiki failure family, including
// context errors, are classified as transport.
//
// Messages are localized by Translator; Russian is the default.
package apperr
