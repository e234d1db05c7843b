// Package shiki provides an HTTP client for the Shikimori catalog API.
//
// # Overview
//
// Shikimori exposes the same entities through two protocols. The GraphQL
// endpoint returns typed, selectable records; the older REST endpoints return
// loosely typed JSON where ids and scores may be numbers or strings. The
// client speaks both and returns the raw shapes; canonical mapping lives in
// the catalog package.
//
// # Architecture
//
//   - client.go: request execution, status classification, endpoint methods
//   - queries.go: GraphQL documents, field sets and search parameter structs
//   - types.go: GraphQL record shapes
//   - rest_types.go: REST record shapes
//   - errors.go: the closed Failure family
//
// # Client Usage
//
//	client, err := shiki.NewClient("https://shikimori.one",
//		shiki.WithUserAgent("shikidesk/0.1"))
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	animes, err := client.Animes(ctx, shiki.AnimeParams{Search: "frieren", Limit: 20})
//
// # API Endpoints
//
//   - POST /api/graphql: animes, mangas, characters, people
//   - GET /api/characters/:id, GET /api/people/:id
//   - GET /api/genres, GET /api/studios, GET /api/publishers
//
// The single-record REST endpoints report 404 as (nil, nil) so callers can
// distinguish a missing record from a failure.
//
// # Error Handling
//
// Every method returns nil or a Failure:
//
//   - *TransportError: request could not be built or executed
//   - *QueryError: the GraphQL layer rejected the query
//   - *RateLimitError: HTTP 429, with the parsed Retry-After hint
//   - *StatusError: any other non-2xx status
//   - *DecodeError: the body did not match the expected shape
//
// # Timeouts and Retries
//
// The client sets no timeout of its own and never retries. Callers bound a
// request through its context.
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package shiki
