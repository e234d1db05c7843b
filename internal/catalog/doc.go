// Package catalog normalizes Shikimori records into one canonical model and
// exposes the catalog operations used by the UI surfaces.
//
// # Canonical Mapper
//
// Upstream serves the same entities through a typed GraphQL protocol and a
// loosely typed REST protocol. map_query.go and map_rest.go each parse one
// shape and funnel into the shared constructors of map_common.go, so there is
// a single definition of every canonical entity (model.go).
//
// Mapping never fails. The policies it applies:
//
//   - Missing URLs become <origin>/<collection>/<id>.
//   - Poster URLs beginning with "/" are joined onto the origin; preview falls
//     back to main; PosterURL prefers main, then preview, then original.
//   - A role edge whose person or character is missing gets a sentinel with
//     ID 0 and Name "Unknown". Callers treat ID 0 as unresolved.
//   - REST ids and scores may be numbers or strings. A score of "", "0" or
//     "0.0" is absent.
//   - Comma-separated alternative names are split into trimmed synonyms.
//   - A related edge carries exactly one stub. Anime wins when upstream sends
//     both, and edges with neither are dropped.
//   - Absent collections stay nil; present but empty collections are empty
//     slices. JSON keeps the distinction as null versus [].
//
// # Service
//
// Service is the facade. Every operation validates its input (page >= 1,
// 1 <= limit <= MaxLimit, id >= 1), performs one upstream call, maps the
// result and translates failures through apperr exactly once. By-id lookups
// that find nothing return a not_found error. The censorship flag sent
// upstream is the negation of Settings.AllowAdultContent.
//
// Nothing is cached here.
package catalog
