// Package state holds the search session shared by request goroutines and the
// terminal browser.
//
// # Session model
//
// A session is one search, identified by a key the UI builds from the content
// tab and the query text. Begin starts a new session and returns a Token; the
// goroutine that performs the request hands the token back with Apply or
// Fail. BeginMore continues the current session with the next page.
//
//	Begin("anime:naruto")       → Token{page 1}
//	Apply(tok, cards, 20)       → Cards = cards, HasMore = len(cards) == 20
//	BeginMore()                 → Token{page 2}
//	Apply(tok, more, 20)        → Cards = cards + more
//
// Starting a new search makes every outstanding token stale. Apply and Fail
// with a stale token do nothing and report false, so a slow response for an
// old query can never overwrite the results of the current one.
//
// # Concurrency
//
// Store uses a sync.RWMutex held only while copying. Snapshot returns a value
// with its own copy of the card slice, so the UI may keep it while new results
// arrive. The zero Store is ready to use.
package state
