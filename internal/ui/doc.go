// Package ui provides the terminal catalog browser for shikidesk.
//
// # Architecture Overview
//
// The browser is a Bubble Tea program. Model holds all screen state and is
// driven by key presses and by messages produced from request commands:
//
//   - searchResultMsg: a page of cards for the search session in state.Store
//   - detailMsg: the full record behind the opened card
//   - accentMsg: the poster accent color used to tint the detail title bar
//
// Every request carries the session token or detail sequence it was issued
// for, so late results from a superseded search or a closed detail page are
// dropped.
//
// # Package Structure
//
//   - model.go: Model, messages, request commands and Run
//   - view.go: header tabs, search bar, result list, status line and help
//   - detail.go: anime, manga, character and person pages
//   - theme.go: palettes, accent tinting and theme resolution
//   - keys.go: key bindings
//   - strings.go: text fitting and markup stripping
//
// # Key Bindings
//
//   - /: Edit the search query, enter to run it, esc to cancel
//   - tab, shift+tab: Switch between anime, manga, characters and people
//   - j/k, g/G, pgup/pgdown: Move through results
//   - m: Load the next page (also triggered by moving past the last row)
//   - enter: Open the selected card, esc to return
//   - T: Cycle dark, light and system themes (saved to preferences)
//   - ?: Toggle help
//   - q or Ctrl+C: Exit
//
// Queries run from the search bar are added to the search history kept in
// preferences and offered as completions when editing the query.
package ui
