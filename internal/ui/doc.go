// Package ui provides the Bubble Tea terminal front end for bazaar.
//
// # Architecture Overview
//
// The UI never fetches or formats market data itself. Every panel, the
// analysis header, and the producer list are rendered by the dashboard into
// a surface.Store; the UI reads a snapshot of that store on each render and
// draws each surface into a titled box. Fetches run as tea.Cmds that call the
// dashboard's loaders and report back with a loadedMsg. Writes made outside
// the UI goroutine (the background poller) are picked up by a one-second tick
// that compares store revisions.
//
// # Package Structure
//
//   - app.go: Model, Update, key and mouse routing, commands, and Run
//   - header.go: status bar, refresh button, tab bar, and command bar
//   - content.go: tab layouts, surface rendering, and titled boxes
//   - modal.go: blocking alert shown after a manual refresh
//   - help.go: keyboard shortcut overlay
//   - theme.go: color palettes and chart styles
//   - keys.go: key bindings
//   - layout.go: screen geometry and timing constants
//
// # Screen Layout
//
//	row 0   bazaar  ● API  Updated: 12:00:01 (now)        [↻ Refresh Prices]
//	row 1    1 Market  2 Logistics  3 Analysis             / Search items...
//	        (search results, when shown)
//	        boxes of the active tab, scrollable
//	last    command hints and theme name
//
// Mouse hit-testing uses the same geometry helpers the renderer uses
// (buttonSpan, tabSpans, searchX), so clicks stay aligned with what is drawn.
//
// # Refresh Flow
//
// Pressing r or clicking the button disables the button and shows
// "Fetching..." while the server re-fetches prices. The label is restored
// when the request returns. Success shows a confirmation and reloads every
// panel and the default item; failure shows a blocking alert with the
// server message or the transport error.
package ui
