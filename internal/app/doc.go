// Package app is the composition layer between the fetch layer, the
// renderers, and the front ends.
//
// # Overview
//
// Dashboard owns one surface store and every writer into it: the panel
// loaders, the tab controller, and the item analysis orchestrator. The TUI,
// the text report, and the xlsx export all drive a Dashboard and read its
// store; none of them talk to the advisor API directly.
//
// # Components
//
//   - dashboard.go: Dashboard construction, LoadPanels/LoadAll, and the manual
//     price refresh
//   - poller.go: background goroutine that reloads panels periodically
//
// # Data Flow
//
//	┌──────────────┐
//	│ Bootstrap()  │ client + dashboard
//	└──────┬───────┘
//	       │
//	       ├─────> LoadAll()         panels + default item, concurrently
//	       ├─────> StartPoller()     background panel reloads
//	       └─────> front end         reads Store.Snapshot()
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> wait interval (backoff if offline) │
//	│  ├─> LoadPanels()                       │
//	│  └─> store revision bumps               │
//	│      └─> UI tick re-renders             │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller reloads the five table panels every poll interval (default five
// minutes). It never re-runs the item analysis so a background reload cannot
// pull the user off the tab they are on. While the API reports offline the
// delay doubles after each failed reload, capped at maxBackoff, and returns
// to the base interval after the first success.
//
// # Manual Refresh
//
// TriggerRefresh asks the advisor to re-scrape market prices and reports an
// outcome for the user. Only one refresh may be in flight; a second request
// reports Busy. Reloading after a successful refresh is the caller's job so
// that the front end can show the outcome first.
package app
