// Package market provides an HTTP client for the Pax Dei advisor API.
//
// # Overview
//
// The advisor backend exposes read-only JSON endpoints for crafting margins,
// market liquidity, logistics (arbitrage, client orders, suppliers), and
// per-item history, plus one write endpoint that triggers a server-side
// price refresh. This package owns transport, decoding, and the typed record
// shapes for every endpoint.
//
// # Fetch contract
//
// Read endpoints go through Client.Fetch, which never returns an error:
// network failures, non-2xx statuses, and malformed bodies are logged and
// collapsed into "no data". The typed wrappers (Crafting, Liquidity, ...)
// return nil in that case. The dashboard reacts to a failed fetch exactly as
// it reacts to an empty one, by showing the empty state, so the distinction
// is only kept in the logs and in the Health tracker.
//
// TriggerRefresh is the exception: it returns an error because the refresh
// is user-initiated and the user is told explicitly how it went.
//
// # Records
//
// Record fields use Number and Text, which decode leniently from JSON
// numbers, strings, and null. The backend builds responses from pandas frames
// and CSV files, so the same column can arrive as 12, "12", "", or null
// depending on the data source; a record with an odd field still decodes and
// the odd field simply reports !Valid().
//
// # Escaping
//
// Search queries are query-escaped and item names are path-escaped by the
// wrappers before they reach the URL. Fetch itself takes an already
// formatted endpoint.
package market
