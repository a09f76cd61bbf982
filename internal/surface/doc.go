// Package surface holds the dashboard's named display regions.
//
// A surface is a region identified by a stable id ("crafting-container",
// "analysis-title", ...) whose content is always replaced wholesale. The
// table engine, panel loaders, and the analysis orchestrator write into a
// Store; the TUI, the text report, and the xlsx export only read from it.
// Ids are boundary contracts shared by writers and readers; a write to an id
// that was never declared is dropped.
//
// Content is deliberately plain data (a Kind plus text, a Grid, or a list of
// entries). Styling happens in the front ends.
package surface
