// Package table is the dashboard's tabular rendering engine.
//
// Columns are descriptors (header plus render function) over a record type,
// so each panel declares its table as data. Render turns a record slice into a
// surface.Grid and writes it into a surface, with two isolation boundaries:
//
//   - per cell: a render function that panics (typically on a field the
//     backend left out) yields an "Err" cell and a log entry carrying the
//     offending record; the rest of the row and the table render normally;
//   - per table: a failure outside the cell boundary replaces the surface with
//     an inline "Error rendering data" message so the surface never goes blank
//     or keeps stale content.
//
// An empty or nil record slice always renders the canonical empty state.
// Rows keep input order; the engine never sorts, de-duplicates, or pages.
// All header and cell text is sanitized before it lands in the grid.
package table
