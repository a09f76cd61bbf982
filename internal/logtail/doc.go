// Package logtail reads the end of bazaar's JSON log and renders each record
// as a single readable line.
//
// Tail keeps a ring of the last n lines so large log files are scanned once
// with bounded memory. Render decodes a slog JSON record into
// "15:04:05 LEVEL message key=value ..." and colors the level. Lines that are
// not JSON pass through unchanged.
package logtail
