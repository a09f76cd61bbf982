// Package report renders dashboard surfaces without a terminal UI.
//
// WriteText prints every table surface as a box-drawn text table using
// go-pretty, followed by an optional item analysis section. WriteWorkbook
// writes the same surfaces to an xlsx workbook with excelize, one sheet per
// table surface plus an Analysis sheet when an item was analyzed.
//
// Both writers read a surface.Snapshot, so they show exactly what the TUI
// would: empty and error states are written as their placeholder text
// rather than as missing sheets.
package report
