package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/five82/bazaar/internal/analysis"
	"github.com/five82/bazaar/internal/surface"
)

const (
	analysisSheet = "Analysis"
	maxSheetName  = 31
)

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

// WriteWorkbook writes one sheet per table surface, plus an Analysis sheet
// when res names an item, and streams the xlsx file to w.
func WriteWorkbook(w io.Writer, snap surface.Snapshot, res analysis.Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	first := true
	for _, s := range Sections() {
		name := sheetName(s.Title)
		if err := addSheet(f, name, first); err != nil {
			return err
		}
		first = false
		if err := writeSheet(f, name, surfaceRows(snap.Get(s.ID)), bold); err != nil {
			return fmt.Errorf("write sheet %q: %w", name, err)
		}
	}

	if strings.TrimSpace(res.Item) != "" {
		if err := addSheet(f, analysisSheet, false); err != nil {
			return err
		}
		if err := writeSheet(f, analysisSheet, analysisRows(snap, res), bold); err != nil {
			return fmt.Errorf("write sheet %q: %w", analysisSheet, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// addSheet creates a sheet; the first one reuses the workbook's default
// sheet.
func addSheet(f *excelize.File, name string, first bool) error {
	if first {
		if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %q: %w", name, err)
	}
	return nil
}

// sheetRows is a header row plus body rows. A nil header means the sheet
// holds a single status message.
type sheetRows struct {
	header []string
	rows   [][]string
}

func writeSheet(f *excelize.File, name string, data sheetRows, headerStyle int) error {
	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}
	row := 1
	if len(data.header) > 0 {
		if err := sw.SetColWidth(1, len(data.header), 18); err != nil {
			return err
		}
		if err := sw.SetRow("A1", toCells(data.header), excelize.RowOpts{StyleID: headerStyle}); err != nil {
			return err
		}
		row++
	}
	for _, r := range data.rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(r)); err != nil {
			return err
		}
		row++
	}
	return sw.Flush()
}

func surfaceRows(c surface.Content) sheetRows {
	switch c.Kind {
	case surface.KindTable:
		rows := make([][]string, len(c.Grid.Rows))
		for i, r := range c.Grid.Rows {
			rows[i] = make([]string, len(r))
			for j, cell := range r {
				rows[i][j] = cell.Text
			}
		}
		return sheetRows{header: c.Grid.Headers, rows: rows}
	case surface.KindList:
		rows := make([][]string, len(c.Entries))
		for i, e := range c.Entries {
			rows[i] = []string{e.Label, e.Detail}
		}
		return sheetRows{rows: rows}
	case surface.KindBlank:
		return sheetRows{}
	default:
		return sheetRows{rows: [][]string{{c.Text}}}
	}
}

func analysisRows(snap surface.Snapshot, res analysis.Result) sheetRows {
	header, rows := SeriesRows(res)
	out := sheetRows{header: header, rows: rows}

	producers := surfaceRows(snap.Get(analysis.ProducersSurface))
	if len(producers.rows) > 0 {
		out.rows = append(out.rows, nil, []string{"Producers"})
		out.rows = append(out.rows, producers.rows...)
	}
	return out
}

func sheetName(title string) string {
	name := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if name == "" {
		name = "Sheet"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
