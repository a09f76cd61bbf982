package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/five82/bazaar/internal/analysis"
	"github.com/five82/bazaar/internal/chart"
	"github.com/five82/bazaar/internal/format"
	"github.com/five82/bazaar/internal/panels"
	"github.com/five82/bazaar/internal/surface"
)

// Section is one table surface in report order.
type Section struct {
	ID    string
	Title string
}

// Sections lists the table surfaces in the order they appear on screen.
func Sections() []Section {
	ids := panels.SurfaceIDs()
	out := make([]Section, len(ids))
	for i, id := range ids {
		out[i] = Section{ID: id, Title: panels.Titles[id]}
	}
	return out
}

// WriteText prints every table surface in snap.
func WriteText(w io.Writer, snap surface.Snapshot) error {
	for _, s := range Sections() {
		if err := writeSurface(w, s.Title, snap.Get(s.ID)); err != nil {
			return err
		}
	}
	return nil
}

// WriteAnalysis prints the analysis header, the chart series as a table, and
// the producer list.
func WriteAnalysis(w io.Writer, snap surface.Snapshot, res analysis.Result) error {
	title := snap.Get(analysis.TitleSurface).Text
	if title == "" {
		title = "Item Analysis: " + format.Sanitize(res.Item)
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", title); err != nil {
		return err
	}

	if len(res.History) == 0 {
		if _, err := fmt.Fprintf(w, "%s %s\n\n", surface.EmptyIcon, "No price history"); err != nil {
			return err
		}
	} else {
		t := newTable("Price History")
		header, rows := SeriesRows(res)
		t.AppendHeader(toRow(header))
		for _, r := range rows {
			t.AppendRow(toRow(r))
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", t.Render()); err != nil {
			return err
		}
	}

	return writeSurface(w, "Producers", snap.Get(analysis.ProducersSurface))
}

// SeriesRows flattens the chart series of res into one row per snapshot.
// Gaps render as the missing marker.
func SeriesRows(res analysis.Result) (header []string, rows [][]string) {
	line, bar := analysis.HistoryCharts(res.History)
	header = []string{"Date"}
	for _, s := range line.Series {
		header = append(header, s.Name)
	}
	header = append(header, bar.Series.Name)

	rows = make([][]string, len(line.Labels))
	for i, label := range line.Labels {
		row := []string{format.Sanitize(label)}
		for _, s := range line.Series {
			row = append(row, seriesValue(s.Values, i, format.Currency))
		}
		row = append(row, seriesValue(bar.Series.Values, i, format.Round))
		rows[i] = row
	}
	return header, rows
}

func seriesValue(values []float64, i int, render func(string) string) string {
	if i >= len(values) || chart.IsGap(values[i]) {
		return format.Missing
	}
	return render(strconv.FormatFloat(values[i], 'f', -1, 64))
}

func writeSurface(w io.Writer, title string, c surface.Content) error {
	var body string
	switch c.Kind {
	case surface.KindTable:
		t := newTable(title)
		t.AppendHeader(toRow(c.Grid.Headers))
		for _, row := range c.Grid.Rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = cell.Text
			}
			t.AppendRow(toRow(cells))
		}
		body = t.Render()
	case surface.KindList:
		lines := []string{title}
		for _, e := range c.Entries {
			marker := " "
			if e.Highlight {
				marker = "*"
			}
			lines = append(lines, fmt.Sprintf("%s %s %s", marker, e.Label, e.Detail))
		}
		body = strings.Join(lines, "\n")
	case surface.KindEmpty:
		body = fmt.Sprintf("%s\n%s %s", title, surface.EmptyIcon, c.Text)
	case surface.KindError:
		body = fmt.Sprintf("%s\n! %s", title, c.Text)
	case surface.KindLoading:
		body = fmt.Sprintf("%s\n… %s", title, c.Text)
	case surface.KindText:
		body = fmt.Sprintf("%s\n%s", title, c.Text)
	default:
		body = title + "\n-"
	}
	_, err := fmt.Fprintf(w, "%s\n\n", body)
	return err
}

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	return t
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
