package table

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/five82/bazaar/internal/format"
	"github.com/five82/bazaar/internal/logging"
	"github.com/five82/bazaar/internal/surface"
)

const (
	// ErrMarker replaces a cell whose column renderer failed.
	ErrMarker = "Err"
	// ErrMessage replaces a whole surface when the table cannot be built.
	ErrMessage = "Error rendering data"
)

// Column describes one table column: a header and a function turning a
// record into display text. Render must not assume optional fields are
// present; if it panics, only that cell is affected.
type Column[R any] struct {
	Header string
	Render func(R) string
}

// Target is where rendered content goes. *surface.Store implements it.
type Target interface {
	Has(id string) bool
	Set(id string, content surface.Content) bool
}

// Engine writes tables into surfaces.
type Engine struct {
	target Target
	logger *slog.Logger
}

// NewEngine returns an Engine writing into target. A nil logger discards
// diagnostics.
func NewEngine(target Target, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Engine{target: target, logger: logger}
}

// Target returns the surface target the engine writes into.
func (e *Engine) Target() Target {
	return e.target
}

// Render replaces surface id with a table of rows. Unknown surfaces are left
// alone; nil or empty rows produce the canonical empty state. A failing cell
// shows ErrMarker; a failure building the table itself shows ErrMessage.
func Render[R any](e *Engine, id string, columns []Column[R], rows []R) {
	if e == nil || e.target == nil || !e.target.Has(id) {
		return
	}
	if len(rows) == 0 {
		e.target.Set(id, surface.Empty())
		return
	}

	grid, err := Build(columns, rows, func(row R, col Column[R], recovered any) {
		e.logger.Error("render error row",
			"surface", id,
			"column", col.Header,
			"row", fmt.Sprintf("%+v", row),
			"error", fmt.Sprint(recovered),
		)
	})
	if err != nil {
		e.logger.Error("render error table", "surface", id, "error", err)
		e.target.Set(id, surface.Error(ErrMessage))
		return
	}
	e.target.Set(id, surface.Table(grid))
}

// CellErrorFunc observes a cell whose renderer panicked.
type CellErrorFunc[R any] func(row R, col Column[R], recovered any)

var errNoColumns = errors.New("no columns")

// Build renders rows into a grid without writing it anywhere. Cell failures
// are isolated and reported through onCellError (which may be nil); any other
// failure aborts the whole table with an error.
func Build[R any](columns []Column[R], rows []R, onCellError CellErrorFunc[R]) (grid surface.Grid, err error) {
	defer func() {
		if r := recover(); r != nil {
			grid = surface.Grid{}
			err = fmt.Errorf("build table: %v", r)
		}
	}()

	if len(columns) == 0 {
		return surface.Grid{}, errNoColumns
	}
	headers := make([]string, len(columns))
	for i, col := range columns {
		if col.Render == nil {
			return surface.Grid{}, fmt.Errorf("column %d (%q) has no renderer", i, col.Header)
		}
		headers[i] = format.Sanitize(col.Header)
	}

	grid = surface.Grid{Headers: headers, Rows: make([][]surface.Cell, 0, len(rows))}
	for _, row := range rows {
		cells := make([]surface.Cell, len(columns))
		for i, col := range columns {
			text, recovered, failed := renderCell(col, row)
			if failed {
				if onCellError != nil {
					onCellError(row, col, recovered)
				}
				cells[i] = surface.Cell{Text: ErrMarker, Err: true}
				continue
			}
			cells[i] = surface.Cell{Text: text}
		}
		grid.Rows = append(grid.Rows, cells)
	}
	return grid, nil
}

func renderCell[R any](col Column[R], row R) (text string, recovered any, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			text, recovered, failed = "", r, true
		}
	}()
	return format.Sanitize(col.Render(row)), nil, false
}
