package chart

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/NimbleMarkets/ntcharts/linechart"
	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"
)

const (
	minChartWidth  = 10
	minChartHeight = 4
	barGap         = 1
	minLabelWidth  = 5
)

// Styles colors the terminal charts.
type Styles struct {
	Axis   lipgloss.Style
	Label  lipgloss.Style
	Muted  lipgloss.Style
	Bar    lipgloss.Style
	Series []lipgloss.Style
}

func (s Styles) series(i int) lipgloss.Style {
	if len(s.Series) == 0 {
		return lipgloss.NewStyle()
	}
	return s.Series[i%len(s.Series)]
}

// TermRenderer draws charts with ntcharts. Styles can change at any time;
// live handles pick them up on their next View.
type TermRenderer struct {
	mu     sync.RWMutex
	styles Styles
	gen    int
}

var _ Renderer = (*TermRenderer)(nil)

// NewTermRenderer returns a renderer using styles.
func NewTermRenderer(styles Styles) *TermRenderer {
	return &TermRenderer{styles: styles}
}

// SetStyles replaces the styles used by every handle from this renderer.
func (r *TermRenderer) SetStyles(styles Styles) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles = styles
	r.gen++
}

func (r *TermRenderer) current() (Styles, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.styles, r.gen
}

// NewLine implements Renderer.
func (r *TermRenderer) NewLine(spec LineSpec) Handle {
	return &termHandle{renderer: r, draw: func(w, h int, st Styles) string { return drawLine(spec, w, h, st) }}
}

// NewBar implements Renderer.
func (r *TermRenderer) NewBar(spec BarSpec) Handle {
	return &termHandle{renderer: r, draw: func(w, h int, st Styles) string { return drawBar(spec, w, h, st) }}
}

// termHandle draws lazily and caches the last frame until the size or the
// styles change.
type termHandle struct {
	renderer *TermRenderer
	draw     func(width, height int, st Styles) string

	mu        sync.Mutex
	destroyed bool
	cacheKey  [3]int
	cached    string
}

func (h *termHandle) View(width, height int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.destroyed {
		return ""
	}
	width = max(width, minChartWidth)
	height = max(height, minChartHeight)
	styles, gen := h.renderer.current()
	key := [3]int{width, height, gen}
	if h.cached != "" && key == h.cacheKey {
		return h.cached
	}
	h.cached = h.draw(width, height, styles)
	h.cacheKey = key
	return h.cached
}

func (h *termHandle) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed = true
	h.cached = ""
}

func drawLine(spec LineSpec, width, height int, st Styles) string {
	n := len(spec.Labels)
	if n == 0 {
		return st.Label.Render("No price history")
	}
	lo, hi := valueBounds(spec.Series)

	legend := make([]string, 0, len(spec.Series))
	for i, s := range spec.Series {
		if s.Muted {
			legend = append(legend, st.Muted.Render("┄ "+s.Name))
		} else {
			legend = append(legend, st.series(i).Render("━ "+s.Name))
		}
	}

	// Points sit at their label index, one step per label; the time axis
	// only carries the index.
	start := categoryTime(0)
	end := categoryTime(max(n-1, 1))

	c := tslc.New(width, height-1)
	c.AxisStyle = st.Axis
	c.LabelStyle = st.Label
	c.SetTimeRange(start, end)
	c.SetViewTimeRange(start, end)
	c.SetYRange(lo, hi)
	c.SetViewYRange(lo, hi)
	c.Model.XLabelFormatter = categoryLabelFormatter(spec.Labels)

	for i, s := range spec.Series {
		style := st.series(i)
		if s.Muted {
			style = st.Muted
		}
		c.SetDataSetStyle(s.Name, style)
		for j, v := range s.Values {
			if j >= n || IsGap(v) {
				continue
			}
			c.PushDataSet(s.Name, tslc.TimePoint{Time: categoryTime(j), Value: v})
		}
	}
	c.DrawBrailleAll()
	return strings.Join(legend, "  ") + "\n" + c.View()
}

func drawBar(spec BarSpec, width, height int, st Styles) string {
	values := spec.Series.Values
	labels := spec.Labels

	// Keep the most recent bars that fit.
	fit := max(1, (width-1)/(1+barGap))
	if len(values) > fit {
		values = values[len(values)-fit:]
		if len(labels) > fit {
			labels = labels[len(labels)-fit:]
		}
	}
	barWidth := (width-1)/max(1, len(values)) - barGap
	style := st.Bar

	data := make([]barchart.BarData, 0, len(values))
	for i, v := range values {
		if IsGap(v) {
			v = 0
		}
		label := ""
		if barWidth >= minLabelWidth && i < len(labels) {
			label = shortDay(labels[i])
		}
		data = append(data, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: spec.Series.Name, Value: v, Style: style}},
		})
	}

	b := barchart.New(width, height-1)
	b.PushAll(data)
	b.Draw()
	return style.Render("▇ "+spec.Series.Name) + "\n" + b.View()
}

// categoryStep spaces category positions on the time axis.
const categoryStep = 24 * time.Hour

func categoryTime(i int) time.Time {
	return time.Unix(0, 0).UTC().Add(time.Duration(i) * categoryStep)
}

// categoryIndex maps an axis value back to the nearest label index.
func categoryIndex(v float64) int {
	return int(math.Round(v / categoryStep.Seconds()))
}

func valueBounds(series []Series) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			if IsGap(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	lo = math.Min(lo, 0)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi * 1.1
}

func categoryLabelFormatter(labels []string) linechart.LabelFormatter {
	return func(_ int, v float64) string {
		i := categoryIndex(v)
		if i < 0 || i >= len(labels) {
			return ""
		}
		return shortDay(labels[i])
	}
}

// shortDay turns "2025-01-02" into "01-02"; other labels pass through.
func shortDay(label string) string {
	if t, err := time.Parse(time.DateOnly, label); err == nil {
		return fmt.Sprintf("%02d-%02d", t.Month(), t.Day())
	}
	return label
}
