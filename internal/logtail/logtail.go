package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Tail returns at most n lines from the end of the file at path. A missing
// file yields no lines and no error. n <= 0 returns every line.
func Tail(path string, n int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()
	return tail(file, n)
}

func tail(r io.Reader, n int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if n <= 0 {
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return all, nil
	}

	ring := make([]string, n)
	next, seen := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % n
		seen++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if seen < n {
		return append([]string(nil), ring[:seen]...), nil
	}
	return append(append([]string(nil), ring[next:]...), ring[:next]...), nil
}

// Styles colors rendered records.
type Styles struct {
	Time  lipgloss.Style
	Debug lipgloss.Style
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
	Attr  lipgloss.Style
}

// DefaultStyles returns the palette used by the logs command.
func DefaultStyles() Styles {
	return Styles{
		Time:  lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")),
		Debug: lipgloss.NewStyle().Foreground(lipgloss.Color("#63cdcf")).Bold(true),
		Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("#81b29a")).Bold(true),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#dbc074")).Bold(true),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#c94f6d")).Bold(true),
		Attr:  lipgloss.NewStyle().Foreground(lipgloss.Color("#aaaaaa")),
	}
}

// Render formats one slog JSON record.
func Render(line string, s Styles) string {
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		return line
	}

	stamp, _ := record["time"].(string)
	level, _ := record["level"].(string)
	msg, _ := record["msg"].(string)
	delete(record, "time")
	delete(record, "level")
	delete(record, "msg")

	parts := make([]string, 0, 3+len(record))
	if t, err := time.Parse(time.RFC3339Nano, stamp); err == nil {
		parts = append(parts, s.Time.Render(t.Local().Format("15:04:05")))
	}
	if level != "" {
		parts = append(parts, levelStyle(level, s).Render(fmt.Sprintf("%-5s", level)))
	}
	parts = append(parts, msg)

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, s.Attr.Render(fmt.Sprintf("%s=%v", k, record[k])))
	}
	return strings.Join(parts, " ")
}

// RenderAll formats every line.
func RenderAll(lines []string, s Styles) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = Render(line, s)
	}
	return out
}

func levelStyle(level string, s Styles) lipgloss.Style {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return s.Debug
	case "WARN":
		return s.Warn
	case "ERROR":
		return s.Error
	default:
		return s.Info
	}
}
