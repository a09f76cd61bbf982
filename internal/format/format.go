package format

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"
)

const (
	// CurrencySuffix is appended to every formatted price (gold).
	CurrencySuffix = "g"
	// PercentSuffix is appended to every formatted percentage.
	PercentSuffix = "%"
	// Missing is shown when a value cannot be parsed as a number.
	Missing = "-"
)

// leadingNumber matches the numeric prefix a lenient float parser accepts.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Currency renders raw as a price with one decimal place, e.g. "12.345" → "12.3g".
func Currency(raw string) string {
	return fixed(raw, CurrencySuffix)
}

// Percent renders raw as a percentage with one decimal place, e.g. "7.25" → "7.3%".
func Percent(raw string) string {
	return fixed(raw, PercentSuffix)
}

// Round renders raw as an integer using half-away-from-zero rounding, or
// Missing when raw is not numeric.
func Round(raw string) string {
	d, ok := ParseNumber(raw)
	if !ok {
		return Missing
	}
	return d.Round(0).String()
}

// ParseNumber parses the leading numeric portion of raw. Leading whitespace is
// ignored and trailing garbage after a valid number is dropped, so "12g"
// parses as 12. It reports false when raw does not start with a number.
func ParseNumber(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimLeftFunc(raw, unicode.IsSpace)
	match := leadingNumber.FindString(trimmed)
	if match == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func fixed(raw, suffix string) string {
	d, ok := ParseNumber(raw)
	if !ok {
		return Missing
	}
	return d.StringFixed(1) + suffix
}

// Sanitize strips terminal escape sequences and control characters from
// text destined for a rendered surface. Newlines and tabs collapse to a
// single space so a value always occupies one line.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	stripped := ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		case r == unicode.ReplacementChar:
			return -1
		}
		return r
	}, stripped)
}
