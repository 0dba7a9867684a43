package enforce

import (
	"fmt"
	"strings"
	"time"
)

const isoLayout = "2006-01-02T15:04:05"

// genericLayouts are tried in order when a timestamp column declares no
// datetime format.
var genericLayouts = []string{
	time.RFC3339,
	isoLayout,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
}

// strftimeToLayout translates a Python strftime format, as carried by the
// metadata's datetime_format field, into a Go reference-time layout. A
// directive outside the supported set fails the translation; callers fall
// back to the generic layouts.
func strftimeToLayout(format string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			b.WriteByte(format[i])
			continue
		}
		i++
		if i >= len(format) {
			return "", fmt.Errorf("dangling %% in format %q", format)
		}
		switch format[i] {
		case 'Y':
			b.WriteString("2006")
		case 'y':
			b.WriteString("06")
		case 'm':
			b.WriteString("01")
		case 'd':
			b.WriteString("02")
		case 'H':
			b.WriteString("15")
		case 'M':
			b.WriteString("04")
		case 'S':
			b.WriteString("05")
		case 'f':
			b.WriteString("000000")
		case 'z':
			b.WriteString("-0700")
		case '%':
			b.WriteByte('%')
		default:
			return "", fmt.Errorf("unsupported strftime directive %%%c in %q", format[i], format)
		}
	}
	return b.String(), nil
}

// parseTimestamp parses s against the declared strftime format when one
// is given; a value that does not match a declared format is not
// rescued by the generic layouts. Without a usable format the generic
// layouts are tried in order.
func parseTimestamp(s, format string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if format != "" {
		if layout, err := strftimeToLayout(format); err == nil {
			ts, err := time.Parse(layout, s)
			if err != nil {
				return time.Time{}, false
			}
			return ts, true
		}
	}

	for _, layout := range genericLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// ToISOTimestamp converts a YYYY-MM-DD date string into the ISO 8601
// combined form YYYY-MM-DDTHH:MM:SS with the time at midnight. It
// reports false for input it cannot parse.
func ToISOTimestamp(dateStr string) (string, bool) {
	ts, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return "", false
	}
	return ts.Format(isoLayout), true
}
