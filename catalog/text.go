package catalog

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes &, < and >. It is not a sanitizer.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// CleanText removes escape sequences and control characters from text that
// came from the API before it is written to a terminal. Newlines and tabs
// survive.
func CleanText(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// ShortDate renders a date the way the event list shows it.
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("Jan 2, 2006, 03:04 PM")
}

// LongDate renders a date the way the event detail page shows it.
func LongDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Local().Format("Monday, January 2, 2006 at 03:04 PM")
}

// ShortID truncates an opaque id for display.
func ShortID(id string) string {
	runes := []rune(id)
	if len(runes) <= 8 {
		return id
	}
	return string(runes[:8]) + "…"
}
