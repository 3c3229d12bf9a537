package render

import (
	"fmt"
	"io"
	"strings"

	"eventify-cli/catalog"
	"eventify-cli/model"
)

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Eventify</title>
<style>
body{font-family:system-ui,sans-serif;margin:2rem;background:#f7f7fb;color:#1f1f2e}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(260px,1fr));gap:1rem}
.card{background:#fff;border-radius:12px;overflow:hidden;box-shadow:0 1px 4px rgba(0,0,0,.08)}
.banner{font-size:2.5rem;text-align:center;padding:1.25rem 0}
.body{padding:1rem}
.badge{font-size:.8rem;font-weight:600}
.muted{color:#6b6b80;font-size:.85rem}
.empty{text-align:center;color:#6b6b80;padding:3rem}
</style>
</head>
<body>
`

// HTMLCatalog writes a standalone page with one card per event. Every piece
// of user supplied text is escaped.
func HTMLCatalog(w io.Writer, heading string, events []model.Event) error {
	var b strings.Builder
	b.WriteString(pageHead)
	fmt.Fprintf(&b, "<h1>%s</h1>\n", catalog.EscapeHTML(heading))

	if len(events) == 0 {
		fmt.Fprintf(&b, "<div class=\"empty\">🔍<p>%s</p></div>\n", EmptyEvents)
	} else {
		b.WriteString("<div class=\"grid\">\n")
		for _, e := range events {
			writeCard(&b, e)
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</body>\n</html>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeCard(b *strings.Builder, e model.Event) {
	hue := catalog.Hue(e.Id)
	seats := catalog.Seats(e)
	description := e.Description
	if description == "" {
		description = "No description provided."
	}

	fmt.Fprintf(b, "<article class=\"card\" data-id=\"%s\">\n", escapeAttr(e.Id))
	fmt.Fprintf(b, "<div class=\"banner\" style=\"background:linear-gradient(135deg,hsl(%d,70%%,85%%),hsl(%d,60%%,70%%))\">%s</div>\n",
		hue, (hue+40)%360, catalog.Emoji(e.Id))
	b.WriteString("<div class=\"body\">\n")
	fmt.Fprintf(b, "<span class=\"badge badge-%s\">%s</span>\n", tierClass(catalog.TierOf(seats)), catalog.Badge(seats))
	fmt.Fprintf(b, "<p class=\"muted\">%s</p>\n", catalog.ShortDate(e.EventDate))
	fmt.Fprintf(b, "<h2>%s</h2>\n", catalog.EscapeHTML(e.Title))
	fmt.Fprintf(b, "<p>%s</p>\n", catalog.EscapeHTML(description))
	fmt.Fprintf(b, "<p class=\"muted\">%d / %d seats available</p>\n", seats, e.Capacity)
	fmt.Fprintf(b, "<p class=\"muted\">by %s</p>\n", catalog.EscapeHTML(e.OrganizerName(organizerFallback)))
	b.WriteString("</div>\n</article>\n")
}

// escapeAttr escapes text for a double-quoted attribute value.
func escapeAttr(s string) string {
	return strings.ReplaceAll(catalog.EscapeHTML(s), `"`, "&quot;")
}

func tierClass(t catalog.Tier) string {
	switch t {
	case catalog.TierSoldOut:
		return "sold-out"
	case catalog.TierLow:
		return "low"
	default:
		return "available"
	}
}
