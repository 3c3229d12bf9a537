// Package render prints events and tickets outside of the interactive UI.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"eventify-cli/catalog"
	"eventify-cli/model"
)

const (
	EmptyEvents  = "No events found"
	EmptyTickets = "No tickets yet"

	organizerFallback = "Organizer"
	ticketFallback    = "Event"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = true
	return t
}

// EventTable writes one row per event in the given order.
func EventTable(w io.Writer, events []model.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, EmptyEvents)
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"", "Event", "Date", "Seats", "Organizer", "ID"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 32},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, WidthMax: 20},
	})
	for _, e := range events {
		t.AppendRow(table.Row{
			catalog.Emoji(e.Id),
			catalog.CleanText(e.Title),
			catalog.ShortDate(e.EventDate),
			catalog.Badge(catalog.Seats(e)),
			catalog.CleanText(e.OrganizerName(organizerFallback)),
			e.Id,
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d events", len(events))})
	t.Render()
}

// EventDetail writes a single event as a two column sheet.
func EventDetail(w io.Writer, e model.Event) {
	seats := catalog.Seats(e)
	description := catalog.CleanText(e.Description)
	if description == "" {
		description = "No description provided."
	}

	t := newTable(w)
	t.SetTitle(catalog.Emoji(e.Id) + "  " + catalog.CleanText(e.Title))
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: text.Colors{text.Bold}},
		{Number: 2, WidthMax: 60},
	})
	t.AppendRows([]table.Row{
		{"When", catalog.LongDate(e.EventDate)},
		{"Organizer", catalog.CleanText(e.OrganizerName(organizerFallback))},
		{"Capacity", strconv.Itoa(e.Capacity)},
		{"Booked", fmt.Sprintf("%d (%d%%)", e.Registered, catalog.FillPercent(e))},
		{"Seats", catalog.Badge(seats)},
		{"About", description},
		{"ID", e.Id},
	})
	t.Render()
}

// TicketTable writes the user's registrations. A registration without an
// event snapshot keeps the fallback labels.
func TicketTable(w io.Writer, regs []model.Registration) {
	if len(regs) == 0 {
		fmt.Fprintln(w, EmptyTickets)
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"", "Event", "Date", "Booking ID", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 32},
	})
	for _, reg := range regs {
		title, date := TicketLabels(reg)
		t.AppendRow(table.Row{
			catalog.Emoji(reg.EventId),
			title,
			date,
			"Booking ID: " + catalog.ShortID(reg.Id),
			reg.Status,
		})
	}
	t.Render()
}

// TicketLabels returns the display title and date of a ticket.
func TicketLabels(reg model.Registration) (string, string) {
	if reg.Event == nil {
		return ticketFallback, "—"
	}
	title := catalog.CleanText(reg.Event.Title)
	if title == "" {
		title = ticketFallback
	}
	return title, catalog.ShortDate(reg.Event.EventDate)
}
