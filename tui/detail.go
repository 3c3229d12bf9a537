package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventify-cli/catalog"
	"eventify-cli/service"
	"eventify-cli/store"
)

const bookedText = "You're booked! Seat reserved successfully."

func (m *appModel) initEventDetail(eventID string) tea.Cmd {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return m.route(PageHome, "")
	}
	m.search.Blur()
	m.eventID = eventID
	m.event = nil
	return m.load(m.fetchEventCmd(eventID))
}

func (m appModel) fetchEventCmd(eventID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		event, err := m.api.GetEvent(ctx, eventID)
		if err != nil {
			return eventMsg{eventID: eventID, err: err}
		}
		if err := store.RememberEvent(event); err != nil {
			m.log.WithField("error", err.Error()).Warn("remember event")
		}
		return eventMsg{eventID: eventID, event: event}
	}
}

func (m appModel) bookCmd(eventID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		res, err := m.api.BookEvent(ctx, eventID)
		return bookedMsg{eventID: eventID, res: res, err: err}
	}
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		cmd := m.route(PageHome, "")
		return m, cmd
	case "r":
		cmd := m.route(PageEventDetail, m.eventID)
		return m, cmd
	case "enter", "b":
		return m.openBooking()
	}
	return m, nil
}

// openBooking is the detail page's primary action. Guests are sent to the
// login page and a sold out event does nothing.
func (m appModel) openBooking() (tea.Model, tea.Cmd) {
	if !m.auth.Current().LoggedIn() {
		cmd := m.route(PageLogin, "")
		return m, cmd
	}
	if m.event == nil || m.booking || catalog.Seats(*m.event) == 0 {
		return m, nil
	}
	m.confirming = true
	return m, nil
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		return m.confirmBooking()
	case "esc", "n":
		if !m.booking {
			m.confirming = false
		}
	}
	return m, nil
}

// confirmBooking sends the booking request. While it is in flight further
// confirmations are ignored.
func (m appModel) confirmBooking() (tea.Model, tea.Cmd) {
	if m.booking || m.event == nil {
		return m, nil
	}
	m.booking = true
	m.log.WithField("event_id", m.event.Id).Info("booking event")
	return m, tea.Batch(m.bookCmd(m.event.Id), m.spinner.Tick)
}

func (m appModel) handleBooked(msg bookedMsg) (tea.Model, tea.Cmd) {
	m.booking = false
	m.confirming = false
	if msg.err != nil {
		cmd := m.notify(toastError, service.Message(msg.err))
		return m, cmd
	}
	cmd := m.notify(toastSuccess, bookedText)
	if m.page == PageEventDetail && m.eventID == msg.eventID {
		cmd = tea.Batch(cmd, m.route(PageEventDetail, msg.eventID))
	}
	return m, cmd
}

func (m appModel) detailView() string {
	if m.event == nil {
		return ""
	}
	e := *m.event
	seats := catalog.Seats(e)
	fill := catalog.FillPercent(e)

	banner := lipgloss.NewStyle().
		Background(lipgloss.Color(catalog.HueColor(e.Id))).
		Padding(1, 6).
		Render(catalog.Emoji(e.Id))

	description := catalog.CleanText(e.Description)
	if description == "" {
		description = noDescription
	}

	lines := []string{
		banner,
		"",
		brandStyle.Render(catalog.CleanText(e.Title)),
		"",
		labelStyle.Render("📅 When") + catalog.LongDate(e.EventDate),
		labelStyle.Render("👥 Capacity") + fmt.Sprintf("%d", e.Capacity),
		labelStyle.Render("🎪 Organizer") + "by " + catalog.CleanText(e.OrganizerName("Organizer")),
		"",
		description,
		"",
		m.seatBar.ViewAs(float64(fill) / 100),
		fmt.Sprintf("%d registered • %s", e.Registered, badgeStyle(seats).Render(fmt.Sprintf("%d remaining", seats))),
		"",
		m.bookingButton(seats),
	}
	view := strings.Join(lines, "\n")
	if m.confirming {
		view += "\n\n" + m.confirmView(e.Title)
	}
	return view + "\n\n" + hint("enter book • r reload • esc back")
}

func (m appModel) bookingButton(seats int) string {
	switch {
	case !m.auth.Current().LoggedIn():
		return chipStyle.Render("Log in to Book")
	case m.booking:
		return disabledButtonStyle.Render(m.spinner.View() + " Booking...")
	case seats == 0:
		return disabledButtonStyle.Render("Sold Out 🔴")
	default:
		return buttonStyle.Render("Book This Event 🎟️")
	}
}

func (m appModel) confirmView(title string) string {
	action := "enter/y Book Now 🎟️ • esc/n cancel"
	if m.booking {
		action = m.spinner.View() + " Booking..."
	}
	body := strings.Join([]string{
		brandStyle.Render("Confirm Booking"),
		"",
		fmt.Sprintf("You're about to book %s.", lipgloss.NewStyle().Bold(true).Render(catalog.CleanText(title))),
		"This cannot be undone.",
		"",
		hint(action),
	}, "\n")
	return dialogStyle.Render(body)
}
