package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"eventify-cli/catalog"
	"eventify-cli/model"
	"eventify-cli/render"
	"eventify-cli/service"
)

type ticketItem struct {
	reg model.Registration
}

func (t ticketItem) Title() string {
	title, _ := render.TicketLabels(t.reg)
	return tint(t.reg.EventId) + catalog.Emoji(t.reg.EventId) + " " + title
}

func (t ticketItem) Description() string {
	_, date := render.TicketLabels(t.reg)
	return "📅 " + date + " · Booking ID: " + catalog.ShortID(t.reg.Id) + " · " + t.reg.Status
}

func (t ticketItem) FilterValue() string {
	return t.reg.EventId
}

func buildTicketItems(regs []model.Registration) []list.Item {
	items := make([]list.Item, 0, len(regs))
	for _, reg := range regs {
		items = append(items, ticketItem{reg: reg})
	}
	return items
}

func (m *appModel) initTickets() tea.Cmd {
	if !m.auth.Current().LoggedIn() {
		return m.route(PageLogin, "")
	}
	m.search.Blur()
	m.tickets = nil
	m.ticketList.SetItems(nil)
	return m.load(m.fetchTicketsCmd())
}

func (m appModel) fetchTicketsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		regs, err := m.api.MyRegistrations(ctx)
		if err != nil {
			return ticketsMsg{err: err}
		}
		service.HydrateRegistrations(ctx, m.api, regs)
		return ticketsMsg{registrations: regs}
	}
}

func (m appModel) handleTicketsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		cmd := m.route(PageHome, "")
		return m, cmd
	case "r":
		cmd := m.route(PageTickets, "")
		return m, cmd
	case "up", "k":
		m.ticketList.CursorUp()
	case "down", "j":
		m.ticketList.CursorDown()
	case "enter":
		item, ok := m.ticketList.SelectedItem().(ticketItem)
		if ok {
			cmd := m.route(PageEventDetail, item.reg.EventId)
			return m, cmd
		}
	}
	return m, nil
}

func (m appModel) ticketsView() string {
	if len(m.tickets) == 0 {
		return "🎫 " + brandStyle.Render(render.EmptyTickets) + "\n" +
			hint("Browse events and book your first experience") + "\n\n" +
			hint("ctrl+e browse events")
	}
	return m.ticketList.View() + "\n\n" + hint("↑/↓ move • enter open event • r reload • esc back")
}
