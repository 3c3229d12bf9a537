package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"eventify-cli/catalog"
	"eventify-cli/model"
	"eventify-cli/render"
	"eventify-cli/store"
)

const noDescription = "No description provided."

type eventItem struct {
	event  model.Event
	recent bool
}

func (e eventItem) Title() string {
	title := tint(e.event.Id) + catalog.Emoji(e.event.Id) + " " + catalog.CleanText(e.event.Title)
	if e.recent {
		title += " " + hint("• viewed")
	}
	return title
}

func (e eventItem) Description() string {
	seats := catalog.Seats(e.event)
	about := catalog.CleanText(e.event.Description)
	if about == "" {
		about = noDescription
	}
	return fmt.Sprintf("%s\n%s  📅 %s • %d / %d seats available • by %s",
		about,
		badgeStyle(seats).Render(catalog.Badge(seats)),
		catalog.ShortDate(e.event.EventDate),
		seats,
		e.event.Capacity,
		catalog.CleanText(e.event.OrganizerName("Organizer")),
	)
}

func (e eventItem) FilterValue() string {
	return e.event.Title
}

func buildEventItems(events []model.Event, recent map[string]bool) []list.Item {
	items := make([]list.Item, 0, len(events))
	for _, e := range events {
		items = append(items, eventItem{event: e, recent: recent[e.Id]})
	}
	return items
}

func (m *appModel) initHome() tea.Cmd {
	m.filter = catalog.FilterAll
	m.search.SetValue("")
	m.search.Focus()
	return m.load(m.fetchEventsCmd())
}

func (m appModel) fetchEventsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		events, err := m.api.ListEvents(ctx)
		if err != nil {
			return eventsMsg{err: err}
		}
		return eventsMsg{events: events, recent: store.RecentEventIDs()}
	}
}

// applyFilter recomputes the visible events from the full catalog, the
// current query and the current filter tab.
func (m *appModel) applyFilter() {
	visible := catalog.Filter(m.events, m.search.Value(), m.filter)
	m.eventList.SetItems(buildEventItems(visible, m.recent))
	m.eventList.ResetSelected()
}

func (m appModel) visibleEvents() []model.Event {
	items := m.eventList.Items()
	out := make([]model.Event, 0, len(items))
	for _, item := range items {
		if e, ok := item.(eventItem); ok {
			out = append(out, e.event)
		}
	}
	return out
}

func (m appModel) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		m.filter = m.filter.Next()
		m.applyFilter()
		return m, nil
	case tea.KeyUp:
		m.eventList.CursorUp()
		return m, nil
	case tea.KeyDown:
		m.eventList.CursorDown()
		return m, nil
	case tea.KeyEnter:
		item, ok := m.eventList.SelectedItem().(eventItem)
		if !ok {
			return m, nil
		}
		cmd := m.route(PageEventDetail, item.event.Id)
		return m, cmd
	case tea.KeyEsc:
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilter()
		}
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m appModel) homeView() string {
	tabs := ""
	for _, mode := range catalog.FilterModes {
		style := tabStyle
		if mode == m.filter {
			style = activeTabStyle
		}
		tabs += style.Render(mode.Label())
	}

	body := m.eventList.View()
	if len(m.eventList.Items()) == 0 {
		body = "🔍 " + brandStyle.Render(render.EmptyEvents) + "\n" + hint("Try a different search or check back later")
	}
	return m.search.View() + "\n" + tabs + "\n\n" + body + "\n\n" + hint("type to search • tab filter • ↑/↓ move • enter open")
}
