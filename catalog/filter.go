package catalog

import (
	"strings"

	"github.com/cockroachdb/errors"

	"eventify-cli/model"
)

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterAvailable FilterMode = "available"
	FilterFull      FilterMode = "full"
)

var FilterModes = []FilterMode{FilterAll, FilterAvailable, FilterFull}

func ParseFilterMode(value string) (FilterMode, error) {
	switch mode := FilterMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return FilterAll, nil
	case FilterAll, FilterAvailable, FilterFull:
		return mode, nil
	default:
		return "", errors.Newf("unknown filter %q (want all, available or full)", value)
	}
}

// Next cycles all -> available -> full -> all.
func (m FilterMode) Next() FilterMode {
	for i, mode := range FilterModes {
		if mode == m {
			return FilterModes[(i+1)%len(FilterModes)]
		}
	}
	return FilterAll
}

func (m FilterMode) Label() string {
	switch m {
	case FilterAvailable:
		return "Available"
	case FilterFull:
		return "Sold Out"
	default:
		return "All"
	}
}

// Matches reports whether query is a case-insensitive substring of the
// event's title or description. The empty query matches every event.
func Matches(e model.Event, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}

func (m FilterMode) keep(e model.Event) bool {
	switch m {
	case FilterAvailable:
		return Seats(e) > 0
	case FilterFull:
		return Seats(e) == 0
	default:
		return true
	}
}

// Filter returns the events matching query and mode in their original order.
// The input slice is never modified.
func Filter(events []model.Event, query string, mode FilterMode) []model.Event {
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if Matches(e, query) && mode.keep(e) {
			out = append(out, e)
		}
	}
	return out
}
