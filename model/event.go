package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// EventDateLayout is how event dates are typed in by hand.
const EventDateLayout = "2006-01-02 15:04"

type Event struct {
	Id             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Capacity       int        `json:"capacity"`
	Registered     int        `json:"registered"`
	AvailableSeats *int       `json:"available_seats,omitempty"`
	EventDate      time.Time  `json:"event_date"`
	OrganizerId    string     `json:"organizer_id,omitempty"`
	Organizer      *Organizer `json:"organizer,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Organizer struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// OrganizerName returns the organizer's display name, or fallback when the
// event carries no organizer.
func (e Event) OrganizerName(fallback string) string {
	if e.Organizer == nil || e.Organizer.Name == "" {
		return fallback
	}
	return e.Organizer.Name
}

type EventList struct {
	Events []Event `json:"events"`
	Count  int     `json:"count"`
}

type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Capacity    int       `json:"capacity"`
	EventDate   time.Time `json:"event_date"`
}

// ParseCreateEventRequest builds a request from raw text input. The date is
// read in local time.
func ParseCreateEventRequest(title string, description string, capacity string, date string) (CreateEventRequest, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return CreateEventRequest{}, errors.New("title is required")
	}
	n, err := strconv.Atoi(strings.TrimSpace(capacity))
	if err != nil || n < 1 {
		return CreateEventRequest{}, errors.New("capacity must be a positive number")
	}
	when, err := time.ParseInLocation(EventDateLayout, strings.TrimSpace(date), time.Local)
	if err != nil {
		return CreateEventRequest{}, errors.Newf("date must look like %s", EventDateLayout)
	}
	return CreateEventRequest{
		Title:       title,
		Description: strings.TrimSpace(description),
		Capacity:    n,
		EventDate:   when,
	}, nil
}
