package model

import "time"

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Registration struct {
	Id        string    `json:"id"`
	EventId   string    `json:"event_id"`
	Status    string    `json:"status"`
	Event     *Event    `json:"event,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type RegistrationList struct {
	Registrations []Registration `json:"registrations"`
	Count         int            `json:"count"`
}

type BookingResponse struct {
	Message      string        `json:"message"`
	Registration *Registration `json:"registration,omitempty"`
}
