package catalog

import (
	"fmt"
	"math"

	"eventify-cli/model"
)

// LowSeatThreshold is the largest remaining-seat count shown as "low".
const LowSeatThreshold = 5

type Tier int

const (
	TierSoldOut Tier = iota
	TierLow
	TierAvailable
)

func (t Tier) String() string {
	switch t {
	case TierSoldOut:
		return "sold out"
	case TierLow:
		return "low"
	default:
		return "available"
	}
}

// Seats returns the remaining seats of an event. An explicit available_seats
// value wins, zero included; otherwise capacity minus registered is used.
// Inconsistent data never yields a negative count.
func Seats(e model.Event) int {
	seats := e.Capacity - e.Registered
	if e.AvailableSeats != nil {
		seats = *e.AvailableSeats
	}
	return max(0, seats)
}

func TierOf(seats int) Tier {
	switch {
	case seats <= 0:
		return TierSoldOut
	case seats <= LowSeatThreshold:
		return TierLow
	default:
		return TierAvailable
	}
}

func Badge(seats int) string {
	switch TierOf(seats) {
	case TierSoldOut:
		return "🔴 Sold Out"
	case TierLow:
		return fmt.Sprintf("⚡ %d left", seats)
	default:
		return fmt.Sprintf("✅ %d seats", seats)
	}
}

// FillPercent is the rounded share of capacity already registered.
func FillPercent(e model.Event) int {
	if e.Capacity <= 0 {
		return 0
	}
	pct := int(math.Round(float64(e.Registered) / float64(e.Capacity) * 100))
	return min(100, max(0, pct))
}
