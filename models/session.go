package models

import (
	"fmt"
	"time"
)

// TripStatus is the explicit state of a planning session. The wizard is
// a small machine: preferences are collected, generation runs, and the
// finished itinerary is displayed. Editing a displayed trip returns it
// to collecting.
type TripStatus string

const (
	StatusCollecting TripStatus = "collecting"
	StatusGenerating TripStatus = "generating"
	StatusDisplaying TripStatus = "displaying"
)

var transitions = map[TripStatus][]TripStatus{
	StatusCollecting: {StatusGenerating},
	StatusGenerating: {StatusDisplaying, StatusCollecting},
	StatusDisplaying: {StatusCollecting},
}

// CanTransition reports whether moving to the target status is allowed.
func (s TripStatus) CanTransition(to TripStatus) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

// Trip is one planning session: the request being collected plus its
// lifecycle status.
type Trip struct {
	ID        string      `json:"id"`
	Status    TripStatus  `json:"status"`
	Request   TripRequest `json:"request"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Transition moves the trip to the target status, rejecting moves the
// wizard does not allow.
func (t *Trip) Transition(to TripStatus) error {
	if !t.Status.CanTransition(to) {
		return fmt.Errorf("cannot transition trip from %s to %s", t.Status, to)
	}
	t.Status = to
	return nil
}
