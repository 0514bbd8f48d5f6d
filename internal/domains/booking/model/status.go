package model

import (
	roomModel "lodge/internal/domains/room/model"
	"lodge/shared/failure"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusCheckedIn  = "checked_in"
	StatusCheckedOut = "checked_out"
	StatusCancelled  = "cancelled"
)

// transitions is the full lifecycle. Cancelled bookings can be reactivated
// by an admin; checkout is allowed from every live status and always frees
// the rooms; checked_out is terminal.
var transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusCheckedOut},
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusCheckedOut},
	StatusCheckedIn:  {StatusCheckedOut, StatusCancelled},
	StatusCancelled:  {StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut},
	StatusCheckedOut: {},
}

func ParseStatus(status string) (string, error) {
	switch status {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled:
		return status, nil
	}

	return "", failure.OfKind(failure.KindInvalidStatus, "unknown booking status: %s", status)
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

// IsActiveOccupancy reports whether a booking in this status holds its rooms
// against overlapping date ranges.
func IsActiveOccupancy(status string) bool {
	return status == StatusConfirmed || status == StatusCheckedIn
}

// RoomEffect returns the room status a transition forces, or an empty string
// when the rooms keep their current status. Leaving the lifecycle by
// cancellation or checkout frees the rooms; reactivating a cancelled booking
// takes them again.
func RoomEffect(from, to string) string {
	switch {
	case to == StatusCancelled, to == StatusCheckedOut:
		return roomModel.StatusAvailable
	case from == StatusCancelled:
		return roomModel.StatusBooked
	}

	return ""
}
