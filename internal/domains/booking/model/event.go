package model

import (
	"time"

	"lodge/shared/timezone"
)

// Lifecycle event types published to the booking topic.
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	PrevStatus string    `json:"prev_status,omitempty"`
	TotalPrice float64   `json:"total_price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewCreatedEvent(booking Booking) BookingEvent {
	return BookingEvent{
		Type:       EventBookingCreated,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		Status:     booking.Status,
		TotalPrice: booking.TotalPrice,
		OccurredAt: timezone.Now(),
	}
}

func NewStatusChangedEvent(booking Booking, prevStatus string) BookingEvent {
	return BookingEvent{
		Type:       EventBookingStatusChanged,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		Status:     booking.Status,
		PrevStatus: prevStatus,
		OccurredAt: timezone.Now(),
	}
}
