package model

import (
	"time"

	"lodge/internal/domains/booking/pricing"
	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldNIK           = "nik"
	FieldGuestName     = "guest_name"
	FieldPhone         = "phone"
	FieldCheckIn       = "check_in"
	FieldCheckOut      = "check_out"
	FieldTotalGuests   = "total_guests"
	FieldTotalPrice    = "total_price"
	FieldPaymentMethod = "payment_method"
	FieldStatus        = "status"
)

type Booking struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	NIK           string    `db:"nik"`
	GuestName     string    `db:"guest_name"`
	Phone         string    `db:"phone"`
	CheckIn       time.Time `db:"check_in"`
	CheckOut      time.Time `db:"check_out"`
	TotalGuests   int       `db:"total_guests"`
	TotalPrice    float64   `db:"total_price"`
	PaymentMethod string    `db:"payment_method"`
	Status        string    `db:"status"`
	model.Metadata
}

// Nights is the stay length under the half-open [check_in, check_out)
// convention, so back-to-back stays never collide.
func (b Booking) Nights() int {
	return pricing.Nights(b.CheckIn, b.CheckOut)
}

const (
	LineTableName  = "booking_rooms"
	LineEntityName = "booking_room"

	LineFieldID              = "id"
	LineFieldBookingID       = "booking_id"
	LineFieldRoomID          = "room_id"
	LineFieldRoomType        = "room_type"
	LineFieldQuantity        = "quantity"
	LineFieldBreakfastOption = "breakfast_option"
	LineFieldPricePerNight   = "price_per_night"
	LineFieldSubtotal        = "subtotal"
)

// BookingRoom is one priced room line of a booking. The per-night price is
// captured at booking time so later catalog edits never change past totals.
type BookingRoom struct {
	ID              string  `db:"id"`
	BookingID       string  `db:"booking_id"`
	RoomID          string  `db:"room_id"`
	RoomType        string  `db:"room_type"`
	Quantity        int     `db:"quantity"`
	BreakfastOption string  `db:"breakfast_option"`
	PricePerNight   float64 `db:"price_per_night"`
	Subtotal        float64 `db:"subtotal"`
}
