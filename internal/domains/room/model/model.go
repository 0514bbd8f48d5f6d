package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID                 = "id"
	FieldRoomTypeID         = "room_type_id"
	FieldRoomNumber         = "room_number"
	FieldCapacity           = "capacity"
	FieldPriceNoBreakfast   = "price_no_breakfast"
	FieldPriceWithBreakfast = "price_with_breakfast"
	FieldStatus             = "status"
	FieldDescription        = "description"
)

// Catalog statuses. Booked/available are driven by the booking lifecycle;
// unavailable is the manual override admins use for maintenance.
const (
	StatusAvailable   = "available"
	StatusUnavailable = "unavailable"
	StatusBooked      = "booked"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusUnavailable, StatusBooked:
		return true
	}

	return false
}

type Room struct {
	ID                 string  `db:"id"`
	RoomTypeID         string  `db:"room_type_id"`
	RoomNumber         string  `db:"room_number"`
	Capacity           int     `db:"capacity"`
	PriceNoBreakfast   float64 `db:"price_no_breakfast"`
	PriceWithBreakfast float64 `db:"price_with_breakfast"`
	Status             string  `db:"status"`
	Description        string  `db:"description"`
	RoomTypeName       string  `db:"room_type_name" table:"room_types" column:"name"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "LEFT JOIN room_types ON room_types.id = rooms.room_type_id"
}

// AvailabilityCriteria is the filter set for the availability search. The
// date range is mandatory; everything else narrows the candidate rooms.
type AvailabilityCriteria struct {
	CheckIn     time.Time
	CheckOut    time.Time
	MinPrice    *float64
	MaxPrice    *float64
	Capacity    *int
	RoomTypeID  string
	FacilityIDs []string
}
