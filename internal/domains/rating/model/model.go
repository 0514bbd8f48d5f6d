package model

import (
	"lodge/shared/model"
)

const (
	TableName  = "ratings"
	EntityName = "rating"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldBookingID = "booking_id"
	FieldStar      = "star"
	FieldComment   = "comment"
)

const (
	MinStar = 1
	MaxStar = 5
)

// Rating is one guest review of a completed stay. At most one per booking,
// enforced by a unique constraint on booking_id.
type Rating struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	BookingID string `db:"booking_id"`
	Star      int    `db:"star"`
	Comment   string `db:"comment"`
	model.Metadata
}
