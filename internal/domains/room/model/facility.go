package model

import (
	"lodge/shared/model"
)

const (
	FacilityTableName  = "facilities"
	FacilityEntityName = "facility"

	FacilityFieldID   = "id"
	FacilityFieldName = "name"
)

type Facility struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	Icon string `db:"icon"`
	model.Metadata
}

const (
	RoomFacilityTableName  = "room_facilities"
	RoomFacilityEntityName = "room_facility"

	RoomFacilityFieldID         = "id"
	RoomFacilityFieldRoomID     = "room_id"
	RoomFacilityFieldFacilityID = "facility_id"
)

// RoomFacility tags a room with one facility.
type RoomFacility struct {
	ID         string `db:"id"`
	RoomID     string `db:"room_id"`
	FacilityID string `db:"facility_id"`
}
