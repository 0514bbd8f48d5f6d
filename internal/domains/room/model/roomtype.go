package model

import (
	"lodge/shared/model"
)

const (
	RoomTypeTableName  = "room_types"
	RoomTypeEntityName = "room_type"

	RoomTypeFieldID   = "id"
	RoomTypeFieldName = "name"
)

type RoomType struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	model.Metadata
}
