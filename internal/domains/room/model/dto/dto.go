package dto

import (
	"lodge/internal/domains/room/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	RoomTypeID         string  `json:"room_type_id"         validate:"required"`
	RoomNumber         string  `json:"room_number"          validate:"required,max=10"`
	Capacity           int     `json:"capacity"             validate:"required,min=1"`
	PriceNoBreakfast   float64 `json:"price_no_breakfast"   validate:"required,min=0"`
	PriceWithBreakfast float64 `json:"price_with_breakfast" validate:"required,min=0"`
	Status             string  `json:"status"               validate:"omitempty,oneof=available unavailable booked"`
	Description        string  `json:"description"          validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Room{
		ID:                 uuid.NewString(),
		RoomTypeID:         c.RoomTypeID,
		RoomNumber:         c.RoomNumber,
		Capacity:           c.Capacity,
		PriceNoBreakfast:   c.PriceNoBreakfast,
		PriceWithBreakfast: c.PriceWithBreakfast,
		Status:             status,
		Description:        c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomTypeID         string   `db:"room_type_id"         json:"room_type_id"         validate:"omitempty"`
	RoomNumber         string   `db:"room_number"          json:"room_number"          validate:"omitempty,max=10"`
	Capacity           *int     `db:"capacity"             json:"capacity"             validate:"omitempty,min=1"`
	PriceNoBreakfast   *float64 `db:"price_no_breakfast"   json:"price_no_breakfast"   validate:"omitempty,min=0"`
	PriceWithBreakfast *float64 `db:"price_with_breakfast" json:"price_with_breakfast" validate:"omitempty,min=0"`
	Status             string   `db:"status"               json:"status"               validate:"omitempty,oneof=available unavailable booked"`
	Description        string   `db:"description"          json:"description"          validate:"omitempty"`
}

type RoomResponse struct {
	ID                 string  `json:"id"`
	RoomTypeID         string  `json:"room_type_id"`
	RoomTypeName       string  `json:"room_type_name"`
	RoomNumber         string  `json:"room_number"`
	Capacity           int     `json:"capacity"`
	PriceNoBreakfast   float64 `json:"price_no_breakfast"`
	PriceWithBreakfast float64 `json:"price_with_breakfast"`
	Status             string  `json:"status"`
	Description        string  `json:"description"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomTypeID = model.RoomTypeID
	r.RoomTypeName = model.RoomTypeName
	r.RoomNumber = model.RoomNumber
	r.Capacity = model.Capacity
	r.PriceNoBreakfast = model.PriceNoBreakfast
	r.PriceWithBreakfast = model.PriceWithBreakfast
	r.Status = model.Status
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type SearchAvailableRequest struct {
	CheckIn     string   `json:"check_in"     validate:"required"`
	CheckOut    string   `json:"check_out"    validate:"required"`
	MinPrice    *float64 `json:"min_price"    validate:"omitempty,min=0"`
	MaxPrice    *float64 `json:"max_price"    validate:"omitempty,min=0"`
	Capacity    *int     `json:"capacity"     validate:"omitempty,min=1"`
	RoomTypeID  string   `json:"room_type_id" validate:"omitempty"`
	FacilityIDs []string `json:"facility_ids" validate:"omitempty,dive,required"`
}

// ToCriteria parses the requested date range and rejects an empty or
// inverted one before any query runs.
func (c *SearchAvailableRequest) ToCriteria() (model.AvailabilityCriteria, error) {
	checkIn, err := timezone.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return model.AvailabilityCriteria{}, failure.OfKind(failure.KindInvalidDateRange, "invalid check_in date: %s", c.CheckIn)
	}

	checkOut, err := timezone.Parse(constant.DateOnlyFormat, c.CheckOut)
	if err != nil {
		return model.AvailabilityCriteria{}, failure.OfKind(failure.KindInvalidDateRange, "invalid check_out date: %s", c.CheckOut)
	}

	if !checkOut.After(checkIn) {
		return model.AvailabilityCriteria{}, failure.OfKind(failure.KindInvalidDateRange, "check_out must be after check_in")
	}

	return model.AvailabilityCriteria{
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		MinPrice:    c.MinPrice,
		MaxPrice:    c.MaxPrice,
		Capacity:    c.Capacity,
		RoomTypeID:  c.RoomTypeID,
		FacilityIDs: c.FacilityIDs,
	}, nil
}

type CreateRoomTypeRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

func (c *CreateRoomTypeRequest) ToModel(user string) model.RoomType {
	return model.RoomType{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type RoomTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}

type UpdateRoomTypeRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description string `db:"description" json:"description" validate:"omitempty"`
}

type CreateFacilityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"omitempty,max=100"`
}

func (c *CreateFacilityRequest) ToModel(user string) model.Facility {
	return model.Facility{
		ID:   uuid.NewString(),
		Name: c.Name,
		Icon: c.Icon,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type FacilityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	gDto.Metadata
}

func (r *FacilityResponse) FromModel(model model.Facility) {
	r.ID = model.ID
	r.Name = model.Name
	r.Icon = model.Icon
	r.Metadata.FromModel(model.Metadata)
}

type GetFacilitiesResponse struct {
	Facilities []FacilityResponse `json:"facilities"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetFacilitiesResponse) FromModels(models []model.Facility, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Facilities = make([]FacilityResponse, len(models))
	for i, mod := range models {
		r.Facilities[i].FromModel(mod)
	}
}

// AssignFacilitiesRequest replaces the full facility set of a room.
type AssignFacilitiesRequest struct {
	FacilityIDs []string `json:"facility_ids" validate:"required,dive,required"`
}

func ToRoomFacilities(roomID string, facilityIDs []string) []model.RoomFacility {
	links := make([]model.RoomFacility, len(facilityIDs))
	for i, facilityID := range facilityIDs {
		links[i] = model.RoomFacility{
			ID:         uuid.NewString(),
			RoomID:     roomID,
			FacilityID: facilityID,
		}
	}

	return links
}
