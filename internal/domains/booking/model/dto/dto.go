package dto

import (
	"time"

	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type RoomSelection struct {
	RoomID          string `json:"room_id"          validate:"required"`
	Quantity        int    `json:"quantity"         validate:"required,min=1"`
	BreakfastOption string `json:"breakfast_option" validate:"required,oneof=with without"`
}

type CreateBookingRequest struct {
	NIK           string          `json:"nik"            validate:"required,max=20"`
	GuestName     string          `json:"guest_name"     validate:"required,max=100"`
	Phone         string          `json:"phone"          validate:"required,max=20"`
	CheckIn       string          `json:"check_in"       validate:"required"`
	CheckOut      string          `json:"check_out"      validate:"required"`
	TotalGuests   int             `json:"total_guests"   validate:"required,min=1"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=50"`
	Rooms         []RoomSelection `json:"rooms"          validate:"required,min=1,dive"`
}

// ValidateFields reports the first missing mandatory field by name. The
// handler-level struct validation catches the same holes, but callers of the
// service directly (and tests) rely on this gate.
func (c *CreateBookingRequest) ValidateFields() error {
	fields := []struct {
		name  string
		empty bool
	}{
		{"nik", c.NIK == constant.Empty},
		{"guest_name", c.GuestName == constant.Empty},
		{"phone", c.Phone == constant.Empty},
		{"check_in", c.CheckIn == constant.Empty},
		{"check_out", c.CheckOut == constant.Empty},
		{"payment_method", c.PaymentMethod == constant.Empty},
		{"rooms", len(c.Rooms) == 0},
	}

	for _, field := range fields {
		if field.empty {
			return failure.OfKind(failure.KindMissingField, "missing required field: %s", field.name)
		}
	}

	return nil
}

// ParseDates parses the requested range and rejects an empty, inverted, or
// already-past one.
func (c *CreateBookingRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return checkIn, checkOut, failure.OfKind(failure.KindInvalidDateRange, "invalid check_in date: %s", c.CheckIn)
	}

	checkOut, err = timezone.Parse(constant.DateOnlyFormat, c.CheckOut)
	if err != nil {
		return checkIn, checkOut, failure.OfKind(failure.KindInvalidDateRange, "invalid check_out date: %s", c.CheckOut)
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.OfKind(failure.KindInvalidDateRange, "check_out must be after check_in")
	}

	if checkIn.Before(timezone.Today()) {
		return checkIn, checkOut, failure.OfKind(failure.KindInvalidDateRange, "check_in must not be in the past")
	}

	return checkIn, checkOut, nil
}

func (c *CreateBookingRequest) ToModel(user, userID string, checkIn, checkOut time.Time, totalPrice float64) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		NIK:           c.NIK,
		GuestName:     c.GuestName,
		Phone:         c.Phone,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		TotalGuests:   c.TotalGuests,
		TotalPrice:    totalPrice,
		PaymentMethod: c.PaymentMethod,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CreateBookingResponse struct {
	BookingID  string  `json:"booking_id"`
	TotalPrice float64 `json:"total_price"`
	Nights     int     `json:"nights"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type UpdateBookingStatusResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type BookingLineResponse struct {
	ID              string  `json:"id"`
	RoomID          string  `json:"room_id"`
	RoomType        string  `json:"room_type"`
	Quantity        int     `json:"quantity"`
	BreakfastOption string  `json:"breakfast_option"`
	PricePerNight   float64 `json:"price_per_night"`
	Subtotal        float64 `json:"subtotal"`
}

func (r *BookingLineResponse) FromModel(model model.BookingRoom) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomType = model.RoomType
	r.Quantity = model.Quantity
	r.BreakfastOption = model.BreakfastOption
	r.PricePerNight = model.PricePerNight
	r.Subtotal = model.Subtotal
}

type BookingResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	NIK           string                `json:"nik"`
	GuestName     string                `json:"guest_name"`
	Phone         string                `json:"phone"`
	CheckIn       string                `json:"check_in"`
	CheckOut      string                `json:"check_out"`
	Nights        int                   `json:"nights"`
	TotalGuests   int                   `json:"total_guests"`
	TotalPrice    float64               `json:"total_price"`
	PaymentMethod string                `json:"payment_method"`
	Status        string                `json:"status"`
	Rooms         []BookingLineResponse `json:"rooms,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking, lines []model.BookingRoom) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.NIK = model.NIK
	r.GuestName = model.GuestName
	r.Phone = model.Phone
	r.CheckIn = model.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = model.CheckOut.Format(constant.DateOnlyFormat)
	r.Nights = model.Nights()
	r.TotalGuests = model.TotalGuests
	r.TotalPrice = model.TotalPrice
	r.PaymentMethod = model.PaymentMethod
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)

	r.Rooms = make([]BookingLineResponse, len(lines))
	for i, line := range lines {
		r.Rooms[i].FromModel(line)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, nil)
	}
}
