package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/shared/constant"
	"lodge/shared/failure"
	"lodge/shared/timezone"
)

func validRequest() dto.CreateBookingRequest {
	checkIn := timezone.Today().AddDate(0, 0, 7)
	checkOut := checkIn.AddDate(0, 0, 2)

	return dto.CreateBookingRequest{
		NIK:           "3173051234567890",
		GuestName:     "Andi Wijaya",
		Phone:         "+628123456789",
		CheckIn:       checkIn.Format(constant.DateOnlyFormat),
		CheckOut:      checkOut.Format(constant.DateOnlyFormat),
		TotalGuests:   2,
		PaymentMethod: "bank_transfer",
		Rooms: []dto.RoomSelection{
			{RoomID: "room-1", Quantity: 1, BreakfastOption: "with"},
		},
	}
}

func TestCreateBookingRequest_ValidateFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*dto.CreateBookingRequest)
		wantField string
	}{
		{
			name:   "valid request",
			mutate: func(*dto.CreateBookingRequest) {},
		},
		{
			name:      "missing nik",
			mutate:    func(r *dto.CreateBookingRequest) { r.NIK = "" },
			wantField: "nik",
		},
		{
			name:      "missing guest name",
			mutate:    func(r *dto.CreateBookingRequest) { r.GuestName = "" },
			wantField: "guest_name",
		},
		{
			name:      "missing phone",
			mutate:    func(r *dto.CreateBookingRequest) { r.Phone = "" },
			wantField: "phone",
		},
		{
			name:      "missing check_in",
			mutate:    func(r *dto.CreateBookingRequest) { r.CheckIn = "" },
			wantField: "check_in",
		},
		{
			name:      "missing check_out",
			mutate:    func(r *dto.CreateBookingRequest) { r.CheckOut = "" },
			wantField: "check_out",
		},
		{
			name:      "missing payment method",
			mutate:    func(r *dto.CreateBookingRequest) { r.PaymentMethod = "" },
			wantField: "payment_method",
		},
		{
			name:      "empty room selection",
			mutate:    func(r *dto.CreateBookingRequest) { r.Rooms = nil },
			wantField: "rooms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.ValidateFields()

			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)
			assert.True(t, failure.IsKind(err, failure.KindMissingField))
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestCreateBookingRequest_ParseDates(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CreateBookingRequest)
		wantErr bool
	}{
		{
			name:   "valid range",
			mutate: func(*dto.CreateBookingRequest) {},
		},
		{
			name: "garbage check_in",
			mutate: func(r *dto.CreateBookingRequest) {
				r.CheckIn = "next tuesday"
			},
			wantErr: true,
		},
		{
			name: "garbage check_out",
			mutate: func(r *dto.CreateBookingRequest) {
				r.CheckOut = "03-09-2026"
			},
			wantErr: true,
		},
		{
			name: "check_out equals check_in",
			mutate: func(r *dto.CreateBookingRequest) {
				r.CheckOut = r.CheckIn
			},
			wantErr: true,
		},
		{
			name: "inverted range",
			mutate: func(r *dto.CreateBookingRequest) {
				r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn
			},
			wantErr: true,
		},
		{
			name: "check_in in the past",
			mutate: func(r *dto.CreateBookingRequest) {
				past := timezone.Today().AddDate(0, 0, -3)
				r.CheckIn = past.Format(constant.DateOnlyFormat)
				r.CheckOut = past.AddDate(0, 0, 2).Format(constant.DateOnlyFormat)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			checkIn, checkOut, err := req.ParseDates()

			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, failure.IsKind(err, failure.KindInvalidDateRange))

				return
			}

			assert.NoError(t, err)
			assert.True(t, checkOut.After(checkIn))
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := validRequest()

	checkIn, checkOut, err := req.ParseDates()
	assert.NoError(t, err)

	booking := req.ToModel("guest@example.com", "user-1", checkIn, checkOut, 1200000)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, req.NIK, booking.NIK)
	assert.Equal(t, req.GuestName, booking.GuestName)
	assert.Equal(t, model.StatusPending, booking.Status)
	assert.Equal(t, float64(1200000), booking.TotalPrice)
	assert.Equal(t, "guest@example.com", booking.CreatedBy)
	assert.Equal(t, 2, booking.Nights())
}

func TestBookingResponse_FromModel(t *testing.T) {
	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	booking := model.Booking{
		ID:            "booking-1",
		UserID:        "user-1",
		GuestName:     "Andi Wijaya",
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 3),
		TotalGuests:   2,
		TotalPrice:    1800000,
		PaymentMethod: "bank_transfer",
		Status:        model.StatusConfirmed,
	}

	lines := []model.BookingRoom{
		{
			ID:              "line-1",
			BookingID:       "booking-1",
			RoomID:          "room-1",
			RoomType:        "Deluxe",
			Quantity:        1,
			BreakfastOption: "with",
			PricePerNight:   600000,
			Subtotal:        1800000,
		},
	}

	var res dto.BookingResponse
	res.FromModel(booking, lines)

	assert.Equal(t, "booking-1", res.ID)
	assert.Equal(t, "2026-09-01", res.CheckIn)
	assert.Equal(t, "2026-09-04", res.CheckOut)
	assert.Equal(t, 3, res.Nights)
	assert.Len(t, res.Rooms, 1)
	assert.Equal(t, "Deluxe", res.Rooms[0].RoomType)
	assert.Equal(t, float64(600000), res.Rooms[0].PricePerNight)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	models := []model.Booking{
		{ID: "booking-1", Status: model.StatusPending},
		{ID: "booking-2", Status: model.StatusConfirmed},
	}

	var res dto.GetBookingsResponse
	res.FromModels(models, 12, 10)

	assert.Len(t, res.Bookings, 2)
	assert.Equal(t, 12, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}
