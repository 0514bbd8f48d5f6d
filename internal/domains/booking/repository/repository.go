package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/booking/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)

	// WithTx runs fn inside one write transaction, committing on nil and
	// rolling back otherwise. Reservation and lifecycle writes go through
	// here so the room-status side effects stay atomic with the booking row.
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error

	InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error
	InsertLinesTx(ctx context.Context, tx *sqlx.Tx, lines []model.BookingRoom) error
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error

	// GetForUpdateTx locks the booking row for the duration of the
	// transaction.
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error)

	// CountOverlappingTx counts active-occupancy bookings of a room whose
	// [check_in, check_out) interval intersects the requested one.
	CountOverlappingTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (int, error)

	GetLines(ctx context.Context, bookingID string) ([]model.BookingRoom, error)
	GetLinesTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.BookingRoom, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	lines gRepo.Repository[model.BookingRoom]
	db    *postgres.Connection
	otel  otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		lines:      gRepo.NewRepository[model.BookingRoom](model.LineEntityName, model.LineTableName, model.LineFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.WithTx")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck

		return err
	}

	if err := tx.Commit(); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) InsertLinesTx(ctx context.Context, tx *sqlx.Tx, lines []model.BookingRoom) error {
	return repo.lines.InsertBulkTx(ctx, tx, lines)
}

const bookingColumns = `bookings.id, bookings.user_id, bookings.nik, bookings.guest_name, bookings.phone,
	bookings.check_in, bookings.check_out, bookings.total_guests, bookings.total_price,
	bookings.payment_method, bookings.status,
	bookings.created_at, bookings.modified_at, bookings.created_by, bookings.modified_by`

func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetForUpdateTx")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM bookings WHERE bookings.id = $1 FOR UPDATE", bookingColumns)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.Booking

	err := tx.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to get booking for update: %w", err)
	}

	return booking, nil
}

func (repo *repositoryImpl) CountOverlappingTx(ctx context.Context, tx *sqlx.Tx, roomID string, checkIn, checkOut time.Time) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountOverlappingTx")
	defer scope.End()

	// Half-open interval overlap: back-to-back stays on the boundary day
	// do not conflict.
	query := fmt.Sprintf(`SELECT COUNT(bookings.id) FROM bookings
		JOIN booking_rooms ON booking_rooms.booking_id = bookings.id
		WHERE booking_rooms.room_id = $1
		  AND bookings.status IN ('%s', '%s')
		  AND bookings.check_in < $2
		  AND bookings.check_out > $3`, model.StatusConfirmed, model.StatusCheckedIn)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var count int

	err := tx.GetContext(ctx, &count, query, roomID, checkOut, checkIn)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}

	return count, nil
}

const lineColumns = `booking_rooms.id, booking_rooms.booking_id, booking_rooms.room_id, booking_rooms.room_type,
	booking_rooms.quantity, booking_rooms.breakfast_option, booking_rooms.price_per_night, booking_rooms.subtotal`

func (repo *repositoryImpl) GetLines(ctx context.Context, bookingID string) ([]model.BookingRoom, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetLines")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM booking_rooms WHERE booking_rooms.booking_id = $1", lineColumns)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var lines []model.BookingRoom

	err := repo.db.Read.SelectContext(ctx, &lines, query, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get booking lines: %w", err)
	}

	return lines, nil
}

func (repo *repositoryImpl) GetLinesTx(ctx context.Context, tx *sqlx.Tx, bookingID string) ([]model.BookingRoom, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetLinesTx")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM booking_rooms WHERE booking_rooms.booking_id = $1", lineColumns)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var lines []model.BookingRoom

	err := tx.SelectContext(ctx, &lines, query, bookingID)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get booking lines: %w", err)
	}

	return lines, nil
}
