package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	bookingModel "lodge/internal/domains/booking/model"
	"lodge/internal/domains/room/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
	"lodge/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	// ListAvailable returns the rooms bookable for the requested range:
	// not manually blocked, and free of active-occupancy bookings whose
	// [check_in, check_out) interval intersects the requested one.
	ListAvailable(ctx context.Context, criteria model.AvailabilityCriteria) ([]model.Room, error)

	// LockTx acquires row locks on the given rooms in id order, so two
	// reservation transactions touching the same rooms always serialize.
	LockTx(ctx context.Context, tx *sqlx.Tx, ids []string) ([]model.Room, error)

	// UpdateStatusTx flips the catalog status of the given rooms inside
	// the caller's transaction.
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, ids []string, status, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

const roomColumns = `rooms.id, rooms.room_type_id, rooms.room_number, rooms.capacity,
	rooms.price_no_breakfast, rooms.price_with_breakfast, rooms.status, rooms.description,
	rooms.created_at, rooms.modified_at, rooms.created_by, rooms.modified_by`

func (repo *repositoryImpl) ListAvailable(ctx context.Context, criteria model.AvailabilityCriteria) ([]model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.ListAvailable")
	defer scope.End()

	args := map[string]any{
		"check_in":  criteria.CheckIn,
		"check_out": criteria.CheckOut,
		"available": model.StatusAvailable,
	}

	conditions := []string{
		"rooms.status = :available",
		fmt.Sprintf(`NOT EXISTS (
			SELECT 1 FROM booking_rooms
			JOIN bookings ON bookings.id = booking_rooms.booking_id
			WHERE booking_rooms.room_id = rooms.id
			  AND bookings.status IN ('%s', '%s')
			  AND bookings.check_in < :check_out
			  AND bookings.check_out > :check_in
		)`, bookingModel.StatusConfirmed, bookingModel.StatusCheckedIn),
	}

	if criteria.MinPrice != nil {
		args["min_price"] = *criteria.MinPrice
		conditions = append(conditions, "rooms.price_no_breakfast >= :min_price")
	}

	if criteria.MaxPrice != nil {
		args["max_price"] = *criteria.MaxPrice
		conditions = append(conditions, "rooms.price_no_breakfast <= :max_price")
	}

	if criteria.Capacity != nil {
		args["capacity"] = *criteria.Capacity
		conditions = append(conditions, "rooms.capacity >= :capacity")
	}

	if criteria.RoomTypeID != "" {
		args["room_type_id"] = criteria.RoomTypeID
		conditions = append(conditions, "rooms.room_type_id = :room_type_id")
	}

	// Every requested facility must be present, not merely one of them.
	if len(criteria.FacilityIDs) > 0 {
		named := make([]string, len(criteria.FacilityIDs))
		for idx, facilityID := range criteria.FacilityIDs {
			argName := fmt.Sprintf("facility_id_%d", idx)
			args[argName] = facilityID
			named[idx] = ":" + argName
		}

		args["facility_count"] = len(criteria.FacilityIDs)
		conditions = append(conditions, fmt.Sprintf(`(
			SELECT COUNT(DISTINCT room_facilities.facility_id) FROM room_facilities
			WHERE room_facilities.room_id = rooms.id
			  AND room_facilities.facility_id IN (%s)
		) = :facility_count`, strings.Join(named, ", ")))
	}

	query := fmt.Sprintf(
		"SELECT %s, room_types.name AS room_type_name FROM rooms LEFT JOIN room_types ON room_types.id = rooms.room_type_id WHERE %s ORDER BY rooms.room_number",
		roomColumns,
		strings.Join(conditions, " AND "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rooms []model.Room

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rooms, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list available rooms: %w", err)
	}

	return rooms, nil
}

func (repo *repositoryImpl) LockTx(ctx context.Context, tx *sqlx.Tx, ids []string) ([]model.Room, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.LockTx")
	defer scope.End()

	// The type name rides along so booking lines can snapshot it; only the
	// rooms rows take the lock.
	query, args, err := sqlx.In(
		fmt.Sprintf(`SELECT %s, room_types.name AS room_type_name FROM rooms
			LEFT JOIN room_types ON room_types.id = rooms.room_type_id
			WHERE rooms.id IN (?) ORDER BY rooms.id FOR UPDATE OF rooms`, roomColumns),
		ids,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build room lock query: %w", err)
	}

	query = tx.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rooms []model.Room

	err = tx.SelectContext(ctx, &rooms, query, args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to lock rooms: %w", err)
	}

	return rooms, nil
}

func (repo *repositoryImpl) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, ids []string, status, user string) error {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    model.TableName,
			},
		},
	}

	return repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
}
