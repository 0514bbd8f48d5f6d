package repository

//go:generate go run go.uber.org/mock/mockgen -source=./facility.go -destination=../mocks/facility_mock.go -package=mocks

import (
	"context"
	"fmt"

	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/room/model"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"
)

type Facility interface {
	Insert(ctx context.Context, model model.Facility) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Facility, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Facility, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	ListByRoom(ctx context.Context, roomID string) ([]model.Facility, error)

	// ReplaceForRoom swaps the full facility set of a room atomically.
	ReplaceForRoom(ctx context.Context, roomID string, links []model.RoomFacility) error
}

type facilityRepositoryImpl struct {
	gRepo.Repository[model.Facility]
	links gRepo.Repository[model.RoomFacility]
	db    *postgres.Connection
	otel  otel.Otel
}

func NewFacility(db *postgres.Connection, otel otel.Otel) Facility {
	return &facilityRepositoryImpl{
		Repository: gRepo.NewRepository[model.Facility](model.FacilityEntityName, model.FacilityTableName, model.FacilityFieldID, db, otel),
		links:      gRepo.NewRepository[model.RoomFacility](model.RoomFacilityEntityName, model.RoomFacilityTableName, model.RoomFacilityFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *facilityRepositoryImpl) ListByRoom(ctx context.Context, roomID string) ([]model.Facility, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".facility.ListByRoom")
	defer scope.End()

	query := `SELECT facilities.id, facilities.name, facilities.icon,
		facilities.created_at, facilities.modified_at, facilities.created_by, facilities.modified_by
		FROM facilities
		JOIN room_facilities ON room_facilities.facility_id = facilities.id
		WHERE room_facilities.room_id = :room_id
		ORDER BY facilities.name`
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var facilities []model.Facility

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.FacilityEntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &facilities, map[string]any{"room_id": roomID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list facilities by room: %w", err)
	}

	return facilities, nil
}

func (repo *facilityRepositoryImpl) ReplaceForRoom(ctx context.Context, roomID string, links []model.RoomFacility) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".facility.ReplaceForRoom")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.RoomFacilityFieldRoomID,
				Operator: gDto.FilterOperatorEq,
				Value:    roomID,
				Table:    model.RoomFacilityTableName,
			},
		},
	}

	err = repo.links.DeleteTx(ctx, tx, filter)
	if err != nil {
		tx.Rollback() //nolint:errcheck

		return err
	}

	err = repo.links.InsertBulkTx(ctx, tx, links)
	if err != nil {
		tx.Rollback() //nolint:errcheck

		return err
	}

	err = tx.Commit()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
